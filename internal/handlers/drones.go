// drones.go
//
// A drone model catalog data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of dronedb.
// dronedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// dronedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with dronedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/models"
	"github.com/localnerve/dronedb/internal/query"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/localnerve/dronedb/internal/types"
	"github.com/localnerve/dronedb/internal/utils"
	"github.com/localnerve/dronedb/internal/validation"
)

// Response messages
const (
	MessageCreated     = "Drone model created successfully"
	MessageUpdated     = "Drone model updated successfully"
	MessageDeleted     = "Drone model deleted successfully"
	MessageNotFound    = "Drone model not found"
	MessageValidation  = "Validation Failed"
	MessageInvalidJSON = "Invalid JSON payload"
)

// DroneHandler handles the drone catalog routes
type DroneHandler struct {
	Store  services.DroneStore
	Events events.Publisher
	Log    logging.Logger
}

// DroneUpdate is the data of a drone.updated event
type DroneUpdate struct {
	Drone  models.DroneRecord `json:"drone"`
	Fields []string           `json:"fields"`
}

// CreateDrone handles POST /drones
// @Summary Create a drone model
// @Description Validate and store a new drone model. Unknown fields are dropped.
// @Tags Drones
// @Accept json
// @Produce json
// @Param drone body validation.Payload true "Drone model"
// @Success 201 {object} models.DroneRecord
// @Failure 400 {object} utils.ValidationErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /drones [post]
func (h *DroneHandler) CreateDrone(c *fiber.Ctx) error {
	payload, err := validation.ValidateJSON(c.Body(), validation.ModeCreate)
	if err != nil {
		return invalidBody(c, err)
	}

	record, err := h.Store.Insert(c.UserContext(), payload)
	if err != nil {
		return err
	}

	droneWrites.WithLabelValues("create").Inc()
	publish(c.UserContext(), h.Events, h.Log, events.DroneCreated, record)

	return utils.MutationSuccessResponse(c, MessageCreated, record, fiber.StatusCreated)
}

// ListDrones handles GET /drones
// @Summary List drone models
// @Description List drone models newest first, with optional filters and pagination
// @Tags Drones
// @Produce json
// @Param category query string false "Exact category" Enums(quadcopter, fixed-wing, hexacopter, octocopter)
// @Param enabled query string false "Enabled flag" Enums(true, false)
// @Param search query string false "Case-insensitive substring of name, manufacturer or description"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {array} models.DroneRecord
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /drones [get]
func (h *DroneHandler) ListDrones(c *fiber.Ctx) error {
	filter, page := query.Build(listParams(c))
	ctx := c.UserContext()

	records, err := h.Store.FindMany(ctx, filter, page)
	if err != nil {
		return err
	}

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		return err
	}

	listResultSize.Observe(float64(len(records)))

	return utils.ListResponse(c, records, utils.Pagination{
		CurrentPage:  page.Number,
		TotalPages:   page.TotalPages(total),
		TotalItems:   total,
		ItemsPerPage: page.Limit,
	})
}

// GetDrone handles GET /drones/:id
// @Summary Get a drone model
// @Tags Drones
// @Produce json
// @Param id path string true "Drone ID (UUID)"
// @Success 200 {object} models.DroneRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drones/{id} [get]
func (h *DroneHandler) GetDrone(c *fiber.Ctx) error {
	record, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFoundResponse(c, MessageNotFound)
	}
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, record, fiber.StatusOK)
}

// UpdateDrone handles PUT /drones/:id
// @Summary Update a drone model
// @Description Merge the supplied fields into the stored drone model. At least one known field is required.
// @Tags Drones
// @Accept json
// @Produce json
// @Param id path string true "Drone ID (UUID)"
// @Param drone body validation.Payload true "Fields to change"
// @Success 200 {object} models.DroneRecord
// @Failure 400 {object} utils.ValidationErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drones/{id} [put]
func (h *DroneHandler) UpdateDrone(c *fiber.Ctx) error {
	payload, err := validation.ValidateJSON(c.Body(), validation.ModeUpdate)
	if err != nil {
		return invalidBody(c, err)
	}

	record, err := h.Store.UpdateByID(c.UserContext(), c.Params("id"), payload)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFoundResponse(c, MessageNotFound)
	}
	if err != nil {
		return err
	}

	droneWrites.WithLabelValues("update").Inc()
	publish(c.UserContext(), h.Events, h.Log, events.DroneUpdated, DroneUpdate{
		Drone:  record,
		Fields: payload.Fields(),
	})

	return utils.MutationSuccessResponse(c, MessageUpdated, record, fiber.StatusOK)
}

// DeleteDrone handles DELETE /drones/:id
// @Summary Delete a drone model
// @Tags Drones
// @Produce json
// @Param id path string true "Drone ID (UUID)"
// @Success 200 {object} models.DroneRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drones/{id} [delete]
func (h *DroneHandler) DeleteDrone(c *fiber.Ctx) error {
	record, err := h.Store.DeleteByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFoundResponse(c, MessageNotFound)
	}
	if err != nil {
		return err
	}

	droneWrites.WithLabelValues("delete").Inc()
	publish(c.UserContext(), h.Events, h.Log, events.DroneDeleted, record)

	return utils.MutationSuccessResponse(c, MessageDeleted, record, fiber.StatusOK)
}

// GetStats handles GET /drones/stats/summary
// @Summary Per-category statistics
// @Description Count and average max speed, weight and payload per category, largest category first
// @Tags Drones
// @Produce json
// @Success 200 {array} models.CategoryStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /drones/stats/summary [get]
func (h *DroneHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.Store.AggregateStats(c.UserContext())
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []models.CategoryStats{}
	}

	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}

// invalidBody responds to a body that failed validation. A body that is not
// a JSON object goes to the error handler as a coded error.
func invalidBody(c *fiber.Ctx, err error) error {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return utils.ValidationErrorResponse(c, MessageValidation, fieldErrs)
	}
	if errors.Is(err, validation.ErrMalformedBody) {
		return types.NewCustomError(fiber.StatusBadRequest, MessageInvalidJSON, types.TypeBody)
	}
	return err
}
