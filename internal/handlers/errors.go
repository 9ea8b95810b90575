// errors.go
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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/localnerve/dronedb/internal/types"
	"github.com/localnerve/dronedb/internal/utils"
	"github.com/localnerve/dronedb/internal/validation"
)

// Translated error messages
const (
	MessageInvalidID       = "Invalid ID format"
	MessageRecordInvalid   = "Validation Error"
	MessageInternal        = "Internal Server Error"
	MessageRouteNotFound   = "Route not found"
	messageDuplicateFormat = "Duplicate value for field: %s"
)

// ErrorHandler is the global Fiber error handler. It classifies err by shape
// and writes the error envelope. With production set, unclassified errors
// are reported without their message.
func ErrorHandler(production bool, log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			fieldErrs validation.FieldErrors
			recErr    *services.RecordValidationError
			dupErr    *services.DuplicateError
			customErr *types.CustomError
			fiberErr  *fiber.Error
		)

		code := fiber.StatusInternalServerError
		message := err.Error()
		var details interface{}

		switch {
		case errors.As(err, &fieldErrs):
			code, message, details = fiber.StatusBadRequest, MessageValidation, fieldErrs
		case errors.As(err, &recErr):
			code, message, details = fiber.StatusBadRequest, MessageRecordInvalid, recErr.Fields
		case errors.Is(err, services.ErrInvalidID):
			code, message = fiber.StatusBadRequest, MessageInvalidID
		case errors.Is(err, services.ErrNotFound):
			code, message = fiber.StatusNotFound, MessageNotFound
		case errors.As(err, &dupErr):
			code, message = fiber.StatusBadRequest, fmt.Sprintf(messageDuplicateFormat, dupErr.Field)
		case errors.As(err, &customErr):
			code, message = customErr.Code, customErr.Message
		case errors.As(err, &fiberErr):
			code, message = fiberErr.Code, fiberErr.Message
		case production:
			message = MessageInternal
		}

		entry := log.WithError(err).WithFields(logging.Fields{
			"status": code,
			"method": c.Method(),
			"path":   c.Path(),
		})
		if code >= fiber.StatusInternalServerError {
			entry.Errorf("Request failed")
		} else {
			entry.Debugf("Request rejected")
		}

		if details != nil {
			return utils.ValidationErrorResponse(c, message, details)
		}
		return utils.ErrorResponse(c, message, code)
	}
}

// RouteNotFound answers every request that matched no route
func RouteNotFound(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, MessageRouteNotFound, fiber.StatusNotFound)
}
