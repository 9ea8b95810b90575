package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/localnerve/dronedb/internal/utils"
)

// MessageRunning is the liveness message
const MessageRunning = "Drone API is running"

// HealthHandler handles the health routes
type HealthHandler struct {
	Config *config.Config
	Store  services.DroneStore
	Log    logging.Logger
}

// Live handles GET /health
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} utils.StatusResponseStruct
// @Router /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return utils.StatusResponse(c, MessageRunning)
}

// Ready handles GET /health/ready
// @Summary Readiness probe
// @Description Pings the record store and, when configured, the NATS server
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.Store, h.Log)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"data":    result,
	})
}
