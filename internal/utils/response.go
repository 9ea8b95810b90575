package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pagination describes the window returned by a list request
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// MutationSuccessResponse sends a success response for mutations (POST/PUT/DELETE)
func MutationSuccessResponse(c *fiber.Ctx, message string, data interface{}, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ListResponse sends one page of results with its pagination block
func ListResponse(c *fiber.Ctx, data interface{}, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ValidationErrorResponse sends a 400 with the per-field details
func ValidationErrorResponse(c *fiber.Ctx, message string, details interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"details": details,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// StatusResponse sends a liveness message stamped with the current time
func StatusResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Drone model not found"`
}

// FieldErrorStruct defines the schema for one validation detail
type FieldErrorStruct struct {
	Field   string `json:"field" example:"maxSpeed"`
	Message string `json:"message" example:"Max speed cannot exceed 500 km/h"`
}

// ValidationErrorResponseStruct defines the schema for validation failures
type ValidationErrorResponseStruct struct {
	Success bool               `json:"success" example:"false"`
	Error   string             `json:"error" example:"Validation Failed"`
	Details []FieldErrorStruct `json:"details"`
}

// StatusResponseStruct defines the schema for liveness responses
type StatusResponseStruct struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Drone API is running"`
	Timestamp string `json:"timestamp" example:"2026-01-01T00:00:00Z"`
}
