package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/types"
)

// Meta carries response metadata common to all envelopes.
type Meta struct {
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the structured error payload inside an error envelope.
type ErrorBody struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination describes the window of a list response.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
	Meta    Meta      `json:"meta"`
}

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    Meta        `json:"meta"`
}

func meta() Meta {
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// SuccessResponse sends a standard success envelope
func SuccessResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta":    meta(),
	})
}

// CreatedResponse sends a 201 success envelope
func CreatedResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta":    meta(),
	})
}

// PaginatedResponse sends a success envelope with pagination info
func PaginatedResponse(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": p,
		"meta":       meta(),
	})
}

// ErrorResponse sends a standard error envelope with a machine-readable code
func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   ErrorBody{Message: message, Code: code},
		"meta":    meta(),
	})
}

// NotFoundResponse sends a 404 envelope
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, message)
}
