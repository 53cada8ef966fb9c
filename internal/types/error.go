package types

import "fmt"

// Stable machine-readable error codes surfaced to clients.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidationError = "VALIDATION_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeSessionRequired = "SESSION_REQUIRED"
	CodeInternalError   = "INTERNAL_ERROR"
)

type CustomError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [code: %s]", e.Status, e.Message, e.Code)
}
