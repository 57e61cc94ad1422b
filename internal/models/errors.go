// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in API responses. Handlers map these to HTTP statuses.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeSelfActionForbidden = "SELF_ACTION_FORBIDDEN"
	CodeDuplicateAction     = "DUPLICATE_ACTION"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
	CodeUnauthorized        = "UNAUTHORIZED"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error

	// Details carries structured payload data for errors that report state
	// back to the caller (e.g. rate limit count/limit).
	Details map[string]any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidRequest,
		Message: message,
	}
}

func NewSelfActionError() *AppError {
	return &AppError{
		Code:    CodeSelfActionForbidden,
		Message: "You cannot perform this action on yourself",
	}
}

func NewDuplicateActionError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateAction,
		Message: message,
	}
}

// NewRateLimitError reports the current count and limit so clients can render
// remaining quota.
func NewRateLimitError(count, limit int64) *AppError {
	return &AppError{
		Code:    CodeRateLimitExceeded,
		Message: fmt.Sprintf("Daily like limit reached (%d/%d)", count, limit),
		Details: map[string]any{"count": count, "limit": limit},
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewPersistenceError(err error) *AppError {
	return &AppError{
		Code:    CodePersistenceFailure,
		Message: "Storage operation failed",
		Err:     err,
	}
}

// statusForCode maps application error codes to HTTP statuses. Callers must
// not infer success from the status alone; the envelope is authoritative.
func statusForCode(code string) int {
	switch code {
	case CodeInvalidRequest, CodeSelfActionForbidden:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateAction:
		return fiber.StatusConflict
	case CodeRateLimitExceeded:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// Envelope is the standard API response body. Every response carries a
// success flag, a human-readable message and a data payload (null on failure).
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

// Respond writes a success envelope.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes an error envelope, deriving the HTTP status from the
// AppError code when available.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		var data interface{}
		if appErr.Details != nil {
			data = appErr.Details
		}
		return c.Status(statusForCode(appErr.Code)).JSON(Envelope{
			Success: false,
			Message: appErr.Message,
			Code:    appErr.Code,
			Data:    data,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
		Success: false,
		Message: err.Error(),
		Data:    nil,
	})
}
