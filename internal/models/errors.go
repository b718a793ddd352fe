package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Status int      `json:"status"`
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	// Errors holds per-field messages for VALIDATION_ERROR.
	Errors []string
	Err    error
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

// Status returns the HTTP status code for the error kind.
func (e *AppError) Status() int {
	switch e.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized, CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeInvalidArgument, CodeValidation:
		return fiber.StatusBadRequest
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// NewNotFoundError reports a missing entity by id.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotFoundByError reports a missing entity looked up by another key.
func NewNotFoundByError(resource, field string, value interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidArgument,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewValidationErrors builds a VALIDATION_ERROR carrying one message per failed field.
func NewValidationErrors(messages []string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Validation failed",
		Errors:  messages,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes a standardized error response. Internal details are never sent to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Status: status}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Error = appErr.Message
		response.Code = appErr.Code
		response.Errors = appErr.Errors
	} else {
		response.Error = err.Error()
	}
	if status >= fiber.StatusInternalServerError {
		response.Error = "Internal server error"
		response.Code = CodeInternal
		response.Errors = nil
	}

	return c.Status(status).JSON(response)
}
