// Package apperror defines the application error taxonomy. Handlers translate
// these into HTTP status codes: validation -> 422, not found -> 404,
// forbidden -> 403, everything else -> 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
)

// AppError carries a machine-readable field name alongside the human message.
type AppError struct {
	Err     error  // taxonomy sentinel
	Message string // human-readable message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing resource.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// ValidationFailed returns an AppError for a malformed or out-of-registry field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Internal wraps an unexpected error, keeping its message for the response body.
func Internal(err error) *AppError {
	return &AppError{
		Err:     err,
		Message: fmt.Sprintf("internal error: %v", err),
	}
}
