package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// AppError carries a user-facing message alongside a sentinel that HTTP
// handlers map to a status code. Internal detail stays in Err and is never
// serialized.
type AppError struct {
	Err     error  // sentinel, one of the Err* values above
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error. Duplicate unique
// fields answer 400 rather than 409 to match the API's published contract.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// MissingFields aggregates every absent required field into one error, so
// the caller learns about all of them at once.
func MissingFields(fields []string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("Missing fields: %s", strings.Join(fields, ", ")),
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Err: fmt.Errorf("%w: %v", ErrInternal, err), Message: "Internal Server Error"}
}
