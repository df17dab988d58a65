package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Failure categories for the scheduling core. Tenant failures deliberately
// share one message for "missing" and "belongs to another clinic".
const (
	ErrValidation ErrorCode = iota + 1000
	ErrTenant
	ErrSlotUnavailable
	ErrNotFound
	ErrPersistence
	ErrUnauthorized
)

// FieldError is a single violated field from request validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error
type AppError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
		}
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(msgs, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure category to an HTTP status for the error middleware.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrTenant, ErrNotFound:
		return http.StatusNotFound
	case ErrSlotUnavailable:
		return http.StatusConflict
	case ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors

func NewValidation(fields []FieldError) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: "invalid request",
		Fields:  fields,
	}
}

func NewTenant() *AppError {
	return &AppError{
		Code:    ErrTenant,
		Message: "doctor or patient not found",
	}
}

func NewSlotUnavailable(doctorID, date, slot string) *AppError {
	return &AppError{
		Code:    ErrSlotUnavailable,
		Message: fmt.Sprintf("slot %s on %s is not available for doctor %s", slot, date, doctorID),
	}
}

func NewNotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewPersistence(err error) *AppError {
	return &AppError{
		Code:    ErrPersistence,
		Message: "internal error",
		Err:     err,
	}
}

func NewUnauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// Code extractors used by handlers and tests.

func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
