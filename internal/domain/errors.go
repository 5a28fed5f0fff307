package domain

import (
	"errors"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError reports the first rejected input of a request. Message is the
// exact text returned to the client (e.g. "Invalid Todo Status"); Field names
// the offending input for logging.
//
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr)
// to access the field and message.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
