package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation error")

// ValidationError describes an invalid field on a model.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
