package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog and gazetteer load failures.
var (
	ErrInvalidVehicle     = errors.New("invalid vehicle")
	ErrMissingPlate       = errors.New("missing license plate")
	ErrInvalidPlate       = errors.New("invalid license plate")
	ErrInvalidVIN         = errors.New("invalid VIN")
	ErrInvalidNumber      = errors.New("invalid vehicle number")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrDuplicateKey       = errors.New("duplicate catalog key")
	ErrInvalidCategory    = errors.New("invalid gazetteer category")
	ErrEmptyKeyword       = errors.New("empty gazetteer keyword")
	ErrConflictingKeyword = errors.New("keyword mapped to conflicting categories")
	ErrInvalidLanguage    = errors.New("invalid language")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
