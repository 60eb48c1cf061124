package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DuplicateEntityError reports a canonical-key collision: the requested name
// normalizes to the same key as an already-persisted reference entity.
// It carries the existing entity's id and display name so callers can offer
// "use the existing one instead". Raised on both the optimistic pre-check
// and the constraint-violation fallback, so callers see one contract.
type DuplicateEntityError struct {
	Kind         EntityKind
	ExistingID   uuid.UUID
	ExistingName string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s already exists: %q (%s)", e.Kind, e.ExistingName, e.ExistingID)
}

func (e *DuplicateEntityError) Unwrap() error { return ErrAlreadyExists }

// NewDuplicateEntityError creates a DuplicateEntityError for the given kind
// and existing entity.
func NewDuplicateEntityError(kind EntityKind, existingID uuid.UUID, existingName string) *DuplicateEntityError {
	return &DuplicateEntityError{
		Kind:         kind,
		ExistingID:   existingID,
		ExistingName: existingName,
	}
}
