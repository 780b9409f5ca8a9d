package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine error taxonomy.
var (
	// ErrModelNotLoaded means an embedding call was made before the model
	// handle was loaded. Escalates: ranking without vectors is meaningless.
	ErrModelNotLoaded = errors.New("embedding model not loaded")
	// ErrQueryTooShort is caller-supplied validation, rejected before any
	// core work begins.
	ErrQueryTooShort = errors.New("query too short")
	// ErrMalformedVector marks a stored embedding that is missing or not a
	// valid vector. Isolated per corpus entry, never aborts a ranking.
	ErrMalformedVector = errors.New("malformed embedding vector")
	// ErrExtraction marks one document that could not be segmented. Isolated
	// per document, never aborts a batch.
	ErrExtraction = errors.New("section extraction failed")
)

// ValidationError wraps a sentinel with field context.
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
