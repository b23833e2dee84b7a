package feed

import (
	"fmt"
	"strings"
)

// Machine-readable error codes surfaced on the wire.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeDependency = "DEPENDENCY_ERROR"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or out-of-range request input. It is
// never retryable; the caller must fix the request.
type ValidationError struct {
	Details []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a ValidationError with a single field detail.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: []FieldError{{Field: field, Message: message}}}
}

// DependencyError reports that the underlying store was unreachable or
// failed. Callers may retry with backoff.
type DependencyError struct {
	Err error
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency failure: %s", e.Err)
}

// Unwrap returns the underlying error
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps a store failure so callers see a retryable error.
func NewDependencyError(err error) *DependencyError {
	return &DependencyError{Err: err}
}
