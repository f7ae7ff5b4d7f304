package services

import "fmt"

// ValidationError reports bad input with field-level messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// PermissionError reports a role or ownership violation. The Reason is for
// server-side logs only and must not be surfaced to the caller.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Reason
}

// InvalidStateError reports an operation not allowed in the appointment's
// current status.
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return "operation not allowed in status " + e.Status
}

// InvalidTransitionError reports an unrecognized target status.
type InvalidTransitionError struct {
	Status string
}

func (e *InvalidTransitionError) Error() string {
	return "unrecognized status " + e.Status
}

// NotFoundError reports a missing entity, or an entity not owned by the
// caller. The two cases are indistinguishable to the caller.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}
