package service

import (
	"errors"
	"fmt"
)

// Workflow error taxonomy. Validation failures surface as domain.ErrValidation.
var (
	// ErrConflict indicates the request collides with existing state, such as
	// a registration for an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing, invalid, expired or revoked
	// credentials, or a login with the wrong email or password.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid identity whose role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the entity is absent. Status updates on tasks the
	// caller does not own also report it.
	ErrNotFound = errors.New("not found")
)

// ServiceError adds operation context to a workflow failure.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
