package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Domain error kinds raised by the service layer. Handlers map each kind to
// its status family: not-found -> 404, validation -> 400, conflict -> 409.

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFound creates a NotFoundError.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ValidationError indicates input that violates a domain rule: a due date
// outside the transition window, a past due date, a cross-transition
// reference, or an empty bulk-delete list.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError indicates a uniqueness or state conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflict creates a ConflictError.
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// RespondWithDomainError maps a service-layer error to its HTTP status.
// Unrecognized errors become 500s with the fallback message.
func RespondWithDomainError(c *gin.Context, err error, fallback string) {
	var notFound *NotFoundError
	var validation *ValidationError
	var conflict *ConflictError

	switch {
	case errors.As(err, &notFound):
		NotFound(c, notFound.Message)
	case errors.As(err, &validation):
		BadRequest(c, validation.Message)
	case errors.As(err, &conflict):
		Conflict(c, conflict.Message)
	default:
		InternalError(c, fallback)
	}
}
