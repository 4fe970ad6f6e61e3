package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for the catalog domain - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidOperation marks mutations that are rejected before any store
	// access, such as renaming or deleting the virtual "Ungrouped Books" series.
	ErrInvalidOperation = errors.New("invalid operation")
)

// HTTPError defines errors that carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// ConflictError represents a uniqueness conflict with details about the
// existing resource, so callers can surface a user-actionable message.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (series, book)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
