package domain

import (
	"errors"
	"fmt"
)

// ErrMessageNotFound indicates a send log append referenced a message id
// that does not exist. This is an internal invariant violation.
var ErrMessageNotFound = errors.New("invite message does not exist")

// ValidationError describes malformed client input. It carries a
// human-readable reason surfaced in the response envelope.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a validation error with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// QuotaExceededError indicates the daily send limit would be exceeded by
// the requested batch. No writes are performed when it is returned.
type QuotaExceededError struct {
	Limit        int
	CurrentUsage int
	Requested    int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily send limit of %d exceeded: %d already sent, %d requested",
		e.Limit, e.CurrentUsage, e.Requested)
}

// StorageError wraps a backing store failure so callers can distinguish
// infrastructure problems from client errors like quota rejection.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
