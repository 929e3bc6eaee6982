package models

import (
	"errors"
	"fmt"
)

// ErrPersistence marks transient store failures. Callers may retry the whole
// operation; nothing was committed.
var ErrPersistence = errors.New("persistence failure")

// ValidationError reports a malformed field in a request payload
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced record that does not exist in the
// caller's owner scope.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidTransitionError reports an order status change that violates the
// lifecycle ordering.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// ConflictError reports a uniqueness violation that internal retries could
// not resolve.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Detail)
}

// PersistenceError wraps a store failure so the transport layer can map it
// to a transient status while keeping the cause for logging.
func PersistenceError(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
