package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrContentNotFound, ErrScheduleNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second schedule for the same content).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrContentNotFound indicates that the requested content does not exist.
	ErrContentNotFound = fmt.Errorf("%w: content", ErrNotFound)

	// ErrScheduleNotFound indicates that the requested review schedule does
	// not exist.
	ErrScheduleNotFound = fmt.Errorf("%w: review schedule", ErrNotFound)

	// ErrSubscriptionNotFound indicates that the user has no subscription row.
	// Callers treat this as the free tier rather than a failure.
	ErrSubscriptionNotFound = fmt.Errorf("%w: subscription", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrScheduleExists indicates that a schedule already exists for the
	// (user, content) pair.
	ErrScheduleExists = fmt.Errorf("%w: review schedule", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
