package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrLockHeld means another request currently holds the resource lock.
	ErrLockHeld = errors.New("resource lock is held by another request")
)
