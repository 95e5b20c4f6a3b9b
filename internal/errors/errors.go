package errors

import (
	"errors"
)

// Sentinel errors for different categories
var (
	// ErrInvalidInput - validation failure (show message, abort the operation, keep state unchanged)
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate - value already present (show warning, no state change)
	ErrDuplicate = errors.New("duplicate")

	// ErrStorage - persistence read/write failed (log and continue with defaults)
	ErrStorage = errors.New("storage error")

	// ErrLocked - profile is held by another process
	ErrLocked = errors.New("profile locked")

	// ErrInternal - anything else
	ErrInternal = errors.New("internal error")
)
