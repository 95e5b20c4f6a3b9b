package errors

import (
	"errors"
	"fmt"
	"strings"
)

// IsUserFacing reports whether err should be shown to the agent as a
// transient message rather than logged as a failure.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDuplicate)
}

// Message is the text of a user-facing error without its category suffix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, category := range []error{ErrInvalidInput, ErrDuplicate} {
		msg = strings.TrimSuffix(msg, ": "+category.Error())
	}
	return msg
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", message, err)
}

// IsCategory checks if error belongs to specific category
func IsCategory(err error, category error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, category)
}

// InvalidInput wraps message as invalid input
func InvalidInput(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInvalidInput)
}

// Duplicate wraps message as duplicate
func Duplicate(message string) error {
	return fmt.Errorf("%s: %w", message, ErrDuplicate)
}

// Storage wraps err as a storage failure
func Storage(message string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", message, ErrStorage)
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorage, err)
}

// Internal wraps message as internal
func Internal(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInternal)
}
