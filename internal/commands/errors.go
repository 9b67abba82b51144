package commands

import (
	"errors"
	"fmt"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

func userErrorf(format string, args ...any) *UserError {
	return NewUserError(fmt.Sprintf(format, args...))
}

// IsUserError reports whether err carries a message meant for the user.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
