package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers resources that are absent or not owned by the
	// caller; the two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("resource not found")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// ValidationError rejects malformed, missing or out-of-range input before
// any mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
