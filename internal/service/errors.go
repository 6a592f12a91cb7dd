package service

import (
	"errors"
	"fmt"

	"creditsea/internal/policy"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoanNotFound       = errors.New("loan application not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrUnauthenticated = policy.ErrUnauthenticated
	ErrForbidden       = policy.ErrForbidden
)

// validationError wraps ErrValidation with a field-level reason.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
