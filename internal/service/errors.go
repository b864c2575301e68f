package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access to this resource is forbidden")
	ErrInvalidState       = errors.New("operation not allowed in the current state")
	ErrUnavailable        = errors.New("assessment is not currently available")
	ErrAlreadyCompleted   = errors.New("assessment already completed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account is pending approval")
	ErrConflict           = errors.New("resource already exists")
	ErrValidation         = errors.New("validation failed")
	ErrFeatureDisabled    = errors.New("feature is not configured")
)

// notFoundOr maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
