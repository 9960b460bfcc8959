package service

import (
	"errors"
	"fmt"
)

// Error classes. Every error a service returns wraps exactly one of these so
// the transport can pick a status with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInternal           = errors.New("internal error")
)

var (
	ErrCredentialsRequired = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	ErrUsernameTaken       = fmt.Errorf("%w: username is already taken", ErrConflict)

	ErrEntryFieldsRequired   = fmt.Errorf("%w: all fields are required except savings", ErrValidation)
	ErrUsernameRequired      = fmt.Errorf("%w: username is required", ErrValidation)
	ErrUsernameMonthRequired = fmt.Errorf("%w: username and month are required", ErrValidation)
	ErrUserNotFound          = fmt.Errorf("%w: user", ErrNotFound)
	ErrMonthAlreadyExists    = fmt.Errorf("%w: data for this month already exists", ErrConflict)
	ErrMonthNotFound         = fmt.Errorf("%w: data for this month", ErrNotFound)
)

// internal wraps a store or crypto failure as ErrInternal, keeping the cause.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
