package engine

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed input before any state changes.
// Message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// UnknownAccountError is returned by login for an email with no registered account.
type UnknownAccountError struct {
	Email string
}

func (e UnknownAccountError) Error() string {
	return fmt.Sprintf("no account found for %s", e.Email)
}

// Hint points the user at the signup flow.
func (e UnknownAccountError) Hint() string {
	return "create an account first with `tm signup`"
}

// PersistenceReadError describes a stored record that could not be read.
// Stores log it and fall back to defaults; it never reaches the caller.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e PersistenceReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Key, e.Err)
}

func (e PersistenceReadError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsUnknownAccount(err error) bool {
	var u UnknownAccountError
	return errors.As(err, &u)
}
