// Package services orchestrates validation, derivation and persistence for
// the domain entities.
package services

import "errors"

// ErrInvalidCredentials is returned for any login failure. It deliberately
// does not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks an input rejected at the service boundary. The HTTP
// layer maps it to a 400 response.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	return &ValidationError{Err: err}
}
