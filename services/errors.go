// Package services holds the cart engine and the account flow. Handlers
// translate the errors declared here into pages and status codes.
package services

import (
	"errors"
	"fmt"

	"go-storefront/forms"
)

var (
	// ErrNotFound is returned when the requested product does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers both unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmptyCart is returned by Checkout when there is nothing to order
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries field-level messages for re-rendering a form
type ValidationError struct {
	Fields forms.Messages
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// DependencyError wraps a failure of the database or the mail provider
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
