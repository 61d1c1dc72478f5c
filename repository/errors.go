// Package repository holds the MongoDB-backed catalog and account stores.
// Handlers see only the sentinel errors below, never driver errors.
package repository

import "errors"

// ErrNotFound is returned when no document matches the lookup
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an account with the same email exists
var ErrDuplicateEmail = errors.New("email already registered")
