// Package repository defines the data access layer and the sentinel
// error values reused across repositories. The sentinels let handlers
// and the booking engine distinguish failure scenarios without string
// matching: ErrForbidden means the caller does not own the record,
// ErrNotFound means the referenced entity is missing, and
// ErrInvalidState means a status transition is not allowed from the
// record's current status.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState is returned when a booking transition is not allowed
// from the booking's current status. Handlers should translate this
// into an HTTP 400 response.
var ErrInvalidState = errors.New("invalid state")
