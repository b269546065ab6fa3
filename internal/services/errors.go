// Package services defines the business logic for bug records.
// This file centralizes the failure kinds the service layer reports so that
// the HTTP layer can classify them in one place:
//
//   - *ValidationError: client input broke a field constraint. Always raised
//     before the store is touched.
//   - *NotFoundError: the requested bug id has no record.
//   - anything else: store or runtime failure, passed through unchanged.
package services

import "errors"

// ErrBugNotFound matches every *NotFoundError via errors.Is.
var ErrBugNotFound = errors.New("bug not found")

// ValidationError reports a rejected field. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a bug id with no corresponding record.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return "Bug not found with id of " + e.ID }

// Is lets errors.Is(err, ErrBugNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrBugNotFound }

// invalid builds a *ValidationError.
func invalid(msg string) error { return &ValidationError{Message: msg} }
