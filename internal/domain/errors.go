package domain

import "errors"

// Sentinel errors shared across the domain. Services wrap infrastructure
// failures with fmt.Errorf("…: %w", err) and translate repository outcomes
// to these; the HTTP layer maps them to status codes with errors.Is.
var (
	// ErrNotFound marks a missing aggregate, or one outside the caller's
	// event scope.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an operation on a resource the caller does not own,
	// or on an event that has ended.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a uniqueness violation or a state transition whose
	// guard did not hold.
	ErrConflict = errors.New("conflict")
	// ErrPreconditionFailed marks a transition attempted before its
	// prerequisite was met, such as validating a partnership with no
	// selected pack.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrInvalidInput marks malformed caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")
)
