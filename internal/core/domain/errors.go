package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an upload that is not a PDF document.
	ErrUnsupportedType = errors.New("unsupported type")

	// Answering Errors.

	// ErrCancelled indicates the request was superseded or stopped by the user.
	ErrCancelled = errors.New("cancelled")

	// ErrRateLimited indicates the answering backend rejected the request for rate reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrRemote indicates a backend failure that fits no other kind.
	ErrRemote = errors.New("remote error")

	// Navigation Errors.

	// ErrNoActiveDocument indicates an operation needs an open document workspace.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrNoActiveSession indicates an operation needs an active session.
	ErrNoActiveSession = errors.New("no active session")
)
