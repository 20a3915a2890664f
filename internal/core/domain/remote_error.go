package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failure kinds reported by the backend.
// Downstream logic dispatches on the kind, never on status codes or strings.
type ErrorKind int

const (
	// ErrorKindOther is any failure that cannot be rendered inline.
	ErrorKindOther ErrorKind = iota
	// ErrorKindCancelled means the request was superseded or user-stopped.
	ErrorKindCancelled
	// ErrorKindRateLimited means the backend refused the request for rate reasons.
	ErrorKindRateLimited
	// ErrorKindNotFound means the session or document no longer exists.
	ErrorKindNotFound
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindCancelled:
		return "cancelled"
	case ErrorKindRateLimited:
		return "rate_limited"
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindOther:
		return "other"
	default:
		return "other"
	}
}

// IsInline reports whether failures of this kind are rendered as the exchange's answer.
func (k ErrorKind) IsInline() bool {
	return k == ErrorKindCancelled || k == ErrorKindRateLimited
}

// RemoteError is a backend failure with its server-provided detail text.
type RemoteError struct {
	// Kind is the classified failure kind.
	Kind ErrorKind

	// StatusCode is the HTTP status, zero when the failure never reached the server.
	StatusCode int

	// Detail is the human-readable explanation reported by the server.
	// Empty when the server sent none.
	Detail string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message())
}

// Message returns the server detail, or the HTTP status text when the server sent none.
func (e *RemoteError) Message() string {
	if e.Detail != "" || e.StatusCode == 0 {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

// Unwrap maps the kind onto its sentinel so callers can use errors.Is.
func (e *RemoteError) Unwrap() error {
	switch e.Kind {
	case ErrorKindCancelled:
		return ErrCancelled
	case ErrorKindRateLimited:
		return ErrRateLimited
	case ErrorKindNotFound:
		return ErrNotFound
	case ErrorKindOther:
		return ErrRemote
	default:
		return ErrRemote
	}
}

// NewRemoteError creates a RemoteError.
func NewRemoteError(kind ErrorKind, statusCode int, detail string) *RemoteError {
	return &RemoteError{Kind: kind, StatusCode: statusCode, Detail: detail}
}

// ClassifyError maps any error onto the closed set of kinds.
// A nil error classifies as ErrorKindOther; callers check for nil first.
func ClassifyError(err error) ErrorKind {
	var remote *RemoteError
	switch {
	case errors.As(err, &remote):
		return remote.Kind
	case errors.Is(err, context.Canceled), errors.Is(err, ErrCancelled):
		return ErrorKindCancelled
	case errors.Is(err, ErrRateLimited):
		return ErrorKindRateLimited
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	default:
		return ErrorKindOther
	}
}

// ErrorDetail returns the server detail carried by err, or an empty string.
func ErrorDetail(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Detail
	}
	return ""
}
