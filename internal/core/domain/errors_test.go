package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrCancelled", ErrCancelled},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrRemote", ErrRemote},
		{"ErrNoActiveDocument", ErrNoActiveDocument},
		{"ErrNoActiveSession", ErrNoActiveSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestRemoteError_Unwrap(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{ErrorKindCancelled, ErrCancelled},
		{ErrorKindRateLimited, ErrRateLimited},
		{ErrorKindNotFound, ErrNotFound},
		{ErrorKindOther, ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("ask: %w", NewRemoteError(tt.kind, 400, "detail"))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestRemoteError_Error(t *testing.T) {
	err := NewRemoteError(ErrorKindRateLimited, 429, "slow down")
	assert.Equal(t, "rate_limited (status 429): slow down", err.Error())

	err = NewRemoteError(ErrorKindCancelled, 0, "stopped")
	assert.Equal(t, "cancelled: stopped", err.Error())

	err = NewRemoteError(ErrorKindRateLimited, 429, "")
	assert.Equal(t, "rate_limited (status 429): Too Many Requests", err.Error())
	assert.Empty(t, err.Detail)
}

func TestRemoteError_Message(t *testing.T) {
	assert.Equal(t, "gone", NewRemoteError(ErrorKindNotFound, 404, "gone").Message())
	assert.Equal(t, "Not Found", NewRemoteError(ErrorKindNotFound, 404, "").Message())
	assert.Empty(t, NewRemoteError(ErrorKindOther, 0, "").Message())
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"remote rate limit", NewRemoteError(ErrorKindRateLimited, 429, ""), ErrorKindRateLimited},
		{"wrapped remote not found", fmt.Errorf("x: %w", NewRemoteError(ErrorKindNotFound, 404, "")), ErrorKindNotFound},
		{"context cancelled", context.Canceled, ErrorKindCancelled},
		{"wrapped context cancelled", fmt.Errorf("send: %w", context.Canceled), ErrorKindCancelled},
		{"sentinel rate limited", ErrRateLimited, ErrorKindRateLimited},
		{"sentinel not found", ErrNotFound, ErrorKindNotFound},
		{"deadline is not a cancellation", context.DeadlineExceeded, ErrorKindOther},
		{"plain error", errors.New("boom"), ErrorKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyError(tt.err))
		})
	}
}

func TestErrorKind_IsInline(t *testing.T) {
	assert.True(t, ErrorKindCancelled.IsInline())
	assert.True(t, ErrorKindRateLimited.IsInline())
	assert.False(t, ErrorKindNotFound.IsInline())
	assert.False(t, ErrorKindOther.IsInline())
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "gone", ErrorDetail(fmt.Errorf("w: %w", NewRemoteError(ErrorKindNotFound, 404, "gone"))))
	assert.Empty(t, ErrorDetail(errors.New("plain")))
}
