package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// SessionStore manages sessions scoped to a document.
type SessionStore interface {
	// ListSessions returns the sessions of a document in no particular order.
	ListSessions(ctx context.Context, documentID string) ([]domain.Session, error)

	// CreateSession opens a new session for a document.
	CreateSession(ctx context.Context, documentID string) (*domain.Session, error)

	// DeleteSession removes a session and its history.
	DeleteSession(ctx context.Context, id string) error
}
