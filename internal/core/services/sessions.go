package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// SessionRegistry lists and deletes the sessions of the open document.
type SessionRegistry struct {
	store driven.SessionStore
	nav   *Navigator
}

// NewSessionRegistry creates a registry that highlights nav's active session.
func NewSessionRegistry(store driven.SessionStore, nav *Navigator) *SessionRegistry {
	return &SessionRegistry{
		store: store,
		nav:   nav,
	}
}

// Entries returns the open document's sessions, newest first.
func (r *SessionRegistry) Entries(ctx context.Context) ([]domain.SessionEntry, error) {
	loc := r.nav.Location()
	if loc.DocumentID == "" {
		return nil, domain.ErrNoActiveDocument
	}

	sessions, err := r.store.ListSessions(ctx, loc.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sorted := domain.SortSessionsNewestFirst(sessions)
	entries := make([]domain.SessionEntry, len(sorted))
	for i := range sorted {
		entries[i] = domain.SessionEntry{
			Session: sorted[i],
			Active:  sorted[i].ID == loc.SessionID,
		}
	}
	return entries, nil
}

// IsActive reports whether sessionID is the active session.
func (r *SessionRegistry) IsActive(sessionID string) bool {
	return sessionID != "" && r.nav.ActiveSessionID() == sessionID
}

// Delete removes a session. Deleting the active session clears the
// session parameter; otherwise the caller only needs to refresh the list.
// Returns true if the deleted session was active.
func (r *SessionRegistry) Delete(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}

	wasActive := r.IsActive(sessionID)
	if err := r.store.DeleteSession(ctx, sessionID); err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	if wasActive && r.IsActive(sessionID) {
		r.nav.ClearSession()
	}
	return wasActive, nil
}
