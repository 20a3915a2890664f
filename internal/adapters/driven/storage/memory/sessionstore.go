package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interfaces.
var (
	_ driven.SessionStore = (*SessionStore)(nil)
	_ driven.HistoryStore = (*SessionStore)(nil)
)

// SessionStore is an in-memory implementation of driven.SessionStore and
// driven.HistoryStore. Deleting a session drops its exchanges.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]domain.Session
	exchanges map[string][]domain.QuestionAnswerPair
	now       func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]domain.Session),
		exchanges: make(map[string][]domain.QuestionAnswerPair),
		now:       time.Now,
	}
}

// SetClock replaces the time source used for new sessions and exchanges.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SaveSession stores or updates a session.
func (s *SessionStore) SaveSession(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// AppendExchange records a confirmed exchange in a session.
func (s *SessionStore) AppendExchange(sessionID string, pair domain.QuestionAnswerPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	if pair.Timestamp.IsZero() {
		pair.Timestamp = s.now()
	}
	s.exchanges[sessionID] = append(s.exchanges[sessionID], pair)
	return nil
}

// HasSession reports whether a session exists.
func (s *SessionStore) HasSession(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// ListSessions returns the sessions of a document in creation order.
func (s *SessionStore) ListSessions(_ context.Context, documentID string) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []domain.Session
	for _, session := range s.sessions {
		if session.DocumentID == documentID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// CreateSession creates an empty session for a document.
func (s *SessionStore) CreateSession(_ context.Context, documentID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.Session{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		CreatedAt:  s.now(),
	}
	s.sessions[session.ID] = session
	return &session, nil
}

// DeleteSession removes a session and its exchanges.
func (s *SessionStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.exchanges, sessionID)
	return nil
}

// ListPersistedExchanges returns a copy of a session's exchanges.
func (s *SessionStore) ListPersistedExchanges(_ context.Context, sessionID string) ([]domain.QuestionAnswerPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, domain.ErrNotFound
	}
	pairs := make([]domain.QuestionAnswerPair, len(s.exchanges[sessionID]))
	copy(pairs, s.exchanges[sessionID])
	return pairs, nil
}
