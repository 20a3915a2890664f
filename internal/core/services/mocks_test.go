package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// mockAnswerer is a configurable driven.Answerer.
type mockAnswerer struct {
	AskFunc func(ctx context.Context, q domain.Question) (string, error)
}

func (m *mockAnswerer) Ask(ctx context.Context, q domain.Question) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, q)
	}
	return "answer: " + q.Text, nil
}

// blockingAnswerer answers only once its context is cancelled.
func blockingAnswerer() *mockAnswerer {
	return &mockAnswerer{
		AskFunc: func(ctx context.Context, _ domain.Question) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}

// failingAnswerer fails every request with err.
func failingAnswerer(err error) *mockAnswerer {
	return &mockAnswerer{
		AskFunc: func(context.Context, domain.Question) (string, error) {
			return "", err
		},
	}
}

// mockSessionStore is a configurable driven.SessionStore.
type mockSessionStore struct {
	ListSessionsFunc  func(ctx context.Context, documentID string) ([]domain.Session, error)
	CreateSessionFunc func(ctx context.Context, documentID string) (*domain.Session, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error
}

func (m *mockSessionStore) ListSessions(ctx context.Context, documentID string) ([]domain.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *mockSessionStore) CreateSession(ctx context.Context, documentID string) (*domain.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, documentID)
	}
	return &domain.Session{ID: "new-session", DocumentID: documentID}, nil
}

func (m *mockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// recordingNotifier collects notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (r *recordingNotifier) Notify(notice domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recordingNotifier) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Message
	}
	return out
}

// recordingHistory wraps a HistoryStore and records invalidations.
type recordingHistory struct {
	driven.HistoryStore

	mu          sync.Mutex
	invalidated []string
}

func (r *recordingHistory) Invalidate(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, sessionID)
}

func (r *recordingHistory) Invalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.invalidated))
	copy(out, r.invalidated)
	return out
}
