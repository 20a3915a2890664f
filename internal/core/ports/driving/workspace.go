package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// WorkspaceService is the interactive query session of the open document.
//
// Submit performs the optimistic insertion synchronously and returns a
// flight whose Await is run off the event loop; its completion is applied
// with Complete. Ask combines the three for blocking callers.
type WorkspaceService interface {
	// Entries returns the merged transcript: persisted pairs, then live exchanges.
	Entries() []domain.DisplayEntry

	// Status reports whether a question is in flight.
	Status() domain.SubmissionStatus

	// Submit asks a question in the active session. A nil flight means the
	// submission was resolved locally.
	Submit(ctx context.Context, question string) (*domain.Flight, error)

	// Complete applies a flight's completion.
	Complete(completion domain.Completion) domain.Outcome

	// Ask submits, awaits and completes a question.
	Ask(ctx context.Context, question string) (domain.Outcome, error)

	// Cancel stops waiting on the in-flight question. Returns false when idle.
	Cancel() bool

	// EnterSession loads the persisted history of the active session.
	EnterSession(ctx context.Context) error

	// Sessions lists the open document's sessions, newest first.
	Sessions(ctx context.Context) ([]domain.SessionEntry, error)

	// SwitchSession makes a session active.
	SwitchSession(sessionID string) error

	// CreateSession creates a session and makes it active.
	CreateSession(ctx context.Context) (*domain.Session, error)

	// DeleteSession deletes a session. Returns true if it was the active one.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}
