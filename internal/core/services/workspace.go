package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driving.WorkspaceService = (*Workspace)(nil)

// Notice texts raised by the workspace.
const (
	noticeNoDocument     = "Open a document first."
	noticeNoSession      = "Create or select a session first."
	noticeSessionMissing = "This session or document no longer exists."
)

// Workspace composes navigation, the session registry, persisted history
// and the query controller into the interactive session of one document.
//
// Whenever the active document or session changes the live exchanges and
// the loaded history are dropped, as if a new workspace had been opened.
type Workspace struct {
	nav        *Navigator
	controller *QueryController
	registry   *SessionRegistry
	history    driven.HistoryStore
	notifier   driven.Notifier

	mu           sync.RWMutex
	persisted    []domain.QuestionAnswerPair
	persistedFor string
}

// NewWorkspace creates a workspace bound to nav. A nil notifier discards notices.
func NewWorkspace(
	nav *Navigator,
	controller *QueryController,
	registry *SessionRegistry,
	history driven.HistoryStore,
	notifier driven.Notifier,
) *Workspace {
	if notifier == nil {
		notifier = driven.NotifierFunc(func(domain.Notice) {})
	}

	w := &Workspace{
		nav:        nav,
		controller: controller,
		registry:   registry,
		history:    history,
		notifier:   notifier,
	}
	nav.Subscribe(w.onNavigate)
	return w
}

// Entries returns persisted pairs of the active session followed by live exchanges.
func (w *Workspace) Entries() []domain.DisplayEntry {
	w.mu.RLock()
	var persisted []domain.QuestionAnswerPair
	if w.persistedFor != "" && w.persistedFor == w.nav.ActiveSessionID() {
		persisted = w.persisted
	}
	w.mu.RUnlock()

	return MergeHistory(persisted, w.controller.Exchanges())
}

// Status reports whether a question is in flight.
func (w *Workspace) Status() domain.SubmissionStatus {
	return w.controller.Status()
}

// Submit asks a question in the active session.
// Blank questions are answered locally even without an active session.
func (w *Workspace) Submit(ctx context.Context, question string) (*domain.Flight, error) {
	loc := w.nav.Location()

	if strings.TrimSpace(question) != "" {
		if loc.DocumentID == "" {
			w.notifier.Notify(domain.ErrorNotice(noticeNoDocument))
			return nil, domain.ErrNoActiveDocument
		}
		if loc.SessionID == "" {
			w.notifier.Notify(domain.ErrorNotice(noticeNoSession))
			return nil, domain.ErrNoActiveSession
		}
	}

	return w.controller.Submit(ctx, domain.Question{
		DocumentID: loc.DocumentID,
		SessionID:  loc.SessionID,
		Text:       question,
	}), nil
}

// Complete applies a completion. Fatal failures notify the user and reset
// navigation; other applied completions mark the session's history stale.
func (w *Workspace) Complete(completion domain.Completion) domain.Outcome {
	outcome := w.controller.Complete(completion)
	if !outcome.Applied {
		return outcome
	}

	if !outcome.Fatal {
		w.invalidate(outcome.SessionID)
		return outcome
	}

	logger.Warn("Fatal answer failure for session %s: %v", outcome.SessionID, outcome.Err)
	if outcome.Kind == domain.ErrorKindNotFound {
		w.notifier.Notify(domain.ErrorNotice(firstNonEmpty(domain.ErrorDetail(outcome.Err), noticeSessionMissing)))
		w.nav.GoRoot()
		return outcome
	}

	w.notifier.Notify(domain.ErrorNotice(describeError(outcome.Err)))
	w.nav.ClearSession()
	return outcome
}

// Ask submits a question, waits for the answer and applies it.
func (w *Workspace) Ask(ctx context.Context, question string) (domain.Outcome, error) {
	flight, err := w.Submit(ctx, question)
	if err != nil {
		return domain.Outcome{}, err
	}
	if flight == nil {
		return domain.Outcome{Applied: true}, nil
	}
	return w.Complete(flight.Await()), nil
}

// Cancel stops waiting on the in-flight question.
func (w *Workspace) Cancel() bool {
	return w.controller.Cancel()
}

// EnterSession loads the persisted history of the active session.
// The result is kept only if the session is still active when it arrives.
func (w *Workspace) EnterSession(ctx context.Context) error {
	sessionID := w.nav.ActiveSessionID()
	if sessionID == "" {
		w.setPersisted("", nil)
		return nil
	}

	pairs, err := w.history.ListPersistedExchanges(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.nav.ActiveSessionID() == sessionID {
		w.persisted = domain.SortPairsOldestFirst(pairs)
		w.persistedFor = sessionID
	}
	return nil
}

// Sessions lists the open document's sessions, newest first.
func (w *Workspace) Sessions(ctx context.Context) ([]domain.SessionEntry, error) {
	return w.registry.Entries(ctx)
}

// SwitchSession makes a session active.
func (w *Workspace) SwitchSession(sessionID string) error {
	return w.nav.SwitchTo(sessionID)
}

// CreateSession creates a session and makes it active.
// On failure the user is notified and navigation is unchanged.
func (w *Workspace) CreateSession(ctx context.Context) (*domain.Session, error) {
	session, err := w.nav.CreateAndSwitch(ctx)
	if err != nil {
		w.notifier.Notify(domain.ErrorNotice(describeError(err)))
		return nil, err
	}
	return session, nil
}

// DeleteSession deletes a session. Returns true if it was the active one.
func (w *Workspace) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	wasActive, err := w.registry.Delete(ctx, sessionID)
	if err != nil {
		w.notifier.Notify(domain.ErrorNotice(describeError(err)))
		return false, err
	}
	w.invalidate(sessionID)
	return wasActive, nil
}

// onNavigate drops live and loaded state when the session or document changes.
func (w *Workspace) onNavigate(prev, next domain.Location) {
	if prev.DocumentID == next.DocumentID && prev.SessionID == next.SessionID {
		return
	}
	w.controller.Reset()
	w.setPersisted("", nil)
}

func (w *Workspace) setPersisted(sessionID string, pairs []domain.QuestionAnswerPair) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.persisted = pairs
	w.persistedFor = sessionID
}

func (w *Workspace) invalidate(sessionID string) {
	if inv, ok := w.history.(driven.HistoryInvalidator); ok && sessionID != "" {
		inv.Invalidate(sessionID)
	}
}

// describeError prefers the server's detail, then the HTTP status text, over the wrapped error text.
func describeError(err error) string {
	var remote *domain.RemoteError
	if errors.As(err, &remote) {
		if msg := remote.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
