package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Navigator implements the interface.
var _ driving.NavigationService = (*Navigator)(nil)

// maxBackStack bounds the remembered locations.
const maxBackStack = 64

// Navigator holds the URL-like navigation state. The active session is
// read from the session_id parameter and nowhere else.
type Navigator struct {
	mu        sync.RWMutex
	sessions  driven.SessionStore
	current   domain.Location
	back      []domain.Location
	listeners []func(prev, next domain.Location)
}

// NewNavigator creates a navigator positioned at the document list.
func NewNavigator(sessions driven.SessionStore) *Navigator {
	return &Navigator{
		sessions: sessions,
		current:  domain.Location{Path: domain.RootPath},
	}
}

// Location returns the current location.
func (n *Navigator) Location() domain.Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// ActiveSessionID returns the session_id parameter, or an empty string.
func (n *Navigator) ActiveSessionID() string {
	return n.Location().SessionID
}

// DocumentID returns the open document, or an empty string at the root.
func (n *Navigator) DocumentID() string {
	return n.Location().DocumentID
}

// Push navigates to a raw URL.
func (n *Navigator) Push(raw string) error {
	loc, err := domain.ParseLocation(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	n.navigate(loc)
	return nil
}

// OpenDocument navigates to a document's sessionless workspace.
func (n *Navigator) OpenDocument(documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	n.navigate(domain.WorkspaceLocation(documentID))
	return nil
}

// SwitchTo sets the session_id parameter, dropping any other query state.
func (n *Navigator) SwitchTo(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}

	loc := n.Location()
	if loc.DocumentID == "" {
		return domain.ErrNoActiveDocument
	}

	n.navigate(loc.WithSession(sessionID))
	return nil
}

// CreateAndSwitch creates a session for the open document and switches to it.
// If creation fails the location is left unchanged.
func (n *Navigator) CreateAndSwitch(ctx context.Context) (*domain.Session, error) {
	documentID := n.DocumentID()
	if documentID == "" {
		return nil, domain.ErrNoActiveDocument
	}

	session, err := n.sessions.CreateSession(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	n.navigate(domain.WorkspaceLocation(documentID).WithSession(session.ID))
	return session, nil
}

// ClearSession drops the session parameter, keeping the document open.
func (n *Navigator) ClearSession() {
	n.navigate(n.Location().WithoutQuery())
}

// GoRoot navigates to the document list.
func (n *Navigator) GoRoot() {
	n.navigate(domain.Location{Path: domain.RootPath})
}

// Back returns to the previous location.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.back) == 0 {
		n.mu.Unlock()
		return false
	}
	prev := n.current
	n.current = n.back[len(n.back)-1]
	n.back = n.back[:len(n.back)-1]
	next := n.current
	listeners := n.listeners
	n.mu.Unlock()

	n.notify(listeners, prev, next)
	return true
}

// Subscribe registers fn to run after every location change.
// Listeners run synchronously on the goroutine that navigated.
func (n *Navigator) Subscribe(fn func(prev, next domain.Location)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// navigate pushes loc, remembering the current location.
func (n *Navigator) navigate(loc domain.Location) {
	n.mu.Lock()
	prev := n.current
	if prev == loc {
		n.mu.Unlock()
		return
	}
	n.back = append(n.back, prev)
	if len(n.back) > maxBackStack {
		n.back = n.back[len(n.back)-maxBackStack:]
	}
	n.current = loc
	listeners := n.listeners
	n.mu.Unlock()

	n.notify(listeners, prev, loc)
}

func (n *Navigator) notify(listeners []func(prev, next domain.Location), prev, next domain.Location) {
	logger.Debug("Navigate %s -> %s", prev, next)
	for _, fn := range listeners {
		fn(prev, next)
	}
}
