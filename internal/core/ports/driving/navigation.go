package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// NavigationService exposes the URL-like navigation state.
// The active session is derived solely from it.
type NavigationService interface {
	// Location returns the current location.
	Location() domain.Location

	// ActiveSessionID returns the session_id parameter, or an empty string.
	ActiveSessionID() string

	// DocumentID returns the open document, or an empty string at the root.
	DocumentID() string

	// Push navigates to a raw URL.
	Push(raw string) error

	// OpenDocument navigates to a document's sessionless workspace.
	OpenDocument(documentID string) error

	// SwitchTo sets the active session of the open document.
	SwitchTo(sessionID string) error

	// CreateAndSwitch creates a session for the open document and switches to it.
	// On failure navigation is left unchanged.
	CreateAndSwitch(ctx context.Context) (*domain.Session, error)

	// ClearSession drops the session parameter.
	ClearSession()

	// GoRoot navigates to the document list.
	GoRoot()

	// Back returns to the previous location. Returns false when there is none.
	Back() bool

	// Subscribe registers fn to run after every location change.
	Subscribe(fn func(prev, next domain.Location))
}
