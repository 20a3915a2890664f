// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDocuments lists uploaded documents.
	ViewDocuments
	// ViewWorkspace is the question and answer workspace of one document.
	ViewWorkspace
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDocuments:
		return "documents"
	case ViewWorkspace:
		return "workspace"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// NoticeRaised carries a notice the core raised for the user.
type NoticeRaised struct {
	Notice domain.Notice
}

// DocumentsLoaded carries the document catalogue.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentDeleted signals a document was deleted.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}

// DocumentUploaded signals a local file was uploaded.
type DocumentUploaded struct {
	Path   string
	Detail string
	Err    error
}

// DocumentImported signals the backend downloaded a document.
type DocumentImported struct {
	Link   string
	Detail string
	Err    error
}

// DocumentOpened signals a document was initialised and its workspace opened.
type DocumentOpened struct {
	DocumentID string
	Err        error
}

// SessionsLoaded carries the open document's sessions, newest first.
type SessionsLoaded struct {
	Sessions []domain.SessionEntry
	Err      error
}

// SessionCreated signals a session was created and made active.
type SessionCreated struct {
	Session *domain.Session
	Err     error
}

// SessionDeleted signals a session was deleted.
type SessionDeleted struct {
	SessionID string
	WasActive bool
	Err       error
}

// HistoryLoaded signals the persisted history of a session was read.
type HistoryLoaded struct {
	SessionID string
	Err       error
}

// AnswerCompleted carries the result of an awaited question.
type AnswerCompleted struct {
	Completion domain.Completion
}

// SettingsLoaded carries every setting with its effective value.
type SettingsLoaded struct {
	Settings []domain.Setting
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
