// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// activeMarker prefixes the session named by the current location.
const activeMarker = "● "

// SessionList displays the sessions of a document in a navigable list.
// Entries are shown in the order given, which the registry keeps newest first.
type SessionList struct {
	sessions []domain.SessionEntry
	selected int
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewSessionList creates a new session list component.
func NewSessionList(s *styles.Styles) *SessionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SessionList{
		styles: s,
		width:  28,
		height: 10,
	}
}

// Init initialises the session list.
func (l *SessionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SessionList) Update(msg tea.Msg) (*SessionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the session list.
func (l *SessionList) View() string {
	lines := make([]string, 0, len(l.sessions)+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("Sessions (%d)", len(l.sessions)))
	lines = append(lines, header, "")

	if len(l.sessions) == 0 {
		lines = append(lines, l.styles.Muted.Render("No sessions yet."))
		return strings.Join(lines, "\n")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.sessions) {
		end = len(l.sessions)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.sessions[i]))
	}
	return strings.Join(lines, "\n")
}

// renderEntry formats a single session line.
func (l *SessionList) renderEntry(index int, entry *domain.SessionEntry) string {
	marker := "  "
	if entry.Active {
		marker = activeMarker
	}
	line := marker + entry.Title()

	switch {
	case index == l.selected && l.focused:
		return l.styles.Selected.Render(line)
	case entry.Active:
		return l.styles.ActiveSession.Render(line)
	default:
		return l.styles.Normal.Render(line)
	}
}

// SetSessions replaces the entries. The selection moves to the active
// session when there is one and is clamped otherwise.
func (l *SessionList) SetSessions(sessions []domain.SessionEntry) {
	l.sessions = sessions
	for i := range sessions {
		if sessions[i].Active {
			l.selected = i
			return
		}
	}
	if l.selected >= len(sessions) {
		l.selected = len(sessions) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Sessions returns the current entries.
func (l *SessionList) Sessions() []domain.SessionEntry {
	return l.sessions
}

// Selected returns the index of the selected entry.
func (l *SessionList) Selected() int {
	return l.selected
}

// SelectedSession returns the selected entry, or nil if the list is empty.
func (l *SessionList) SelectedSession() *domain.SessionEntry {
	if l.selected < 0 || l.selected >= len(l.sessions) {
		return nil
	}
	return &l.sessions[l.selected]
}

// MoveUp moves selection up.
func (l *SessionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SessionList) MoveDown() {
	if l.selected < len(l.sessions)-1 {
		l.selected++
	}
}

// SetFocused toggles the selection highlight.
func (l *SessionList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused reports whether the list has focus.
func (l *SessionList) Focused() bool {
	return l.focused
}

// SetDimensions sets the component dimensions.
func (l *SessionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *SessionList) Width() int {
	return l.width
}

// Count returns the number of sessions.
func (l *SessionList) Count() int {
	return len(l.sessions)
}
