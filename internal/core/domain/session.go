package domain

import (
	"sort"
	"time"
)

// Session is a conversation opened against a single document.
// Which session is active is a navigation concern and is not stored here.
type Session struct {
	// ID is the backend session identifier.
	ID string

	// DocumentID links to the Document the session belongs to.
	DocumentID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time
}

// SortSessionsNewestFirst returns a copy of sessions ordered by CreatedAt descending.
// Sessions with equal timestamps keep their relative order.
func SortSessionsNewestFirst(sessions []Session) []Session {
	sorted := make([]Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// SessionEntry is a session as listed in the registry.
type SessionEntry struct {
	Session

	// Active is true for the session named by the current location.
	Active bool
}

// TimestampLayout is the backend's timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// maxTitleLength bounds session titles in listings.
const maxTitleLength = 20

// Title is the session's display label, its creation time.
func (s Session) Title() string {
	return TruncateTitle(s.CreatedAt.Format(TimestampLayout))
}

// TruncateTitle shortens titles longer than 20 characters, appending "...".
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength]) + "..."
}
