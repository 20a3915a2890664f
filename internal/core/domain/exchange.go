package domain

import (
	"sort"
	"time"
)

// Fixed user-facing texts.
const (
	// EmptyQuestionGuidance answers a blank submission without contacting the backend.
	EmptyQuestionGuidance = "What question do you want to ask? Please enter a question."

	// DefaultCancelledNotice is shown in place of an answer when a request is cancelled.
	DefaultCancelledNotice = "User cancelled the request."

	// DefaultRateLimitedNotice is shown in place of an answer when the backend is rate limited.
	DefaultRateLimitedNotice = "You have reached the rate limit. Please try again later or change LLM API."
)

// QuestionAnswerPair is a server-confirmed exchange. It is immutable once loaded.
type QuestionAnswerPair struct {
	Question  string
	Answer    string
	Timestamp time.Time
}

// SortPairsOldestFirst returns a copy of pairs ordered by Timestamp ascending.
func SortPairsOldestFirst(pairs []QuestionAnswerPair) []QuestionAnswerPair {
	sorted := make([]QuestionAnswerPair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// ExchangeStatus is the lifecycle state of a LiveExchange.
type ExchangeStatus int

const (
	// ExchangePending is the only non-terminal state.
	ExchangePending ExchangeStatus = iota
	// ExchangeAnswered holds an answer or an inline notice.
	ExchangeAnswered
	// ExchangeFailed ends an exchange whose error could not be classified.
	ExchangeFailed
)

// String returns the string representation of the status.
func (s ExchangeStatus) String() string {
	switch s {
	case ExchangePending:
		return "pending"
	case ExchangeAnswered:
		return "answered"
	case ExchangeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s ExchangeStatus) IsTerminal() bool {
	return s != ExchangePending
}

// LiveExchange is a question asked during the current workspace visit.
// It exists only client-side; LocalID targets in-place updates.
type LiveExchange struct {
	LocalID  uint64
	Question string
	Answer   string
	Status   ExchangeStatus
}

// SubmissionStatus tells the shell whether a question is in flight.
type SubmissionStatus int

const (
	// SubmissionIdle means no request is awaited.
	SubmissionIdle SubmissionStatus = iota
	// SubmissionPending means exactly one request is awaited.
	SubmissionPending
)

// String returns the string representation of the status.
func (s SubmissionStatus) String() string {
	if s == SubmissionPending {
		return "pending"
	}
	return "idle"
}

// DisplayEntry is one row of the merged transcript.
type DisplayEntry struct {
	Question string
	Answer   string
	Status   ExchangeStatus

	// Persisted is true for rows read from the server.
	Persisted bool

	// Timestamp is set for persisted rows only.
	Timestamp time.Time

	// LocalID is set for live rows only.
	LocalID uint64
}

// Question is a request handed to the answering backend.
type Question struct {
	DocumentID string
	SessionID  string
	Text       string
}
