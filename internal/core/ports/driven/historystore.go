package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// HistoryStore reads the server-confirmed exchanges of a session.
type HistoryStore interface {
	// ListPersistedExchanges returns the pairs of a session in no particular order.
	ListPersistedExchanges(ctx context.Context, sessionID string) ([]domain.QuestionAnswerPair, error)
}

// HistoryInvalidator is implemented by history stores that cache reads.
type HistoryInvalidator interface {
	// Invalidate drops anything cached for the session.
	Invalidate(sessionID string)
}
