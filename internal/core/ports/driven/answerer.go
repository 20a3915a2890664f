package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// Answerer answers questions about a document within a session.
//
// Cancelling ctx is the cancellation token: implementations must stop
// waiting and return promptly. Failures should be *domain.RemoteError
// so callers can classify them.
type Answerer interface {
	Ask(ctx context.Context, question domain.Question) (string, error)
}
