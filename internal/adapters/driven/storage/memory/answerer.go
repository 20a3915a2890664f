package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Answerer implements the interface.
var _ driven.Answerer = (*Answerer)(nil)

// AnswerFunc produces an answer for a question.
type AnswerFunc func(ctx context.Context, q domain.Question) (string, error)

// Answerer answers questions in-process and records confirmed exchanges in
// a SessionStore, mirroring what the backend persists.
type Answerer struct {
	sessions *SessionStore
	answer   AnswerFunc

	mu    sync.Mutex
	calls []domain.Question
}

// NewAnswerer creates an answerer. A nil fn echoes the question back.
func NewAnswerer(sessions *SessionStore, fn AnswerFunc) *Answerer {
	if fn == nil {
		fn = func(_ context.Context, q domain.Question) (string, error) {
			return "You asked: " + q.Text, nil
		}
	}
	return &Answerer{sessions: sessions, answer: fn}
}

// Ask answers q, failing with a not-found error for unknown sessions.
func (a *Answerer) Ask(ctx context.Context, q domain.Question) (string, error) {
	a.mu.Lock()
	a.calls = append(a.calls, q)
	a.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !a.sessions.HasSession(q.SessionID) {
		return "", domain.NewRemoteError(domain.ErrorKindNotFound, http.StatusNotFound, "Session not found")
	}

	answer, err := a.answer(ctx, q)
	if err != nil {
		return "", err
	}

	if err := a.sessions.AppendExchange(q.SessionID, domain.QuestionAnswerPair{
		Question: q.Text,
		Answer:   answer,
	}); err != nil {
		return "", domain.NewRemoteError(domain.ErrorKindNotFound, http.StatusNotFound, "Session not found")
	}
	return answer, nil
}

// Calls returns the questions received so far.
func (a *Answerer) Calls() []domain.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Question, len(a.calls))
	copy(out, a.calls)
	return out
}
