package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// ListSessions returns the sessions of a document.
func (c *Client) ListSessions(ctx context.Context, documentID string) ([]domain.Session, error) {
	var resp sessionsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("get_all_sessions", documentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]domain.Session, len(resp.SessionData))
	for i, s := range resp.SessionData {
		sessions[i] = domain.Session{
			ID:         string(s.SessionID),
			DocumentID: documentID,
			CreatedAt:  time.Time(s.CreatedAt),
		}
	}
	return sessions, nil
}

// CreateSession opens a new session for a document.
func (c *Client) CreateSession(ctx context.Context, documentID string) (*domain.Session, error) {
	var resp newSessionResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("new_session", documentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if resp.SessionID == "" {
		return nil, fmt.Errorf("create session: %w", domain.NewRemoteError(domain.ErrorKindOther, 0, "response has no session_id"))
	}

	return &domain.Session{
		ID:         string(resp.SessionID),
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}, nil
}

// DeleteSession removes a session and its history.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.endpoint("delete_session", sessionID), nil, nil); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

// ListPersistedExchanges returns the confirmed exchanges of a session.
func (c *Client) ListPersistedExchanges(ctx context.Context, sessionID string) ([]domain.QuestionAnswerPair, error) {
	var resp exchangesResponse
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("get_all_question_answer", sessionID), nil, &resp); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	pairs := make([]domain.QuestionAnswerPair, len(resp.Data))
	for i, e := range resp.Data {
		pairs[i] = domain.QuestionAnswerPair{
			Question:  e.Question,
			Answer:    e.Answer,
			Timestamp: time.Time(e.Timestamp),
		}
	}
	return pairs, nil
}
