package mcp

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestServer_handleListDocuments(t *testing.T) {
	f := newFixture(t, nil)

	_, output, err := f.server.handleListDocuments(context.Background(), nil, ListDocumentsInput{})

	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, DocumentOutput{
		ID:        "doc-1",
		Name:      "report.pdf",
		Type:      "PDF",
		CreatedAt: "2024-02-01 08:30:00",
	}, output.Documents[0])
}

func TestServer_handleListSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		f := newFixture(t, nil)
		older := f.seedSession(t)
		newer := f.seedSession(t)

		_, output, err := f.server.handleListSessions(ctx, nil, ListSessionsInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		require.Equal(t, 2, output.Count)
		assert.Equal(t, newer.ID, output.Sessions[0].ID)
		assert.Equal(t, older.ID, output.Sessions[1].ID)
		assert.Equal(t, "2024-03-01 09:03:00", output.Sessions[0].CreatedAt)
	})

	t.Run("document id is required", func(t *testing.T) {
		f := newFixture(t, nil)

		_, _, err := f.server.handleListSessions(ctx, nil, ListSessionsInput{})

		assert.Error(t, err)
	})
}

func TestServer_handleAskQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session when none is given", func(t *testing.T) {
		f := newFixture(t, nil)

		_, output, err := f.server.handleAskQuestion(ctx, nil, AskQuestionInput{
			DocumentID: "doc-1",
			Question:   "What is it?",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, output.SessionID)
		assert.True(t, f.sessions.HasSession(output.SessionID))
		assert.Equal(t, "You asked: What is it?", output.Answer)
		assert.Empty(t, output.Notice)
	})

	t.Run("asks in an existing session", func(t *testing.T) {
		f := newFixture(t, nil)
		session := f.seedSession(t)

		_, output, err := f.server.handleAskQuestion(ctx, nil, AskQuestionInput{
			DocumentID: "doc-1",
			SessionID:  session.ID,
			Question:   "And then?",
		})

		require.NoError(t, err)
		assert.Equal(t, session.ID, output.SessionID)
		assert.Equal(t, "You asked: And then?", output.Answer)
	})

	t.Run("blank question gets guidance", func(t *testing.T) {
		f := newFixture(t, nil)

		_, output, err := f.server.handleAskQuestion(ctx, nil, AskQuestionInput{DocumentID: "doc-1", Question: "  "})

		require.NoError(t, err)
		assert.Equal(t, domain.EmptyQuestionGuidance, output.Answer)
	})

	t.Run("rate limit is reported as a notice", func(t *testing.T) {
		f := newFixture(t, func(context.Context, domain.Question) (string, error) {
			return "", domain.NewRemoteError(domain.ErrorKindRateLimited, http.StatusTooManyRequests, "Slow down.")
		})

		_, output, err := f.server.handleAskQuestion(ctx, nil, AskQuestionInput{DocumentID: "doc-1", Question: "q"})

		require.NoError(t, err)
		assert.Equal(t, "rate_limited", output.Notice)
		assert.Equal(t, "Slow down.", output.Answer)
	})

	t.Run("unknown session is an error", func(t *testing.T) {
		f := newFixture(t, nil)

		_, _, err := f.server.handleAskQuestion(ctx, nil, AskQuestionInput{
			DocumentID: "doc-1",
			SessionID:  "missing",
			Question:   "q",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.True(t, f.nav.Location().IsRoot())
		require.Len(t, f.notices, 1)
		assert.Equal(t, "Session not found", f.notices[0].Message)
	})
}
