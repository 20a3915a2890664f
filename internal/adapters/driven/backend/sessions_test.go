package backend

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestClient_ListSessions(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"detail": "success",
			"session_data": []map[string]any{
				{"session_id": "s-1", "created_at": "2024-03-01 10:00:00"},
				{"session_id": 2, "created_at": "2024-03-02 10:00:00"},
			},
		})
	})

	sessions, err := client.ListSessions(context.Background(), "9")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "s-1", sessions[0].ID)
	assert.Equal(t, "9", sessions[0].DocumentID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local), sessions[0].CreatedAt)
	assert.Equal(t, "2", sessions[1].ID)

	req, _ := rec.last()
	assert.Equal(t, "/get_all_sessions/9", req.URL.Path)
}

func TestClient_CreateSession(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"detail":     "Session 'abc' created successfully!",
			"session_id": "abc",
		})
	})

	session, err := client.CreateSession(context.Background(), "9")
	require.NoError(t, err)

	assert.Equal(t, "abc", session.ID)
	assert.Equal(t, "9", session.DocumentID)
	assert.False(t, session.CreatedAt.IsZero())

	req, _ := rec.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/new_session/9", req.URL.Path)
}

func TestClient_CreateSessionWithoutID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"detail": "ok"})
	})

	_, err := client.CreateSession(context.Background(), "9")
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestClient_DeleteSession(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
	})

	require.NoError(t, client.DeleteSession(context.Background(), "abc"))
	req, _ := rec.last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/delete_session/abc", req.URL.Path)
}

func TestClient_ListPersistedExchanges(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"detail": "success",
			"data": []map[string]string{
				{"question": "q1", "answer": "a1", "timestamp": "2024-03-01 10:00:01"},
			},
		})
	})

	pairs, err := client.ListPersistedExchanges(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Equal(t, domain.QuestionAnswerPair{
		Question:  "q1",
		Answer:    "a1",
		Timestamp: time.Date(2024, 3, 1, 10, 0, 1, 0, time.Local),
	}, pairs[0])

	req, _ := rec.last()
	assert.Equal(t, "/get_all_question_answer/abc", req.URL.Path)
}
