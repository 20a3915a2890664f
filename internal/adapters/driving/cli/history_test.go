package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetHistoryFlags() {
	resetFlags(historyCmd)
}

func TestHistoryCmd_Text(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetHistoryFlags()
	session := env.seedSession(t)

	out, err := execute(t, "history", "doc-1", "--session", session.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "[2024-03-01 09:02:00]")
	assert.Contains(t, out, "Q: What is it?")
	assert.Contains(t, out, "A: A quarterly report.")
}

func TestHistoryCmd_JSON(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetHistoryFlags()
	session := env.seedSession(t)

	out, err := execute(t, "history", "doc-1", "--session", session.ID, "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"question": "What is it?"`)
	assert.Contains(t, out, `"timestamp": "2024-03-01 09:02:00"`)
}

func TestHistoryCmd_EmptySession(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetHistoryFlags()
	session, err := env.sessions.CreateSession(t.Context(), "doc-1")
	require.NoError(t, err)

	out, err := execute(t, "history", "doc-1", "--session", session.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "No questions asked in this session yet.")
}

func TestHistoryCmd_RequiresSession(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetHistoryFlags()

	_, err := execute(t, "history", "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session")
}

func TestHistoryCmd_UnknownSession(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetHistoryFlags()

	_, err := execute(t, "history", "doc-1", "--session", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load history")
}
