package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func seedSessions(store *memory.SessionStore) {
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	store.SaveSession(domain.Session{ID: "old", DocumentID: "doc-1", CreatedAt: base})
	store.SaveSession(domain.Session{ID: "new", DocumentID: "doc-1", CreatedAt: base.Add(time.Hour)})
	store.SaveSession(domain.Session{ID: "other", DocumentID: "doc-2", CreatedAt: base})
}

func TestSessionRegistry_EntriesNewestFirst(t *testing.T) {
	store := memory.NewSessionStore()
	seedSessions(store)
	nav := NewNavigator(store)
	registry := NewSessionRegistry(store, nav)

	_, err := registry.Entries(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)

	require.NoError(t, nav.Push("/workspace/doc-1?session_id=old"))
	entries, err := registry.Entries(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].ID)
	assert.False(t, entries[0].Active)
	assert.Equal(t, "old", entries[1].ID)
	assert.True(t, entries[1].Active)
}

func TestSessionRegistry_EntriesNoneActive(t *testing.T) {
	store := memory.NewSessionStore()
	seedSessions(store)
	nav := NewNavigator(store)
	registry := NewSessionRegistry(store, nav)
	require.NoError(t, nav.OpenDocument("doc-1"))

	entries, err := registry.Entries(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.Active)
	}
}

func TestSessionRegistry_DeleteActiveClearsSession(t *testing.T) {
	store := memory.NewSessionStore()
	seedSessions(store)
	nav := NewNavigator(store)
	registry := NewSessionRegistry(store, nav)
	require.NoError(t, nav.Push("/workspace/doc-1?session_id=old"))

	wasActive, err := registry.Delete(context.Background(), "old")
	require.NoError(t, err)

	assert.True(t, wasActive)
	assert.Empty(t, nav.ActiveSessionID())
	assert.Equal(t, "doc-1", nav.DocumentID())
}

func TestSessionRegistry_DeleteInactiveKeepsSession(t *testing.T) {
	store := memory.NewSessionStore()
	seedSessions(store)
	nav := NewNavigator(store)
	registry := NewSessionRegistry(store, nav)
	require.NoError(t, nav.Push("/workspace/doc-1?session_id=old"))

	wasActive, err := registry.Delete(context.Background(), "new")
	require.NoError(t, err)

	assert.False(t, wasActive)
	assert.Equal(t, "old", nav.ActiveSessionID())

	entries, _ := registry.Entries(context.Background())
	assert.Len(t, entries, 1)
}

func TestSessionRegistry_DeleteFailure(t *testing.T) {
	store := &mockSessionStore{
		DeleteSessionFunc: func(context.Context, string) error {
			return errors.New("boom")
		},
	}
	nav := NewNavigator(store)
	registry := NewSessionRegistry(store, nav)
	require.NoError(t, nav.Push("/workspace/doc-1?session_id=s1"))

	_, err := registry.Delete(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, "s1", nav.ActiveSessionID())

	_, err = registry.Delete(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionRegistry_IsActive(t *testing.T) {
	nav := NewNavigator(&mockSessionStore{})
	registry := NewSessionRegistry(&mockSessionStore{}, nav)
	require.NoError(t, nav.Push("/workspace/doc-1?session_id=s1"))

	assert.True(t, registry.IsActive("s1"))
	assert.False(t, registry.IsActive("s2"))
	assert.False(t, registry.IsActive(""))
}
