package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestDocumentStore_ListOrdersByCreation(t *testing.T) {
	store := NewDocumentStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SaveDocument(domain.Document{ID: "b", DisplayName: "b.pdf", CreatedAt: base.Add(time.Hour)})
	store.SaveDocument(domain.Document{ID: "a", DisplayName: "a.pdf", CreatedAt: base})

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestDocumentStore_Upload(t *testing.T) {
	store := NewDocumentStore()

	msg, err := store.UploadDocument(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Contains(t, msg, "report.pdf")

	docs, _ := store.ListDocuments(context.Background())
	require.Len(t, docs, 1)
	assert.Equal(t, "report.pdf", docs[0].DisplayName)

	content, ok := store.Content(docs[0].ID)
	assert.True(t, ok)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestDocumentStore_Import(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.ImportDocument(context.Background(), "https://example.com/files/paper.pdf")
	require.NoError(t, err)

	docs, _ := store.ListDocuments(context.Background())
	require.Len(t, docs, 1)
	assert.Equal(t, "paper.pdf", docs[0].DisplayName)
}

func TestDocumentStore_DeleteAndInitialize(t *testing.T) {
	store := NewDocumentStore()
	store.SaveDocument(domain.Document{ID: "doc-1", DisplayName: "x.pdf"})

	require.NoError(t, store.InitializeDocument(context.Background(), "doc-1"))
	assert.True(t, store.Initialized("doc-1"))

	require.NoError(t, store.DeleteDocument(context.Background(), "doc-1"))
	assert.False(t, store.Initialized("doc-1"))

	assert.ErrorIs(t, store.DeleteDocument(context.Background(), "doc-1"), domain.ErrNotFound)
	assert.ErrorIs(t, store.InitializeDocument(context.Background(), "doc-1"), domain.ErrNotFound)
}
