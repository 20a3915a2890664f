package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func newDocumentFixture() (*DocumentService, *memory.DocumentStore, *Navigator) {
	docs := memory.NewDocumentStore()
	nav := NewNavigator(memory.NewSessionStore())
	return NewDocumentService(docs, nav), docs, nav
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDocumentService_List(t *testing.T) {
	svc, docs, _ := newDocumentFixture()
	docs.SaveDocument(domain.Document{ID: "a", DisplayName: "a.pdf", CreatedAt: time.Now()})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a.pdf", list[0].DisplayName)
}

func TestDocumentService_UploadPDF(t *testing.T) {
	svc, docs, _ := newDocumentFixture()
	path := writeTempFile(t, "paper.pdf", minimalPDF)

	detail, err := svc.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, detail, "paper.pdf")

	list, _ := docs.ListDocuments(context.Background())
	require.Len(t, list, 1)
	content, ok := docs.Content(list[0].ID)
	require.True(t, ok)
	assert.Equal(t, minimalPDF, string(content))
}

func TestDocumentService_UploadRejectsNonPDF(t *testing.T) {
	svc, docs, _ := newDocumentFixture()
	path := writeTempFile(t, "notes.pdf", "just some plain text\n")

	_, err := svc.Upload(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	list, _ := docs.ListDocuments(context.Background())
	assert.Empty(t, list)
}

func TestDocumentService_UploadMissingFile(t *testing.T) {
	svc, _, _ := newDocumentFixture()

	_, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestDocumentService_Import(t *testing.T) {
	svc, docs, _ := newDocumentFixture()

	_, err := svc.Import(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Import(context.Background(), "ftp://example.com/a.pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Import(context.Background(), "not a link")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Import(context.Background(), " https://example.com/papers/b.pdf ")
	require.NoError(t, err)

	list, _ := docs.ListDocuments(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "b.pdf", list[0].DisplayName)
}

func TestDocumentService_OpenInitializesFirst(t *testing.T) {
	svc, docs, nav := newDocumentFixture()
	docs.SaveDocument(domain.Document{ID: "doc-1", DisplayName: "a.pdf"})

	err := svc.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, nav.Location().IsRoot())

	require.NoError(t, svc.Open(context.Background(), "doc-1"))
	assert.True(t, docs.Initialized("doc-1"))
	assert.Equal(t, "doc-1", nav.DocumentID())
	assert.Empty(t, nav.ActiveSessionID())
}

func TestDocumentService_DeleteOpenDocumentGoesRoot(t *testing.T) {
	svc, docs, nav := newDocumentFixture()
	docs.SaveDocument(domain.Document{ID: "doc-1", DisplayName: "a.pdf"})
	docs.SaveDocument(domain.Document{ID: "doc-2", DisplayName: "b.pdf"})
	require.NoError(t, nav.Push("/workspace/doc-1?session_id=s1"))

	require.NoError(t, svc.Delete(context.Background(), "doc-2"))
	assert.Equal(t, "doc-1", nav.DocumentID())

	require.NoError(t, svc.Delete(context.Background(), "doc-1"))
	assert.True(t, nav.Location().IsRoot())

	assert.ErrorIs(t, svc.Delete(context.Background(), "doc-1"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}
