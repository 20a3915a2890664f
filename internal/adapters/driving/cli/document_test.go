package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range documentCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"list", "delete", "upload", "import", "init"}, names)
}

func TestDocumentListCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents:")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "Name: report")
	assert.Contains(t, out, "Type: PDF")
	assert.Contains(t, out, "Uploaded: 2024-02-01 08:30:00")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, env.documents.DeleteDocument(t.Context(), "doc-1"))

	out, err := execute(t, "documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents uploaded.")
}

func TestDocumentListCmd_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	_, err := execute(t, "documents", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document service not configured")
}

func TestDocumentDeleteCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "documents", "delete", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted document: doc-1")

	out, err = execute(t, "documents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents uploaded.")
}

func TestDocumentDeleteCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "documents", "delete")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentUploadCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"), 0o600))

	out, err := execute(t, "documents", "upload", pdf)

	require.NoError(t, err)
	assert.Contains(t, out, "File paper.pdf uploaded successfully")
}

func TestDocumentUploadCmd_RejectsNonPDF(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0o600))

	_, err := execute(t, "documents", "upload", txt)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only PDF files can be uploaded")
}

func TestDocumentImportCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "documents", "import", "https://example.com/files/guide.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "File guide.pdf downloaded successfully")
}

func TestDocumentImportCmd_InvalidLink(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "documents", "import", "not a link")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import document")
}

func TestDocumentInitCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "documents", "init", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document doc-1 is ready for questions.")
	assert.True(t, env.documents.Initialized("doc-1"))
}

func TestDocumentInitCmd_Unknown(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "documents", "init", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise document")
}
