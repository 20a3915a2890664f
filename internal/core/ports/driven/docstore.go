package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DocumentStore is the backend's document catalogue.
type DocumentStore interface {
	// ListDocuments returns every uploaded document.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and everything derived from it.
	DeleteDocument(ctx context.Context, id string) error

	// UploadDocument sends file content under the given name.
	// Returns the server's confirmation text.
	UploadDocument(ctx context.Context, name string, content io.Reader) (string, error)

	// ImportDocument asks the backend to download a document from a link.
	// Returns the server's confirmation text.
	ImportDocument(ctx context.Context, link string) (string, error)

	// InitializeDocument prepares a document for answering.
	// The first initialisation of a document may take minutes.
	InitializeDocument(ctx context.Context, id string) error
}
