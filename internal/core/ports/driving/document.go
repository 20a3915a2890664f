package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DocumentService manages the document catalogue.
type DocumentService interface {
	// List returns every uploaded document.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, documentID string) error

	// Upload sends a local PDF file. Returns the server's confirmation text.
	Upload(ctx context.Context, path string) (string, error)

	// Import asks the backend to download a document. Returns the server's confirmation text.
	Import(ctx context.Context, link string) (string, error)

	// Open initialises a document and navigates to its workspace.
	Open(ctx context.Context, documentID string) error
}
