package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// pdfMIME is the only content type the backend ingests.
const pdfMIME = "application/pdf"

// DocumentService manages the document catalogue and opens workspaces.
type DocumentService struct {
	store driven.DocumentStore
	nav   *Navigator
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.DocumentStore, nav *Navigator) *DocumentService {
	return &DocumentService{
		store: store,
		nav:   nav,
	}
}

// List returns every uploaded document.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document. If its workspace is open, navigation returns to the root.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if s.nav != nil && s.nav.DocumentID() == documentID {
		s.nav.GoRoot()
	}
	return nil
}

// Upload sends a local PDF. Other content types are rejected before any request.
func (s *DocumentService) Upload(ctx context.Context, path string) (string, error) {
	logger.Section("Upload")
	logger.Debug("Path: %s", path)

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect file type: %w", err)
	}
	if !mtype.Is(pdfMIME) {
		return "", fmt.Errorf("%w: %s is %s, only PDF files can be uploaded",
			domain.ErrUnsupportedType, filepath.Base(path), mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	detail, err := s.store.UploadDocument(ctx, filepath.Base(path), f)
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	return detail, nil
}

// Import asks the backend to download a document from an http(s) link.
func (s *DocumentService) Import(ctx context.Context, link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: please enter a download link", domain.ErrInvalidInput)
	}

	u, err := url.ParseRequestURI(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an http(s) link", domain.ErrInvalidInput, link)
	}

	detail, err := s.store.ImportDocument(ctx, link)
	if err != nil {
		return "", fmt.Errorf("import document: %w", err)
	}
	return detail, nil
}

// Open initialises a document and navigates to its workspace.
// Navigation is unchanged if initialisation fails.
func (s *DocumentService) Open(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}

	logger.Debug("Initialising document %s", documentID)
	if err := s.store.InitializeDocument(ctx, documentID); err != nil {
		return fmt.Errorf("initialize document: %w", err)
	}
	return s.nav.OpenDocument(documentID)
}
