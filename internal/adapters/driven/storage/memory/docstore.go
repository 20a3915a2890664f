package memory

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu          sync.RWMutex
	documents   map[string]domain.Document
	contents    map[string][]byte
	initialized map[string]bool
	now         func() time.Time
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:   make(map[string]domain.Document),
		contents:    make(map[string][]byte),
		initialized: make(map[string]bool),
		now:         time.Now,
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
}

// ListDocuments returns documents ordered by creation time.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.contents, id)
	delete(s.initialized, id)
	return nil
}

// UploadDocument stores content under a generated ID.
func (s *DocumentStore) UploadDocument(_ context.Context, name string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	doc := s.add(name)
	s.mu.Lock()
	s.contents[doc.ID] = data
	s.mu.Unlock()

	return fmt.Sprintf("File %s uploaded successfully", name), nil
}

// ImportDocument records a document named after the link's last path segment.
func (s *DocumentStore) ImportDocument(_ context.Context, link string) (string, error) {
	name := path.Base(strings.TrimRight(link, "/"))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: cannot derive a file name from %q", domain.ErrInvalidInput, link)
	}

	s.add(name)
	return fmt.Sprintf("File %s downloaded successfully", name), nil
}

// InitializeDocument marks a document as ready for answering.
func (s *DocumentStore) InitializeDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	s.initialized[id] = true
	return nil
}

// Initialized reports whether InitializeDocument succeeded for id.
func (s *DocumentStore) Initialized(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized[id]
}

// Content returns the uploaded bytes of a document.
func (s *DocumentStore) Content(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.contents[id]
	return data, ok
}

func (s *DocumentStore) add(name string) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := domain.Document{
		ID:          uuid.NewString(),
		DisplayName: name,
		CreatedAt:   s.now(),
	}
	s.documents[doc.ID] = doc
	return doc
}
