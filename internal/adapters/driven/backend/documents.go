package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// ListDocuments returns every uploaded document.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var files []fileInfo
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(""), nil, &files); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, len(files))
	for i, f := range files {
		docs[i] = f.toDomain()
	}
	return docs, nil
}

// DeleteDocument removes a document and its stored file.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.endpoint("delete", id), nil, nil); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// UploadDocument sends content as multipart field "file".
// Returns the backend's confirmation text.
func (c *Client) UploadDocument(ctx context.Context, name string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	var resp detailResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint("upload", ""), &body, writer.FormDataContentType(), &resp); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return resp.Detail, nil
}

// ImportDocument asks the backend to download a PDF from link.
func (c *Client) ImportDocument(ctx context.Context, link string) (string, error) {
	var resp detailResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("download", ""), downloadRequest{URL: link}, &resp); err != nil {
		return "", fmt.Errorf("import %s: %w", link, err)
	}
	return resp.Detail, nil
}

// InitializeDocument prepares the backend to answer questions about a document.
// The first initialisation of a document can take minutes.
func (c *Client) InitializeDocument(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("initialize", id), nil, nil); err != nil {
		return fmt.Errorf("initialize document %s: %w", id, err)
	}
	return nil
}
