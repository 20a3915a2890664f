package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docchat resources.
	uriScheme = "docchat://"
)

// historyEntry is one row of the history resource.
type historyEntry struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all uploaded documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/sessions/{sessionId}/history",
		Name:        "session-history",
		Description: "Question and answer history of a session, oldest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleDocumentsResource returns every uploaded document.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListDocuments(ctx, nil, ListDocumentsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return jsonResult(req.Params.URI, output.Documents)
}

// handleHistoryResource returns the history the backend stored for a session.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	documentID, sessionID := extractHistoryIDs(req.Params.URI)
	if documentID == "" || sessionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(documentID, sessionID); err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	if err := s.ports.Workspace.EnterSession(ctx); err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	rows := make([]historyEntry, 0)
	for _, entry := range s.ports.Workspace.Entries() {
		if !entry.Persisted {
			continue
		}
		rows = append(rows, historyEntry{
			Question:  entry.Question,
			Answer:    entry.Answer,
			Timestamp: entry.Timestamp.Format(domain.TimestampLayout),
		})
	}
	return jsonResult(req.Params.URI, rows)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryIDs extracts the ids from a URI like
// docchat://documents/{documentId}/sessions/{sessionId}/history.
func extractHistoryIDs(uri string) (documentID, sessionID string) {
	const prefix = uriScheme + "documents/"
	const suffix = "/history"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return "", ""
	}

	rest := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	documentID, sessionID, ok := strings.Cut(rest, "/sessions/")
	if !ok || strings.Contains(sessionID, "/") {
		return "", ""
	}
	return documentID, sessionID
}
