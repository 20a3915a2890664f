package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// DocumentOutput represents one uploaded document.
type DocumentOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// ListSessionsInput is the input schema for the list_sessions tool.
type ListSessionsInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document whose sessions to list"`
}

// SessionOutput represents one session.
type SessionOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// ListSessionsOutput is the output schema for the list_sessions tool.
type ListSessionsOutput struct {
	Sessions []SessionOutput `json:"sessions"`
	Count    int             `json:"count"`
}

// AskQuestionInput is the input schema for the ask_question tool.
type AskQuestionInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to ask about"`
	SessionID  string `json:"session_id,omitempty" jsonschema:"the session to ask in; a new session is created when empty"`
	Question   string `json:"question" jsonschema:"the question to ask"`
}

// AskQuestionOutput is the output schema for the ask_question tool.
type AskQuestionOutput struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`

	// Notice is set when the answer is a notice rather than a model
	// answer, for example "cancelled" or "rate_limited".
	Notice string `json:"notice,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents uploaded to the backend",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List the question sessions of a document, newest first",
	}, s.handleListSessions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about a document and wait for the answer",
	}, s.handleAskQuestion)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:        docs[i].ID,
			Name:      docs[i].DisplayName,
			Type:      docs[i].Extension(),
			CreatedAt: docs[i].CreatedAt.Format(domain.TimestampLayout),
		}
	}
	return nil, output, nil
}

// handleListSessions handles the list_sessions tool invocation.
func (s *Server) handleListSessions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSessionsInput,
) (*mcp.CallToolResult, ListSessionsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(input.DocumentID, ""); err != nil {
		return nil, ListSessionsOutput{}, err
	}

	entries, err := s.ports.Workspace.Sessions(ctx)
	if err != nil {
		return nil, ListSessionsOutput{}, err
	}

	output := ListSessionsOutput{
		Sessions: make([]SessionOutput, len(entries)),
		Count:    len(entries),
	}
	for i := range entries {
		output.Sessions[i] = SessionOutput{
			ID:        entries[i].ID,
			Title:     entries[i].Title(),
			CreatedAt: entries[i].CreatedAt.Format(domain.TimestampLayout),
		}
	}
	return nil, output, nil
}

// handleAskQuestion handles the ask_question tool invocation.
func (s *Server) handleAskQuestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskQuestionInput,
) (*mcp.CallToolResult, AskQuestionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(input.DocumentID, input.SessionID); err != nil {
		return nil, AskQuestionOutput{}, err
	}

	ws := s.ports.Workspace
	if input.SessionID == "" {
		if _, err := ws.CreateSession(ctx); err != nil {
			return nil, AskQuestionOutput{}, err
		}
	}
	sessionID := s.ports.Navigation.ActiveSessionID()

	outcome, err := ws.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskQuestionOutput{}, err
	}
	if outcome.Fatal {
		return nil, AskQuestionOutput{}, fmt.Errorf("ask question: %w", outcome.Err)
	}

	output := AskQuestionOutput{SessionID: sessionID}
	if outcome.Err != nil {
		output.Notice = outcome.Kind.String()
	}

	entry := lastLiveEntry(ws.Entries())
	if entry == nil {
		return nil, output, errors.New("ask question: no answer recorded")
	}
	output.Answer = entry.Answer
	return nil, output, nil
}

// lastLiveEntry returns the most recent exchange of this process.
func lastLiveEntry(entries []domain.DisplayEntry) *domain.DisplayEntry {
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].Persisted {
			return &entries[i]
		}
	}
	return nil
}
