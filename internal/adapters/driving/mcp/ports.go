package mcp

import (
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents lists the document catalogue.
	Documents driving.DocumentService

	// Workspace asks questions and reads history in the active session.
	Workspace driving.WorkspaceService

	// Navigation selects the document and session a call works on.
	Navigation driving.NavigationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	if p.Navigation == nil {
		return ErrMissingNavigationService
	}
	return nil
}
