// Package tui provides an interactive terminal user interface for docchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents manages the document catalogue.
	Documents driving.DocumentService

	// Workspace is the interactive query session of the open document.
	Workspace driving.WorkspaceService

	// Navigation holds the location the active session is derived from.
	Navigation driving.NavigationService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	documents driving.DocumentService,
	workspace driving.WorkspaceService,
	navigation driving.NavigationService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Documents:  documents,
		Workspace:  workspace,
		Navigation: navigation,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Settings is optional; the settings view reports its absence.
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
