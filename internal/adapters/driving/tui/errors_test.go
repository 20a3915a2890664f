package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingDocumentService,
		ErrMissingWorkspaceService,
		ErrMissingNavigationService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingDocumentService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingDocumentService.Error(), "document service")
}

func TestErrMissingWorkspaceService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingWorkspaceService.Error(), "workspace service")
}

func TestErrMissingNavigationService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingNavigationService.Error(), "navigation service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
