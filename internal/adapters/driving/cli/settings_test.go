package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range settingsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set", "wizard"}, names)
}

func TestSettingsShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "backend.base_url")
	assert.Contains(t, out, "backend.base_url = "+domain.DefaultAppSettings().Backend.BaseURL)
	assert.Contains(t, out, "notices.rate_limited")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsSetCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", "backend.timeout_seconds", "120")

	require.NoError(t, err)
	assert.Contains(t, out, "Set backend.timeout_seconds = 120")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, float64(120), settings.Backend.Timeout.Seconds())
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "backend.colour", "blue"},
		{"negative timeout", "backend.timeout_seconds", "-5"},
		{"non numeric rate", "backend.requests_per_second", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(t, "settings", "set", tt.key, tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsSetCmd_NegativeValueReachesValidation(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", "backend.timeout_seconds", "-5")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must be a positive number of seconds")
}

func TestSettingsSetCmd_DashDash(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", "--", "notices.cancelled", "-stopped-")

	require.NoError(t, err)
	assert.Contains(t, out, "Set notices.cancelled = -stopped-")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "-stopped-", settings.Notices.Cancelled)
}

func TestSettingsWizardCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	// Answers follow key order: base_url, requests_per_second, then the rest kept.
	rootCmd.SetIn(strings.NewReader("http://example.test\n0.5\n\n\n\n\n"))

	out, err := execute(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration complete, 2 settings changed.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", settings.Backend.BaseURL)
	assert.Equal(t, 0.5, settings.Backend.RequestsPerSecond)
}

func TestSettingsWizardCmd_KeepsValuesOnEmptyInput(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(strings.NewReader(""))

	out, err := execute(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration complete, 0 settings changed.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Backend.BaseURL, settings.Backend.BaseURL)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
