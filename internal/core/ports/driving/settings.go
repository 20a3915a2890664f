package driving

import "github.com/custodia-labs/docchat-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key.
	Set(key, value string) error

	// Keys returns the dotted keys accepted by Set.
	Keys() []string

	// List returns every setting with its effective value, ordered by key.
	List() ([]domain.Setting, error)
}
