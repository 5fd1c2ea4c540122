package driving

import "github.com/custodia-labs/wayfinder-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// GetValue returns the effective value of a single key as text.
	GetValue(key string) (string, error)

	// SetValue parses and stores a single key.
	// Returns domain.ErrInvalidInput for unknown keys or bad values.
	SetValue(key, value string) error

	// Reset removes a stored key so its default applies.
	Reset(key string) error

	// Keys returns every supported key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
