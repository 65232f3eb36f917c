package driving

import "github.com/custodia-labs/composer/internal/core/domain"

// SettingsService manages composer preferences.
type SettingsService interface {
	// Get retrieves current settings.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// SetMode updates the default composer mode.
	SetMode(mode domain.Mode) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
