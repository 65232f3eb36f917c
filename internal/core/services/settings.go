package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyComposerMode     = "composer.mode"
	keyAutosaveInterval = "composer.autosave_interval"
	keyHistoryLimit     = "composer.history_limit"
	keyMaxCandidates    = "composer.max_candidates"
)

// SettingsService manages composer preferences.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, falling back to defaults for missing
// or invalid values.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Mode:               s.getMode(defaults.Mode),
		MaxCandidates:      s.getInt(keyMaxCandidates, defaults.MaxCandidates),
		HistoryLimit:       s.getInt(keyHistoryLimit, defaults.HistoryLimit),
		AutosaveIntervalMs: s.getDurationMs(keyAutosaveInterval, defaults.AutosaveIntervalMs),
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if !settings.Mode.IsValid() {
		return fmt.Errorf("%w: composer mode %q", domain.ErrInvalidInput, settings.Mode)
	}
	if err := s.configStore.Set(keyComposerMode, settings.Mode.String()); err != nil {
		return fmt.Errorf("save composer mode: %w", err)
	}
	if err := s.configStore.Set(keyMaxCandidates, settings.MaxCandidates); err != nil {
		return fmt.Errorf("save max candidates: %w", err)
	}
	if err := s.configStore.Set(keyHistoryLimit, settings.HistoryLimit); err != nil {
		return fmt.Errorf("save history limit: %w", err)
	}
	interval := (time.Duration(settings.AutosaveIntervalMs) * time.Millisecond).String()
	if err := s.configStore.Set(keyAutosaveInterval, interval); err != nil {
		return fmt.Errorf("save autosave interval: %w", err)
	}
	return nil
}

// SetMode updates the default composer mode.
func (s *SettingsService) SetMode(mode domain.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid composer mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Mode = mode

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDurationMs(key string, defaultVal int) int {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return int(d / time.Millisecond)
}

func (s *SettingsService) getMode(defaultVal domain.Mode) domain.Mode {
	val := s.configStore.GetString(keyComposerMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.Mode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
