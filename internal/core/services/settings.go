package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFuzzyThreshold = "search.fuzzy_threshold"
	keyFocusIntent    = "search.focus_intent"
	keyDisplayLimit   = "display.limit"
	keyWatchInterval  = "watch.min_interval_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			FuzzyThreshold: s.getThreshold(defaults.Search.FuzzyThreshold),
			FocusIntent:    s.getFocusIntent(defaults.Search.FocusIntent),
		},
		Display: domain.DisplaySettings{
			Limit: s.getInt(keyDisplayLimit, defaults.Display.Limit),
		},
		Watch: domain.WatchSettings{
			MinInterval: s.getInterval(defaults.Watch.MinInterval),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Search.Validate(); err != nil {
		return fmt.Errorf("save search settings: %w", err)
	}
	if settings.Display.Limit < 0 || settings.Watch.MinInterval < 0 {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyFuzzyThreshold, settings.Search.FuzzyThreshold); err != nil {
		return fmt.Errorf("save fuzzy threshold: %w", err)
	}
	if err := s.configStore.Set(keyFocusIntent, settings.Search.FocusIntent.String()); err != nil {
		return fmt.Errorf("save focus intent: %w", err)
	}
	if err := s.configStore.Set(keyDisplayLimit, settings.Display.Limit); err != nil {
		return fmt.Errorf("save display limit: %w", err)
	}
	if err := s.configStore.Set(keyWatchInterval, int(settings.Watch.MinInterval/time.Millisecond)); err != nil {
		return fmt.Errorf("save watch interval: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyFuzzyThreshold:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Search.FuzzyThreshold = f
	case keyFocusIntent:
		settings.Search.FocusIntent = domain.FocusIntent(value)
	case keyDisplayLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Display.Limit = n
	case keyWatchInterval:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Watch.MinInterval = time.Duration(n) * time.Millisecond
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the configurable setting keys.
func (s *SettingsService) Keys() []string {
	return []string{keyFuzzyThreshold, keyFocusIntent, keyDisplayLimit, keyWatchInterval}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getThreshold(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(keyFuzzyThreshold); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(keyFuzzyThreshold)
	if val < 0 || val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFocusIntent(defaultVal domain.FocusIntent) domain.FocusIntent {
	intent := domain.FocusIntent(s.configStore.GetString(keyFocusIntent))
	if !intent.IsValid() {
		return defaultVal
	}
	return intent
}

func (s *SettingsService) getInterval(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(keyWatchInterval); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(keyWatchInterval)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}
