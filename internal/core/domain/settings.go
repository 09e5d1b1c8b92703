package domain

import "time"

// Default setting values.
const (
	DefaultFuzzyThreshold = 0.3
	DefaultDisplayLimit   = 20
	DefaultWatchInterval  = 250 * time.Millisecond
)

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// FuzzyThreshold controls how loose approximate matching is.
	// 0 accepts only exact substrings, 1 accepts almost anything.
	FuzzyThreshold float64

	// FocusIntent is passed to the renderer when the cursor moves.
	FocusIntent FocusIntent
}

// Validate checks the search settings.
func (s SearchSettings) Validate() error {
	if s.FuzzyThreshold < 0 || s.FuzzyThreshold > 1 {
		return ErrInvalidInput
	}
	if !s.FocusIntent.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// DisplaySettings holds output configuration.
type DisplaySettings struct {
	// Limit is the default number of matches printed. 0 means no limit.
	Limit int
}

// WatchSettings holds profile watcher configuration.
type WatchSettings struct {
	// MinInterval is the shortest time between two reloads.
	MinInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Display holds output settings.
	Display DisplaySettings

	// Watch holds profile watcher settings.
	Watch WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			FuzzyThreshold: DefaultFuzzyThreshold,
			FocusIntent:    FocusCenter,
		},
		Display: DisplaySettings{
			Limit: DefaultDisplayLimit,
		},
		Watch: WatchSettings{
			MinInterval: DefaultWatchInterval,
		},
	}
}

// AllFocusIntents returns all available focus intents.
func AllFocusIntents() []FocusIntent {
	return []FocusIntent{FocusCenter, FocusSelect}
}
