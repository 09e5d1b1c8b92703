// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// ProfilesLoaded carries a freshly loaded profile set, either at start-up
// or after watched files changed.
type ProfilesLoaded struct {
	Set     *domain.ProfileSet
	Changed []string
	Err     error
}

// Reported carries a diagnostic message for the status bar.
type Reported struct {
	Message string
}
