// Package tui provides an interactive terminal user interface for
// searching flamegraph frames. It implements a driving adapter following
// hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
)

// Session is the search session driven by the TUI.
type Session interface {
	driving.SearchSession

	// SetFocuser sets the renderer notified when the cursor moves.
	SetFocuser(focuser driven.FrameFocuser)

	// SetFocusIntent sets how focused frames are brought into view.
	SetFocusIntent(intent domain.FocusIntent)

	// Match returns the match details for a frame, if it matched.
	Match(frame domain.Frame) (domain.FrameMatch, bool)
}

// SessionFactory creates a session that reports diagnostics to reporter.
// The App passes itself as reporter so messages land in the status bar.
type SessionFactory func(initialQuery string, reporter driven.Reporter) Session

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// NewSession creates the search session.
	NewSession SessionFactory

	// Settings provides the initial focus intent. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
