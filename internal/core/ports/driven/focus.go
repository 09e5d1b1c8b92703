package driven

import "github.com/custodia-labs/flamesearch/internal/core/domain"

// FrameFocuser brings a frame into view in whatever renders the flamegraph.
type FrameFocuser interface {
	// FocusFrame is called each time the search cursor lands on a frame.
	FocusFrame(frame domain.Frame, intent domain.FocusIntent)
}
