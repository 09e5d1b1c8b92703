// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateResults   State = "results"
	StateNoResults State = "no_results"
	StateError     State = "error"
)

// Bar displays the match counter, diagnostics and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	cursor  int
	total   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateLoading,
		cursor: -1,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	var text string
	switch b.state {
	case StateLoading:
		text = b.styles.Muted.Render("Loading profiles...")
	case StateError:
		return b.styles.Error.Render("Error: " + b.message)
	case StateNoResults:
		text = b.styles.Muted.Render("No matches")
	case StateResults:
		text = b.styles.Normal.Render(b.Counter())
	case StateReady:
		text = b.styles.Muted.Render("Ready")
	}
	if b.message != "" {
		text += "  " + b.styles.Warning.Render(b.message)
	}
	return text
}

func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.state == StateResults {
		bindings = b.keymap.ResultsHelp()
	} else {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// Counter formats the cursor position as "n/total", or "total matches"
// when nothing is selected.
func (b *Bar) Counter() string {
	if b.cursor < 0 {
		if b.total == 1 {
			return "1 match"
		}
		return fmt.Sprintf("%d matches", b.total)
	}
	return fmt.Sprintf("%d/%d", b.cursor+1, b.total)
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the diagnostic message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the diagnostic message.
func (b *Bar) Message() string {
	return b.message
}

// SetPosition sets the cursor and total match count. A negative cursor
// means nothing is selected.
func (b *Bar) SetPosition(cursor, total int) {
	b.cursor = cursor
	b.total = total
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
