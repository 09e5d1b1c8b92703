// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Printable keys are left to the query input.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Next moves to the next match.
	Next key.Binding

	// Previous moves to the previous match.
	Previous key.Binding

	// Clear empties the query.
	Clear key.Binding

	// ToggleIntent switches between centring and selecting the focused frame.
	ToggleIntent key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "enter"),
			key.WithHelp("↓", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "shift+tab"),
			key.WithHelp("↑", "previous"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		ToggleIntent: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "center/select"),
		),
	}
}

// ShortHelp returns the bindings shown when there are no matches.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// ResultsHelp returns the bindings shown while matches are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.ToggleIntent, k.Clear, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
