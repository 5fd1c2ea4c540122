// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding
	Up   key.Binding
	Down key.Binding

	// Select confirms a place or a history entry.
	Select key.Binding

	// NextField moves focus between the origin and destination inputs.
	NextField key.Binding

	// Locate uses the current location as origin.
	Locate key.Binding

	// Start begins navigation.
	Start key.Binding

	// Stop ends navigation.
	Stop key.Binding

	// Advance moves to the next instruction.
	Advance key.Binding

	// Repeat narrates the active instruction again.
	Repeat key.Binding

	// Voice toggles narration.
	Voice key.Binding

	// Listen waits for one voice command.
	Listen key.Binding

	// Recompute retries the route computation.
	Recompute key.Binding

	// Share copies the share link.
	Share key.Binding

	// Save stores the route in history.
	Save key.Binding

	// Clear discards the selection.
	Clear key.Binding

	// History opens saved routes.
	History key.Binding

	// Delete removes a history entry.
	Delete key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
		Locate:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "my location")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Advance:   key.NewBinding(key.WithKeys("n", " "), key.WithHelp("n/space", "next")),
		Repeat:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Voice:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice on/off")),
		Listen:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "listen")),
		Recompute: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		Share:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		Save:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
		History:   key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "history")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	}
}

// PlannerHelp returns keybindings for the planner view.
func (k *KeyMap) PlannerHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Select, k.Locate, k.History, k.Back}
}

// RouteHelp returns keybindings for a ready route.
func (k *KeyMap) RouteHelp() []key.Binding {
	return []key.Binding{k.Start, k.Share, k.Save, k.Back}
}

// NavigationHelp returns keybindings while navigating.
func (k *KeyMap) NavigationHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Repeat, k.Voice, k.Listen, k.Stop}
}

// HistoryHelp returns keybindings for the history view.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.PlannerHelp(),
		{k.Start, k.Stop, k.Advance, k.Repeat},
		{k.Voice, k.Listen, k.Recompute, k.Clear},
		{k.Share, k.Save, k.Delete},
		{k.Help, k.Quit},
	}
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
