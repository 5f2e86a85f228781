package searchselect

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keys a focused select reacts to
type KeyMap struct {
	// closed control
	Open  key.Binding
	Clear key.Binding

	// open panel
	Dismiss  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Choose   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "down"),
			key.WithHelp("enter", "open"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("del", "clear"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
	}
}

// ClosedHelp returns the bindings relevant while the panel is closed
func (k KeyMap) ClosedHelp() []key.Binding {
	return []key.Binding{k.Open, k.Clear}
}

// OpenHelp returns the bindings relevant while the panel is open
func (k KeyMap) OpenHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Dismiss}
}
