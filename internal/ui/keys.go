package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// formKeys are the host bindings shown in the help bar
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Reload key.Binding
	Sort   key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeyMap implements help.KeyMap for whatever currently has focus
type helpKeyMap struct {
	short []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding {
	return k.short
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.short}
}
