package ui

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings handled by the app itself rather than the
// timeline view. They work while no dialog is open.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	DevTools key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "keys")),
		DevTools: key.NewBinding(key.WithKeys("f12", "~"), key.WithHelp("~", "dev log")),
	}
}

// ShortHelp returns the navbar bindings that follow the timeline's own.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// General returns the bindings listed under General in the keys dialog.
func (k KeyMap) General() []key.Binding {
	return []key.Binding{k.Help, k.DevTools, k.Quit}
}
