package views

import "charm.land/bubbles/v2/key"

// TimelineKeyMap defines the bindings of the timeline view.
type TimelineKeyMap struct {
	PanLeft     key.Binding
	PanRight    key.Binding
	PageLeft    key.Binding
	PageRight   key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Next        key.Binding
	Prev        key.Binding
	Deselect    key.Binding
	Home        key.Binding
	Period      key.Binding
	Stack       key.Binding
	Inspector   key.Binding
	InspectUp   key.Binding
	InspectDown key.Binding
	Density     key.Binding
	Reload      key.Binding
}

// DefaultTimelineKeyMap returns the default timeline bindings.
func DefaultTimelineKeyMap() TimelineKeyMap {
	return TimelineKeyMap{
		PanLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "pan right"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "page left"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "page right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "next entry"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "N"),
			key.WithHelp("shift+tab", "prev entry"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "deselect"),
		),
		Home: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "initial period"),
		),
		Period: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to period"),
		),
		Stack: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stacking"),
		),
		Inspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inspector"),
		),
		InspectUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "inspector up"),
		),
		InspectDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "inspector down"),
		),
		Density: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "density"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns the bindings shown in the navbar.
func (k TimelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Next, k.Period, k.Inspector}
}

// Navigation returns the bindings that move the visible window.
func (k TimelineKeyMap) Navigation() []key.Binding {
	return []key.Binding{
		k.PanLeft, k.PanRight, k.PageLeft, k.PageRight,
		k.ZoomIn, k.ZoomOut, k.ScrollUp, k.ScrollDown,
		k.PageUp, k.PageDown, k.Home, k.Period,
	}
}

// Entries returns the bindings that select and inspect entries.
func (k TimelineKeyMap) Entries() []key.Binding {
	return []key.Binding{
		k.Next, k.Prev, k.Deselect, k.Inspector, k.InspectUp, k.InspectDown,
	}
}

// Display returns the bindings that change the layout.
func (k TimelineKeyMap) Display() []key.Binding {
	return []key.Binding{k.Stack, k.Density, k.Reload}
}
