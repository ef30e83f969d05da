// Package views contains the screens hosted by the application.
package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Title       lipgloss.Style
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	Axis       lipgloss.Style
	Gutter     lipgloss.Style
	GroupTitle lipgloss.Style
	Grid       lipgloss.Style
	Entry      lipgloss.Style
	EntryAlt   lipgloss.Style
	Selected   lipgloss.Style

	ScrollTrack lipgloss.Style
	ScrollBand  lipgloss.Style
	ScrollThumb lipgloss.Style

	ChartAxis lipgloss.Style
	ChartBar  lipgloss.Style

	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style

	Error lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view
	Name() string

	// ShortHelp returns keybindings to show in the navbar
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}

// SourceErrorMsg reports a failure of the data source.
type SourceErrorMsg struct {
	Err error
}

// ReloadMsg asks a view to reload its data from scratch.
type ReloadMsg struct{}
