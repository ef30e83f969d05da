// Package navbar renders the bottom bar with the brand and key hints.
package navbar

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar   lipgloss.Style
	Brand lipgloss.Style
	Key   lipgloss.Style
	Item  lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:   lipgloss.NewStyle(),
		Brand: lipgloss.NewStyle().Bold(true),
		Key:   lipgloss.NewStyle().Bold(true),
		Item:  lipgloss.NewStyle(),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles   Styles
	bindings []key.Binding
	brand    string
	width    int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithBindings sets the key bindings shown as hints.
func WithBindings(bindings []key.Binding) Option {
	return func(m *Model) {
		m.bindings = bindings
	}
}

// WithBrand sets the name shown on the right.
func WithBrand(brand string) Option {
	return func(m *Model) {
		m.brand = brand
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetBindings sets the key bindings shown as hints.
func (m *Model) SetBindings(bindings []key.Binding) {
	m.bindings = bindings
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the navbar. Hints that do not fit are dropped from the end.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	brand := ""
	if m.brand != "" {
		brand = m.styles.Brand.Render(m.brand) + " "
	}
	room := m.width - 1 - ansi.StringWidth(brand)

	var items strings.Builder
	used := 0
	for _, b := range m.bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		if help.Key == "" {
			continue
		}
		item := m.styles.Key.Render(help.Key) + " " + m.styles.Item.Render(help.Desc) + "  "
		w := ansi.StringWidth(item)
		if used+w > room {
			break
		}
		items.WriteString(item)
		used += w
	}

	left := " " + items.String()
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(brand)
	if gap < 0 {
		return m.styles.Bar.Render(ansi.Truncate(left, m.width, ""))
	}
	return m.styles.Bar.Render(left + strings.Repeat(" ", gap) + brand)
}
