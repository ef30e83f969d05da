// Package metrics renders the top status bar with layout figures of the
// current view.
package metrics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// Data holds the values shown in the bar.
type Data struct {
	Source               string
	Visible              timeline.TimeWindow
	Unit                 timeline.TimeUnit
	Entries              int
	Groups               int
	Stacked              bool
	HorizontalRecomputes uint64
	VerticalRecomputes   uint64
}

// UpdateMsg is sent when metrics should be updated.
type UpdateMsg struct {
	Data Data
}

// Styles holds the styles needed by the metrics bar.
type Styles struct {
	Bar   lipgloss.Style
	Fill  lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles returns default styles for the metrics bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:   lipgloss.NewStyle(),
		Fill:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle().Faint(true),
		Value: lipgloss.NewStyle().Bold(true),
		Error: lipgloss.NewStyle().Bold(true),
	}
}

// Model defines state for the metrics bar component.
type Model struct {
	styles Styles
	data   Data
	err    error
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new metrics bar model.
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

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// WithData sets the initial data.
func WithData(d Data) Option {
	return func(m *Model) {
		m.data = d
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetData sets the metrics data.
func (m *Model) SetData(d Data) {
	m.data = d
}

// SetError shows err at the end of the bar until it is cleared with nil.
func (m *Model) SetError(err error) {
	m.err = err
}

// Err returns the error currently shown.
func (m Model) Err() error {
	return m.err
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the height of the metrics bar (always 1).
func (m Model) Height() int {
	return 1
}

// Data returns the current metrics data.
func (m Model) Data() Data {
	return m.data
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(UpdateMsg); ok {
		m.data = msg.Data
	}
	return m, nil
}

// View renders the metrics bar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	items := make([]string, 0, 8)
	add := func(label, value string) {
		items = append(items, m.styles.Label.Render(label+" ")+m.styles.Value.Render(value))
	}

	if m.data.Source != "" {
		add("Source:", m.data.Source)
	}
	if m.data.Visible.Valid() {
		add("View:", format.Window(m.data.Visible))
		add("Unit:", m.data.Unit.String())
	}
	add("Entries:", format.Number(int64(m.data.Entries)))
	add("Groups:", format.Number(int64(m.data.Groups)))
	stacking := "off"
	if m.data.Stacked {
		stacking = "on"
	}
	add("Stack:", stacking)
	add("Layouts:", fmt.Sprintf("%d/%d", m.data.HorizontalRecomputes, m.data.VerticalRecomputes))
	if m.err != nil {
		items = append(items, m.styles.Error.Render(m.err.Error()))
	}

	sep := m.styles.Fill.Render("  ")
	content := m.styles.Fill.Render(" ") + strings.Join(items, sep)
	content = ansi.Truncate(content, m.width, "…")
	if w := ansi.StringWidth(content); w < m.width {
		content += m.styles.Fill.Render(strings.Repeat(" ", m.width-w))
	}

	return m.styles.Bar.Render(content)
}
