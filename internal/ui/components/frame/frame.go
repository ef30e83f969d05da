// Package frame draws a rounded box around a panel, with the panel title on
// the left of the top border and an optional meta label on the right.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StyleState holds styles for a focus state.
type StyleState struct {
	Title  lipgloss.Style
	Meta   lipgloss.Style
	Border lipgloss.Style
}

// Styles holds focus-aware styles for a frame.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// DefaultStyles returns default styles for a frame.
func DefaultStyles() Styles {
	state := StyleState{
		Title:  lipgloss.NewStyle().Bold(true),
		Meta:   lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
	return Styles{
		Focused: state,
		Blurred: state,
	}
}

// Model defines state for the frame component.
type Model struct {
	styles  Styles
	title   string
	meta    string
	content string
	width   int
	height  int
	focused bool
	border  lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		border: lipgloss.RoundedBorder(),
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

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMeta sets the label on the right of the top border.
func WithMeta(meta string) Option {
	return func(m *Model) {
		m.meta = meta
	}
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) {
		m.content = content
	}
}

// WithSize sets the outer width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithFocused sets the focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) {
		m.focused = focused
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetTitle sets the title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetMeta sets the label on the right of the top border.
func (m *Model) SetMeta(meta string) {
	m.meta = meta
}

// SetContent sets the content.
func (m *Model) SetContent(content string) {
	m.content = content
}

// SetSize sets the outer width and height.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// Focused returns the focus state.
func (m Model) Focused() bool {
	return m.focused
}

// Width returns the outer width.
func (m Model) Width() int {
	return m.width
}

// Height returns the outer height.
func (m Model) Height() int {
	return m.height
}

// InnerSize returns the space available to content.
func (m Model) InnerSize() (int, int) {
	return max(m.width-2, 0), max(m.height-2, 0)
}

// View renders the frame with the current content. Content lines are cut
// or padded to the inner width, and missing lines are blank.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}

	state := m.styles.Blurred
	if m.focused {
		state = m.styles.Focused
	}
	innerWidth, innerHeight := m.InnerSize()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTop(state, innerWidth))

	content := strings.Split(m.content, "\n")
	left := state.Border.Render(m.border.Left)
	right := state.Border.Render(m.border.Right)
	for i := range innerHeight {
		var line string
		if i < len(content) {
			line = ansi.Truncate(content[i], innerWidth, "")
		}
		if w := ansi.StringWidth(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		lines = append(lines, left+line+right)
	}

	lines = append(lines, state.Border.Render(m.border.BottomLeft+strings.Repeat(m.border.Bottom, innerWidth)+m.border.BottomRight))
	return strings.Join(lines, "\n")
}

// renderTop lays out "╭─ title ───── meta ─╮". The meta label is dropped
// first when space runs out, then the title is cut.
func (m Model) renderTop(state StyleState, innerWidth int) string {
	available := max(innerWidth-2, 0)

	title := label(m.title)
	meta := label(m.meta)
	if ansi.StringWidth(title)+ansi.StringWidth(meta) > available {
		meta = ""
	}
	title = ansi.Truncate(title, available, "…")

	fill := available - ansi.StringWidth(title) - ansi.StringWidth(meta)
	if available == 0 {
		return state.Border.Render(m.border.TopLeft + strings.Repeat(m.border.Top, innerWidth) + m.border.TopRight)
	}

	return state.Border.Render(m.border.TopLeft+m.border.Top) +
		state.Title.Render(title) +
		state.Border.Render(strings.Repeat(m.border.Top, fill)) +
		state.Meta.Render(meta) +
		state.Border.Render(m.border.Top+m.border.TopRight)
}

func label(s string) string {
	if s == "" {
		return ""
	}
	return " " + s + " "
}
