// Package errorpopup shows a source error in a titled box centred over the
// timeline, with a hint under the message.
package errorpopup

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/ui/components/frame"
)

const maxBoxWidth = 60

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Hint    lipgloss.Style
	Border  lipgloss.Style
}

// Model defines state for the error popup component.
type Model struct {
	styles  Styles
	title   string
	hint    string
	message string
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a popup titled "Error" with no message.
func New(opts ...Option) Model {
	m := Model{title: "Error"}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the area the popup is centred in.
func WithSize(w, h int) Option {
	return func(m *Model) { m.SetSize(w, h) }
}

// WithTitle sets the title shown on the top border.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithHint sets the faint line shown below the message.
func WithHint(hint string) Option {
	return func(m *Model) { m.hint = hint }
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) { m.message = msg }
}

// SetSize sets the area the popup is centred in.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetMessage sets the error message; an empty message hides the popup.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError reports whether there is a message to show.
func (m Model) HasError() bool {
	return m.message != ""
}

// Over draws the box over the middle rows of background. Without a message
// or room for the box background is returned unchanged.
func (m Model) Over(background string) string {
	box := m.Box()
	if box == "" {
		return background
	}

	rows := strings.Split(background, "\n")
	for len(rows) < m.height {
		rows = append(rows, "")
	}
	boxRows := strings.Split(box, "\n")
	top := max((m.height-len(boxRows))/2, 0)
	for i, line := range boxRows {
		rows[top+i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
	}
	return strings.Join(rows, "\n")
}

// Box renders just the bordered box, at most maxBoxWidth columns wide and
// never taller than the popup. The message wraps; the hint is cut.
func (m Model) Box() string {
	if m.message == "" || m.width < 4 || m.height < 2 {
		return ""
	}
	width := min(m.width, maxBoxWidth)
	textWidth := max(width-4, 1)

	body := strings.Split(ansi.Wrap(m.styles.Message.Render(m.message), textWidth, ""), "\n")
	if m.hint != "" {
		body = append(body, "", m.styles.Hint.Render(ansi.Truncate(m.hint, textWidth, "…")))
	}
	for i := range body {
		body[i] = " " + body[i]
	}

	state := frame.StyleState{Title: m.styles.Title, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithContent(strings.Join(body, "\n")),
		frame.WithSize(width, min(len(body)+2, m.height)),
	).View()
}
