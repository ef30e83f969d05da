// Package period provides a dialog for jumping to an explicit time period.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/components/frame"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// DialogID identifies the period dialog.
const DialogID dialogs.DialogID = "period"

// ErrInvalidPeriod is returned for input that is neither a duration nor a
// pair of timestamps.
var ErrInvalidPeriod = errors.New("invalid period")

// ApplyMsg asks the timeline to show Window.
type ApplyMsg struct {
	Window timeline.TimeWindow
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads a period in one of two forms:
//
//	2024-05-01 10:00 .. 2024-05-01 12:30   explicit start and end, UTC
//	6h, 90m, 3d                            span centred on current
func Parse(input string, current timeline.TimeWindow) (timeline.TimeWindow, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return timeline.TimeWindow{}, fmt.Errorf("empty input: %w", ErrInvalidPeriod)
	}

	if startText, endText, ok := strings.Cut(input, ".."); ok {
		start, err := parseTime(startText)
		if err != nil {
			return timeline.TimeWindow{}, err
		}
		end, err := parseTime(endText)
		if err != nil {
			return timeline.TimeWindow{}, err
		}
		w := timeline.WindowOf(start, end)
		if err := w.Validate(); err != nil {
			return timeline.TimeWindow{}, err
		}
		return w, nil
	}

	span, err := parseSpan(input)
	if err != nil {
		return timeline.TimeWindow{}, err
	}
	if err := current.Validate(); err != nil {
		return timeline.TimeWindow{}, err
	}
	center := current.Start + current.Duration()/2
	return timeline.TimeWindow{Start: center - span/2, End: center - span/2 + span}, nil
}

func parseTime(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q: %w", text, ErrInvalidPeriod)
}

// parseSpan accepts Go durations plus a day suffix.
func parseSpan(text string) (int64, error) {
	var span time.Duration
	if days, ok := strings.CutSuffix(text, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse span %q: %w", text, ErrInvalidPeriod)
		}
		span = time.Duration(n * float64(24*time.Hour))
	} else {
		d, err := time.ParseDuration(text)
		if err != nil {
			return 0, fmt.Errorf("cannot parse span %q: %w", text, ErrInvalidPeriod)
		}
		span = d
	}
	if span <= 0 {
		return 0, fmt.Errorf("span %q is not positive: %w", text, ErrInvalidPeriod)
	}
	return span.Milliseconds(), nil
}

// Styles holds the styles used by the period dialog.
type Styles struct {
	Title       lipgloss.Style
	Border      lipgloss.Style
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

// Model defines state for the period dialog component.
type Model struct {
	styles       Styles
	input        textinput.Model
	current      timeline.TimeWindow
	err          error
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	padding      int
	minWidth     int
}

// Option configures the period dialog.
type Option func(*Model)

// New creates a new period dialog model.
func New(opts ...Option) *Model {
	m := &Model{
		styles:   DefaultStyles(),
		input:    textinput.New(),
		padding:  1,
		minWidth: 48,
	}

	m.input.Prompt = "> "
	m.input.Placeholder = "6h or 2024-05-01 10:00 .. 2024-05-01 12:00"
	m.input.Blur()

	for _, opt := range opts {
		opt(m)
	}

	m.applyStyles()
	m.applySize()

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithCurrent sets the visible window that spans are centred on.
func WithCurrent(w timeline.TimeWindow) Option {
	return func(m *Model) {
		m.current = w
	}
}

// WithMinWidth sets the minimum dialog width.
func WithMinWidth(width int) Option {
	return func(m *Model) {
		m.minWidth = width
	}
}

// Err returns the error of the last rejected input.
func (m *Model) Err() error {
	return m.err
}

// Init focuses the input.
func (m *Model) Init() tea.Cmd {
	m.input.CursorEnd()
	return m.input.Focus()
}

// Update handles input and dialog lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			w, err := Parse(m.input.Value(), m.current)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, tea.Batch(
				func() tea.Msg { return ApplyMsg{Window: w} },
				func() tea.Msg { return dialogs.CloseDialogMsg{} },
			)
		case "esc":
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case "ctrl+u":
			m.input.SetValue("")
			m.input.CursorEnd()
			m.err = nil
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the period dialog.
func (m *Model) View() string {
	contentWidth := max(m.width-2-(m.padding*2), 1)
	pad := strings.Repeat(" ", m.padding)

	status := m.styles.Muted.Render(ansi.Truncate("now "+format.Window(m.current), contentWidth, "…"))
	if !m.current.Valid() {
		status = ""
	}
	if m.err != nil {
		status = m.styles.Error.Render(ansi.Truncate(m.err.Error(), contentWidth, "…"))
	}
	content := pad + ansi.Truncate(m.input.View(), contentWidth, "") + "\n" + pad + status

	state := frame.StyleState{
		Title:  m.styles.Title,
		Meta:   m.styles.Muted,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Go to period"),
		frame.WithContent(content),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applyStyles() {
	styles := m.input.Styles()
	styles.Focused.Prompt = m.styles.Prompt
	styles.Focused.Text = m.styles.Text
	styles.Focused.Placeholder = m.styles.Placeholder
	styles.Blurred.Prompt = m.styles.Prompt
	styles.Blurred.Text = m.styles.Text
	styles.Blurred.Placeholder = m.styles.Placeholder
	if cursorColor := m.styles.Cursor.GetForeground(); cursorColor != nil {
		styles.Cursor.Color = cursorColor
	}
	m.input.SetStyles(styles)
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := max(m.windowWidth/2, m.minWidth)
	dialogWidth = min(dialogWidth, m.windowWidth-4)
	if dialogWidth < 10 {
		dialogWidth = max(m.windowWidth-2, 10)
	}

	dialogHeight := 4
	if m.windowHeight < dialogHeight {
		dialogHeight = max(m.windowHeight, 3)
	}

	m.width = dialogWidth
	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)

	contentWidth := max(dialogWidth-2-(m.padding*2), 1)
	promptWidth := lipgloss.Width(m.input.Prompt)
	// textinput renders a virtual cursor that adds one extra column.
	m.input.SetWidth(max(contentWidth-promptWidth-1, 1))
}
