// Package devtools provides a quake-style log of Redis commands and canvas
// recomputations.
package devtools

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/ui/components/frame"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
)

// DialogID identifies the dev tools dialog.
const DialogID dialogs.DialogID = "devtools"

// Filter narrows the log to one family of entries.
type Filter int

const (
	// FilterAll shows every entry.
	FilterAll Filter = iota
	// FilterRedis shows Redis commands and pipeline markers.
	FilterRedis
	// FilterCanvas shows canvas recomputations.
	FilterCanvas

	filterCount
)

func (f Filter) String() string {
	switch f {
	case FilterRedis:
		return "redis"
	case FilterCanvas:
		return "canvas"
	default:
		return "all"
	}
}

func (f Filter) match(kind devtools.EntryKind) bool {
	switch f {
	case FilterRedis:
		return kind == devtools.EntryCommand || kind == devtools.EntryPipelineBegin || kind == devtools.EntryPipelineExec
	case FilterCanvas:
		return kind == devtools.EntryHorizontalRecompute || kind == devtools.EntryVerticalRecompute
	default:
		return true
	}
}

// Styles holds the styles used by the dev tools console.
type Styles struct {
	Title  lipgloss.Style
	Border lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

type column struct {
	title string
	width int
	right bool
}

var logColumns = []column{
	{title: "#", width: 6, right: true},
	{title: "Time", width: 12},
	{title: "Origin", width: 22},
	{title: "Type", width: 9},
	{title: "Dur", width: 7, right: true},
	{title: "Detail"},
}

// Model defines state for the dev tools console.
type Model struct {
	styles       Styles
	title        string
	tracker      *devtools.Tracker
	filter       Filter
	yOffset      int
	follow       bool
	width        int
	height       int
	windowWidth  int
	windowHeight int
	padding      int
	minHeight    int
}

// Option configures the dev tools console.
type Option func(*Model)

// New creates a new dev tools console model.
func New(opts ...Option) *Model {
	m := &Model{
		styles:    DefaultStyles(),
		title:     "Dev Log",
		padding:   1,
		minHeight: 6,
		follow:    true,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.applySize()
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTitle sets the dialog title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithTracker sets the tracker whose log is shown.
func WithTracker(tracker *devtools.Tracker) Option {
	return func(m *Model) { m.tracker = tracker }
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Filter returns the active filter.
func (m *Model) Filter() Filter {
	return m.filter
}

// Update handles input and console lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "f12", "~", "esc":
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case "f":
			m.filter = (m.filter + 1) % filterCount
			m.follow = true
		case "up", "k":
			m.scrollBy(-1)
		case "down", "j":
			m.scrollBy(1)
		case "pgup":
			m.scrollBy(-m.rowsHeight())
		case "pgdown":
			m.scrollBy(m.rowsHeight())
		case "home", "g":
			m.follow = false
			m.yOffset = 0
		case "end", "G":
			m.follow = true
		}
	}

	return m, nil
}

// View renders the console.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	rows := m.rows()
	visible := m.rowsHeight()
	maxOffset := max(len(rows)-visible, 0)
	if m.follow {
		m.yOffset = maxOffset
	}
	m.yOffset = min(max(m.yOffset, 0), maxOffset)

	contentWidth := m.contentWidth()
	lines := make([]string, 0, visible+1)
	lines = append(lines, m.styles.Header.Render(ansi.Truncate(formatRow(headerCells()), contentWidth, "")))
	if len(rows) == 0 {
		lines = append(lines, m.styles.Muted.Render("No entries recorded."))
	}
	for _, row := range rows[m.yOffset:min(m.yOffset+visible, len(rows))] {
		lines = append(lines, m.styles.Text.Render(ansi.Truncate(row, contentWidth, "…")))
	}

	pad := strings.Repeat(" ", m.padding)
	for i, line := range lines {
		lines[i] = pad + line
	}

	state := frame.StyleState{
		Title:  m.styles.Title,
		Meta:   m.styles.Muted,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithMeta(fmt.Sprintf("%s · %d", m.filter, len(rows))),
		frame.WithContent(strings.Join(lines, "\n")),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return 0, 0
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}
	m.width = m.windowWidth
	height := max(m.windowHeight/2, m.minHeight)
	height = min(height, m.windowHeight-1)
	m.height = max(height, 1)
}

func (m *Model) contentWidth() int {
	return max(m.width-2-(m.padding*2), 0)
}

// rowsHeight is the number of log rows that fit below the header.
func (m *Model) rowsHeight() int {
	return max(m.height-3, 1)
}

func (m *Model) scrollBy(delta int) {
	m.follow = false
	m.yOffset = max(m.yOffset+delta, 0)
	if limit := len(m.rows()) - m.rowsHeight(); m.yOffset >= limit {
		m.yOffset = max(limit, 0)
		m.follow = true
	}
}

func (m *Model) rows() []string {
	entries := m.tracker.LogEntries()
	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !m.filter.match(entry.Entry.Kind) {
			continue
		}
		rows = append(rows, formatRow([]string{
			strconv.FormatUint(entry.Seq, 10),
			entry.Time.Format("15:04:05.000"),
			entry.Origin,
			entry.Entry.Kind.String(),
			formatDuration(entry.Entry),
			entryDetail(entry.Entry),
		}))
	}
	return rows
}

func headerCells() []string {
	cells := make([]string, len(logColumns))
	for i, col := range logColumns {
		cells[i] = col.title
	}
	return cells
}

func formatRow(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		col := logColumns[i]
		if col.width == 0 {
			parts[i] = cell
			continue
		}
		cell = ansi.Truncate(cell, col.width, "…")
		pad := strings.Repeat(" ", col.width-ansi.StringWidth(cell))
		if col.right {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, " ")
}

func entryDetail(entry devtools.Entry) string {
	switch entry.Kind {
	case devtools.EntryPipelineBegin:
		return "pipeline begin"
	case devtools.EntryPipelineExec:
		return "pipeline execute"
	}
	return normalizeOneLine(entry.Command)
}

func normalizeOneLine(value string) string {
	replacer := strings.NewReplacer(
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
		"\t", "\\t",
	)
	return replacer.Replace(value)
}

func formatDuration(entry devtools.Entry) string {
	if entry.Duration <= 0 {
		return ""
	}
	return devtools.FormatDuration(entry.Duration)
}
