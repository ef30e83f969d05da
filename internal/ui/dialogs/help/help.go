// Package help shows the timeline key reference next to a summary of what the
// timeline is currently showing.
package help

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/mathutil"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/components/frame"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

const (
	minWidth  = 40
	columnGap = 3
)

// Group is a titled set of bindings.
type Group struct {
	Title    string
	Bindings []key.Binding
}

// Status describes the timeline at the moment the dialog was opened.
type Status struct {
	Visible timeline.TimeWindow
	Unit    timeline.TimeUnit
	Entries int
	Stacked bool
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	Muted   lipgloss.Style
}

// Model is the help dialog.
type Model struct {
	styles    Styles
	groups    []Group
	status    Status
	hasStatus bool
	closeKey  key.Binding
	viewport  viewport.Model

	width, height int
	row, col      int
}

// Option configures the help dialog.
type Option func(*Model)

// New creates a help dialog. It stays hidden until the first WindowSizeMsg.
func New(opts ...Option) *Model {
	m := &Model{
		closeKey: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "close")),
		viewport: viewport.New(),
	}
	m.viewport.Style = lipgloss.NewStyle().Padding(0, 1)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithGroups sets the binding groups in display order.
func WithGroups(groups ...Group) Option {
	return func(m *Model) { m.groups = groups }
}

// WithStatus adds the timeline summary above the bindings.
func WithStatus(s Status) Option {
	return func(m *Model) {
		m.status = s
		m.hasStatus = true
	}
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements dialogs.DialogModel.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		if key.Matches(msg, m.closeKey) {
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		}
		m.viewport, _ = m.viewport.Update(msg)
	}
	return m, nil
}

// View implements dialogs.DialogModel.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	meta := ""
	if m.viewport.TotalLineCount() > m.viewport.Height() {
		meta = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	}
	state := frame.StyleState{Title: m.styles.Title, Meta: m.styles.Muted, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Keys"),
		frame.WithMeta(meta),
		frame.WithContent(m.viewport.View()),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	).View()
}

// Position implements dialogs.DialogModel.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID implements dialogs.DialogModel.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

// resize fits the dialog into a w by h window. The height shrinks to the
// content when it fits.
func (m *Model) resize(w, h int) {
	if w <= 4 || h <= 4 {
		m.width, m.height = 0, 0
		return
	}

	m.width = mathutil.Clamp(w*2/3, min(minWidth, w-2), w-2)
	inner := m.width - 4
	lines := m.body(inner)

	m.height = mathutil.Clamp(len(lines)+2, 3, h-2)
	m.viewport.SetWidth(m.width - 2)
	m.viewport.SetHeight(m.height - 2)
	m.viewport.SetContentLines(lines)

	m.row = (h - m.height) / 2
	m.col = (w - m.width) / 2
}

// body lays out the status block and the binding groups for width columns.
func (m *Model) body(width int) []string {
	var lines []string
	if m.hasStatus {
		lines = append(lines, m.statusLines(width)...)
		lines = append(lines, "")
	}

	blocks, blockWidth := m.groupBlocks()
	if len(blocks) == 0 {
		return lines
	}
	columns := max((width+columnGap)/(blockWidth+columnGap), 1)
	return append(lines, flow(blocks, columns, blockWidth, width)...)
}

func (m *Model) statusLines(width int) []string {
	stacking := "off"
	if m.status.Stacked {
		stacking = "on"
	}
	rows := [][2]string{
		{"Showing", format.Window(m.status.Visible)},
		{"Cells", m.status.Unit.String()},
		{"Entries", format.Number(int64(m.status.Entries))},
		{"Stacking", stacking},
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		label := m.styles.Muted.Render(fmt.Sprintf("%-9s", row[0]))
		lines[i] = ansi.Truncate(label+m.styles.Desc.Render(row[1]), width, "…")
	}
	return lines
}

// groupBlocks renders each group with keys aligned across all groups, and
// returns the widest block.
func (m *Model) groupBlocks() ([][]string, int) {
	keyWidth := 0
	for _, g := range m.groups {
		for _, b := range g.Bindings {
			if b.Enabled() {
				keyWidth = max(keyWidth, ansi.StringWidth(b.Help().Key))
			}
		}
	}

	var blocks [][]string
	width := 0
	for _, g := range m.groups {
		block := []string{m.styles.Section.Render(g.Title)}
		for _, b := range g.Bindings {
			if !b.Enabled() || b.Help().Key == "" {
				continue
			}
			help := b.Help()
			pad := strings.Repeat(" ", keyWidth-ansi.StringWidth(help.Key))
			block = append(block, m.styles.Key.Render(help.Key)+pad+"  "+m.styles.Desc.Render(help.Desc))
		}
		if len(block) == 1 {
			continue
		}
		for _, line := range block {
			width = max(width, ansi.StringWidth(line))
		}
		blocks = append(blocks, block)
	}
	return blocks, width
}

// flow places blocks, in order, into the shortest of columns columns and joins
// the columns side by side.
func flow(blocks [][]string, columns, blockWidth, width int) []string {
	columns = min(columns, len(blocks))
	cols := make([][]string, columns)
	for _, block := range blocks {
		shortest := 0
		for i := range cols {
			if len(cols[i]) < len(cols[shortest]) {
				shortest = i
			}
		}
		if len(cols[shortest]) > 0 {
			cols[shortest] = append(cols[shortest], "")
		}
		cols[shortest] = append(cols[shortest], block...)
	}

	rows := 0
	for _, col := range cols {
		rows = max(rows, len(col))
	}
	gap := strings.Repeat(" ", columnGap)
	out := make([]string, rows)
	for r := range rows {
		var line strings.Builder
		for i, col := range cols {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			if i < len(cols)-1 {
				cell += strings.Repeat(" ", max(blockWidth-ansi.StringWidth(cell), 0)) + gap
			}
			line.WriteString(cell)
		}
		out[r] = ansi.Truncate(strings.TrimRight(line.String(), " "), width, "")
	}
	return out
}
