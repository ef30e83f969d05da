package timelineview

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellGrid
	cellEntry
	cellEntryAlt
	cellSelected
)

// cell is one terminal column of a row. A zero rune marks the trailing half
// of a wide rune and is skipped on output.
type cell struct {
	ch   rune
	kind cellKind
}

const (
	gridRune  = '┊'
	entryEdge = '▏'
)

// axisMark is a bucket boundary placed on a plot column.
type axisMark struct {
	col int
	at  int64
}

// axisMarks maps bucket boundaries to plot columns, dropping those outside
// the visible window.
func (m Model) axisMarks(boundaries []int64, left float64) []axisMark {
	cw := m.canvasWidth()
	plot := m.plotWidth()
	marks := make([]axisMark, 0, len(boundaries))
	for _, b := range boundaries {
		col := int(math.Round(timeline.TimeToX(m.state.Canvas, cw, b) - left))
		if col < 0 || col >= plot {
			continue
		}
		marks = append(marks, axisMark{col: col, at: b})
	}
	return marks
}

func (m Model) renderAxis(marks []axisMark) string {
	plot := m.plotWidth()
	line := make([]rune, plot)
	for i := range line {
		line[i] = ' '
	}

	lastEnd := -1
	for _, mark := range marks {
		if mark.col <= lastEnd {
			continue
		}
		label := []rune("│" + format.BucketLabel(mark.at, m.unit))
		if mark.col+len(label) > plot {
			label = label[:plot-mark.col]
		}
		copy(line[mark.col:], label)
		lastEnd = mark.col + len(label)
	}

	gutter := m.styles.Muted.Render(padRight(m.unit.String(), m.gutter))
	return gutter + m.styles.Axis.Render(string(line))
}

// renderGutter shows the title of the group starting at row y.
func (m Model) renderGutter(y float64) string {
	if m.gutter == 0 {
		return ""
	}
	for i, g := range m.state.GroupLayouts {
		if g.Top != y || i >= len(m.groups) {
			continue
		}
		title := m.groups[i].Title
		if title == "" {
			title = g.GroupID
		}
		title = ansi.Truncate(title, m.gutter-1, "…")
		return m.styles.GroupTitle.Render(padRight(title, m.gutter))
	}
	return m.styles.Gutter.Render(strings.Repeat(" ", m.gutter))
}

// renderRow draws the entries covering row y. Rows are one line high and
// entries are mapped from canvas pixels to plot columns by subtracting the
// left edge of the visible window.
func (m Model) renderRow(y, left float64, marks []axisMark) string {
	plot := m.plotWidth()
	cells := make([]cell, plot)
	for i := range cells {
		cells[i] = cell{ch: ' '}
	}
	if m.rowIsEmpty(y) {
		for _, mark := range marks {
			cells[mark.col] = cell{ch: gridRune, kind: cellGrid}
		}
	}

	for _, d := range m.state.Entries {
		if d.Top >= y+1 || d.Bottom() <= y {
			continue
		}
		from := int(math.Floor(d.Left - left))
		to := int(math.Ceil(d.Right() - left))
		if to <= 0 || from >= plot {
			continue
		}

		kind := cellEntry
		switch {
		case d.EntryID == m.selected:
			kind = cellSelected
		case d.GroupOrderIndex%2 == 1:
			kind = cellEntryAlt
		}

		start := max(from, 0)
		end := min(to, plot)
		for i := start; i < end; i++ {
			cells[i] = cell{ch: ' ', kind: kind}
		}
		if d.Top == y {
			m.writeLabel(cells[start:end], d, from >= 0, kind)
		}
	}
	return m.renderCells(cells)
}

// rowIsEmpty reports whether no entry covers row y anywhere on the canvas.
func (m Model) rowIsEmpty(y float64) bool {
	for _, d := range m.state.Entries {
		if d.Top < y+1 && d.Bottom() > y {
			return false
		}
	}
	return true
}

func (m Model) writeLabel(cells []cell, d timeline.EntryDimensions, leftEdge bool, kind cellKind) {
	label := d.EntryID
	if e, ok := m.entry(d.EntryID); ok && e.Title != "" {
		label = e.Title
	}
	if leftEdge {
		label = string(entryEdge) + label
	}
	label = ansi.Truncate(label, len(cells), "…")

	col := 0
	for _, r := range label {
		w := ansi.StringWidth(string(r))
		if col+w > len(cells) {
			break
		}
		cells[col] = cell{ch: r, kind: kind}
		for i := 1; i < w; i++ {
			cells[col+i] = cell{kind: kind}
		}
		col += max(w, 1)
	}
}

func (m Model) entry(id string) (timeline.Entry, bool) {
	i, ok := m.byID[id]
	if !ok {
		return timeline.Entry{}, false
	}
	return m.entries[i], true
}

func (m Model) renderCells(cells []cell) string {
	var b strings.Builder
	var run strings.Builder
	kind := cellEmpty
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(m.styleFor(kind).Render(run.String()))
		run.Reset()
	}
	for i, c := range cells {
		if i == 0 || c.kind != kind {
			flush()
			kind = c.kind
		}
		if c.ch != 0 {
			run.WriteRune(c.ch)
		}
	}
	flush()
	return b.String()
}

func (m Model) styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellGrid:
		return m.styles.Grid
	case cellEntry:
		return m.styles.Entry
	case cellEntryAlt:
		return m.styles.EntryAlt
	case cellSelected:
		return m.styles.Selected
	default:
		return lipgloss.NewStyle()
	}
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return ansi.Truncate(s, width, "")
}
