// Package scrollbar renders the one-column scrollbar beside the chart rows.
// Besides the thumb for the viewport it shades the band of rows that is
// currently materialized.
package scrollbar

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazytimeline/internal/mathutil"
)

const (
	thumbGlyph = "█"
	bandGlyph  = "▒"
	trackGlyph = "░"
)

// Styles holds the styles needed for the scrollbar. The zero value renders
// bare glyphs.
type Styles struct {
	Track lipgloss.Style
	Band  lipgloss.Style
	Thumb lipgloss.Style
}

// Position is where the viewport and the materialized band sit in the full
// chart, all in pixels from the chart top.
type Position struct {
	Total      float64
	Visible    float64
	Top        float64
	BandTop    float64
	BandBottom float64
}

func (p Position) scrollable() bool {
	return p.Total > 0 && p.Visible > 0 && p.Total > p.Visible
}

// Model is a vertical scrollbar component.
type Model struct {
	styles Styles
	height int
	pos    Position
}

// New creates a scrollbar with no rows.
func New() Model {
	return Model{}
}

// SetStyles updates the scrollbar styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetHeight sets the number of rows drawn.
func (m *Model) SetHeight(rows int) {
	m.height = rows
}

// SetPosition updates the viewport and band.
func (m *Model) SetPosition(p Position) {
	m.pos = p
}

// Width returns the columns the scrollbar takes.
func (m Model) Width() int {
	return 1
}

// View renders the scrollbar, blank when everything fits.
func (m Model) View() string {
	if m.height <= 0 {
		return ""
	}
	if !m.pos.scrollable() {
		return strings.Repeat(" \n", m.height-1) + " "
	}

	scale := float64(m.height) / m.pos.Total
	thumbRows := max(1, int(math.Round(m.pos.Visible*scale)))
	thumbFrom := mathutil.Clamp(int(math.Round(m.pos.Top*scale)), 0, m.height-thumbRows)
	bandFrom := int(math.Floor(m.pos.BandTop * scale))
	bandTo := int(math.Ceil(m.pos.BandBottom * scale))

	thumb := m.styles.Thumb.Render(thumbGlyph)
	band := m.styles.Band.Render(bandGlyph)
	track := m.styles.Track.Render(trackGlyph)

	rows := make([]string, m.height)
	for i := range rows {
		switch {
		case i >= thumbFrom && i < thumbFrom+thumbRows:
			rows[i] = thumb
		case i >= bandFrom && i < bandTo:
			rows[i] = band
		default:
			rows[i] = track
		}
	}
	return strings.Join(rows, "\n")
}
