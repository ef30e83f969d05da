// Package density renders how many entries fall into each bucket cell of the
// visible window as a column chart.
package density

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/NimbleMarkets/ntcharts/v2/canvas"
	"github.com/NimbleMarkets/ntcharts/v2/canvas/graph"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/charts"
)

// Styles holds the visual styles for the density chart.
type Styles struct {
	Axis  lipgloss.Style // Style for chart axes
	Bar   lipgloss.Style // Style for columns
	Muted lipgloss.Style // Style for labels and secondary text
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Bar:   lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle(),
	}
}

// Model holds the density chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	window       timeline.TimeWindow
	boundaries   []int64
	totals       []int64
	labels       []string
	unit         timeline.TimeUnit
	emptyMessage string
}

// Option is a functional option for configuring the chart.
type Option func(*Model)

// New creates a new density model with functional options.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		emptyMessage: "No entries in view",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetStyles updates the chart styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize updates the chart dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetEntries buckets entries over window using the cell grid of unit.
func (m *Model) SetEntries(entries []timeline.Entry, window timeline.TimeWindow, unit timeline.TimeUnit, steps timeline.StepMultipliers) error {
	boundaries, err := timeline.BucketBoundaries(window, unit, steps)
	if err != nil {
		m.boundaries, m.totals, m.labels = nil, nil, nil
		return err
	}
	m.window = window
	m.unit = unit
	m.boundaries = boundaries
	m.totals = charts.BucketCounts(entries, boundaries, window.End)
	m.labels = charts.BucketLabels(boundaries, unit)
	return nil
}

// Totals returns the per-cell counts.
func (m Model) Totals() []int64 {
	return m.totals
}

// Unit returns the bucket unit of the current data.
func (m Model) Unit() timeline.TimeUnit {
	return m.unit
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// View renders the chart to a string.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	empty := func() string {
		return charts.Placeholder(m.width, m.height, m.emptyMessage)
	}
	if len(m.totals) == 0 || slices.Max(m.totals) == 0 {
		return empty()
	}

	showLabels := m.height >= 3
	chartHeight := m.height
	if showLabels {
		chartHeight--
	}

	scale := charts.NewCountScale(slices.Max(m.totals), chartHeight)
	chartWidth := m.width - scale.Width()
	if chartWidth < 2 {
		return empty()
	}

	// Column 0 of the canvas holds the y axis.
	series := charts.ColumnSeries(m.totals, m.boundaries, m.window, chartWidth-1)
	maxVal := slices.Max(series)
	if maxVal == 0 {
		return empty()
	}

	maxHeight := float64(max(chartHeight-1, 1))
	scaled := make([]float64, len(series))
	for i, v := range series {
		scaled[i] = float64(v) * maxHeight / float64(maxVal)
	}

	c := canvas.New(chartWidth, chartHeight, canvas.WithViewWidth(chartWidth), canvas.WithViewHeight(chartHeight))
	graph.DrawXYAxis(&c, canvas.Point{X: 0, Y: chartHeight - 1}, m.styles.Axis)
	graph.DrawColumns(&c, canvas.Point{X: 1, Y: max(chartHeight-2, 0)}, scaled, m.styles.Bar)

	lines := scale.Apply(strings.Split(c.View(), "\n"), m.styles.Muted)
	if showLabels {
		axis := charts.TimeAxisLine(len(series), m.window, m.boundaries, m.labels)
		lines = append(lines, strings.Repeat(" ", scale.Width()+1)+m.styles.Muted.Render(axis))
	}
	return strings.Join(lines, "\n")
}
