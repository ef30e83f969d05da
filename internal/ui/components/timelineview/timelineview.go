// Package timelineview owns the last known layout of a timeline and renders
// it as terminal rows.
//
// The model keeps the visible window, the canvas layout computed for it and
// the vertical row band. Navigation goes through the reconcile functions of
// package timeline, so a new layout is computed only when the canvas has to
// be recentred.
package timelineview

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/mathutil"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/charts"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

const (
	// DefaultGutterWidth is the width of the group title column.
	DefaultGutterWidth = 16

	axisHeight = 1
)

var (
	// ErrNoWindow is returned by navigation before a visible window is set.
	ErrNoWindow = errors.New("no visible window")
	// ErrPeriodTooShort is returned by ShowPeriod for periods shorter than
	// timeline.MinPeriod.
	ErrPeriodTooShort = errors.New("period too short")
)

// Styles holds the styles used to draw the chart.
type Styles struct {
	Axis       lipgloss.Style
	Gutter     lipgloss.Style
	GroupTitle lipgloss.Style
	Grid       lipgloss.Style
	Entry      lipgloss.Style
	EntryAlt   lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:       lipgloss.NewStyle(),
		Gutter:     lipgloss.NewStyle(),
		GroupTitle: lipgloss.NewStyle().Bold(true),
		Grid:       lipgloss.NewStyle().Faint(true),
		Entry:      lipgloss.NewStyle().Reverse(true),
		EntryAlt:   lipgloss.NewStyle().Reverse(true),
		Selected:   lipgloss.NewStyle().Reverse(true).Bold(true),
		Muted:      lipgloss.NewStyle().Faint(true),
	}
}

// Model holds the timeline state and its rendering settings.
type Model struct {
	styles  Styles
	width   int
	height  int
	gutter  int
	layout  timeline.LayoutConfig
	steps   timeline.StepMultipliers
	minZoom int64
	maxZoom int64
	tracker *devtools.Tracker

	groups  []timeline.Group
	entries []timeline.Entry
	byID    map[string]int

	visible   timeline.TimeWindow
	state     timeline.CanvasState
	unit      timeline.TimeUnit
	scrollTop float64
	band      timeline.VerticalResult
	selected  string
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new timeline view. The layout defaults to one terminal row
// per line.
func New(opts ...Option) Model {
	layout := timeline.DefaultLayoutConfig()
	layout.LineHeight = 1
	layout.ItemHeightRatio = 1

	m := Model{
		styles:  DefaultStyles(),
		gutter:  DefaultGutterWidth,
		layout:  layout,
		steps:   timeline.DefaultSteps(),
		minZoom: timeline.DefaultMinZoom,
		maxZoom: timeline.DefaultMaxZoom,
		byID:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets width and height.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// WithGutterWidth sets the width of the group title column.
func WithGutterWidth(width int) Option {
	return func(m *Model) { m.gutter = max(width, 0) }
}

// WithLayout sets the layout configuration.
func WithLayout(cfg timeline.LayoutConfig) Option {
	return func(m *Model) { m.layout = cfg }
}

// WithSteps sets the bucket step multipliers.
func WithSteps(steps timeline.StepMultipliers) Option {
	return func(m *Model) { m.steps = steps }
}

// WithZoomLimits sets the narrowest and widest visible durations.
func WithZoomLimits(minZoom, maxZoom int64) Option {
	return func(m *Model) { m.minZoom, m.maxZoom = minZoom, maxZoom }
}

// WithTracker records canvas recomputations in tracker.
func WithTracker(tracker *devtools.Tracker) Option {
	return func(m *Model) { m.tracker = tracker }
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize resizes the view. A different plot width changes the canvas width
// in cells, so the layout is rebuilt.
func (m *Model) SetSize(width, height int) error {
	oldPlot := m.plotWidth()
	m.width, m.height = width, height
	if !m.visible.Valid() {
		return nil
	}
	if m.plotWidth() != oldPlot {
		return m.setVisible(m.visible, true)
	}
	m.clampScroll()
	m.reconcileVertical()
	return nil
}

// SetGroups replaces the groups and rebuilds the layout on the current canvas.
func (m *Model) SetGroups(groups []timeline.Group) error {
	m.groups = groups
	return m.relayout()
}

// MergeEntries adds entries, replacing loaded ones with the same id, and
// rebuilds the layout on the current canvas.
func (m *Model) MergeEntries(entries []timeline.Entry) error {
	for _, e := range entries {
		if i, ok := m.byID[e.ID]; ok {
			m.entries[i] = e
			continue
		}
		m.byID[e.ID] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m.relayout()
}

// SetVisible moves the visible window.
func (m *Model) SetVisible(w timeline.TimeWindow) error {
	return m.setVisible(w, false)
}

func (m *Model) setVisible(w timeline.TimeWindow, force bool) error {
	res, err := timeline.ReconcileHorizontalCanvas(w, m.visible, m.state.Canvas, force)
	if err != nil {
		return err
	}
	if res.Recomputed {
		if err := m.computeLayout(res.Canvas, devtools.EntryHorizontalRecompute); err != nil {
			return err
		}
	}
	m.visible = w
	m.unit = timeline.SelectBucketUnit(w.Duration(), float64(m.plotWidth()), m.steps)
	m.clampScroll()
	m.reconcileVertical()
	return nil
}

func (m *Model) relayout() error {
	if !m.state.Canvas.Valid() {
		return nil
	}
	if err := m.computeLayout(m.state.Canvas, devtools.EntryHorizontalRecompute); err != nil {
		return err
	}
	m.clampScroll()
	m.reconcileVertical()
	return nil
}

func (m *Model) computeLayout(canvas timeline.TimeWindow, kind devtools.EntryKind) error {
	started := time.Now()
	state, err := timeline.ComputeLayout(timeline.LayoutInput{
		Entries:     m.entries,
		Groups:      m.groups,
		Canvas:      canvas,
		CanvasWidth: m.canvasWidth(),
		Config:      m.layout,
	})
	if err != nil {
		return err
	}
	m.state = state
	if _, ok := state.Entry(m.selected); !ok {
		m.selected = ""
	}
	m.tracker.RecordRecompute(m.context(), kind, format.Window(canvas), time.Since(started))
	return nil
}

func (m *Model) reconcileVertical() {
	res := timeline.ReconcileVerticalCanvas(m.scrollTop, float64(m.chartHeight()), m.band.Top, m.band.Bottom)
	if res.Recomputed {
		m.tracker.RecordRecompute(m.context(), devtools.EntryVerticalRecompute,
			strings.Join([]string{format.ShortNumber(int64(res.Top)), format.ShortNumber(int64(res.Bottom))}, ".."), 0)
	}
	m.band = res
}

func (m *Model) context() context.Context {
	return devtools.WithOrigin(context.Background(), "timelineview")
}

// Pan scrolls the canvas by columns cells; negative values move back in time.
func (m *Model) Pan(columns int) error {
	if !m.visible.Valid() {
		return ErrNoWindow
	}
	scrollX := timeline.TimeToX(m.state.Canvas, m.canvasWidth(), m.visible.Start) + float64(columns)
	w, err := timeline.PanByPixels(m.state.Canvas, m.canvasWidth(), scrollX, m.visible.Duration())
	if err != nil {
		return err
	}
	return m.SetVisible(w)
}

// PanPages shifts the window by whole visible durations.
func (m *Model) PanPages(pages int) error {
	if !m.visible.Valid() {
		return ErrNoWindow
	}
	w, err := timeline.PanByTime(m.visible, int64(pages)*m.visible.Duration())
	if err != nil {
		return err
	}
	return m.SetVisible(w)
}

// Zoom scales the visible duration around its centre.
func (m *Model) Zoom(scale float64) error {
	if !m.visible.Valid() {
		return ErrNoWindow
	}
	w, err := timeline.ZoomBy(scale, 0.5, m.visible, m.minZoom, m.maxZoom)
	if err != nil {
		return err
	}
	return m.SetVisible(w)
}

// ShowPeriod makes [from, to] the visible window.
func (m *Model) ShowPeriod(from, to int64) error {
	w, ok := timeline.ShowPeriod(from, to)
	if !ok {
		return ErrPeriodTooShort
	}
	return m.SetVisible(w)
}

// ScrollBy moves the viewport by rows, clamped to the chart height.
func (m *Model) ScrollBy(rows int) {
	m.scrollTop += float64(rows)
	m.clampScroll()
	m.reconcileVertical()
}

// ToggleStacking flips stacking for groups without their own setting and
// rebuilds the layout. It returns the new setting.
func (m *Model) ToggleStacking() (bool, error) {
	m.layout.StackItems = !m.layout.StackItems
	return m.layout.StackItems, m.relayout()
}

func (m *Model) clampScroll() {
	maxTop := max(m.state.TotalHeight-float64(m.chartHeight()), 0)
	m.scrollTop = mathutil.Clamp(m.scrollTop, 0, maxTop)
}

// SelectNext selects the next entry in view, ordered by row and start.
func (m *Model) SelectNext() bool {
	return m.moveSelection(1)
}

// SelectPrev selects the previous entry in view.
func (m *Model) SelectPrev() bool {
	return m.moveSelection(-1)
}

// ClearSelection drops the selection.
func (m *Model) ClearSelection() {
	m.selected = ""
}

func (m *Model) moveSelection(delta int) bool {
	candidates := m.selectable()
	if len(candidates) == 0 {
		m.selected = ""
		return false
	}
	idx := slices.IndexFunc(candidates, func(d timeline.EntryDimensions) bool {
		return d.EntryID == m.selected
	})
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(candidates) - 1
	default:
		idx = (idx + delta + len(candidates)) % len(candidates)
	}
	m.selected = candidates[idx].EntryID
	m.scrollTo(candidates[idx])
	return true
}

func (m *Model) scrollTo(d timeline.EntryDimensions) {
	height := float64(m.chartHeight())
	switch {
	case d.Top < m.scrollTop:
		m.scrollTop = d.Top
	case d.Bottom() > m.scrollTop+height:
		m.scrollTop = d.Bottom() - height
	}
	m.clampScroll()
	m.reconcileVertical()
}

// selectable returns the laid out entries intersecting the visible window,
// top to bottom and then left to right.
func (m Model) selectable() []timeline.EntryDimensions {
	left, right := m.visibleX()
	var out []timeline.EntryDimensions
	for _, d := range m.state.Entries {
		if d.Right() <= left || d.Left >= right {
			continue
		}
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b timeline.EntryDimensions) int {
		return cmp.Or(
			cmp.Compare(a.Top, b.Top),
			cmp.Compare(a.Left, b.Left),
			strings.Compare(a.EntryID, b.EntryID),
		)
	})
	return out
}

// Selected returns the selected entry with its dimensions.
func (m Model) Selected() (timeline.Entry, timeline.EntryDimensions, bool) {
	if m.selected == "" {
		return timeline.Entry{}, timeline.EntryDimensions{}, false
	}
	dims, ok := m.state.Entry(m.selected)
	if !ok {
		return timeline.Entry{}, timeline.EntryDimensions{}, false
	}
	return m.entries[m.byID[m.selected]], dims, true
}

// LoadRequest returns what the host should load next: the canvas window and
// the groups intersecting the materialized row band.
func (m Model) LoadRequest() (timeline.TimeWindow, []string) {
	groups := timeline.FindVisibleGroups(m.state.GroupLayouts, m.layout.LineHeight, m.band.Top, m.band.Bottom)
	return m.state.Canvas, groups
}

// VisibleEntries returns the loaded entries intersecting the visible window.
func (m Model) VisibleEntries() []timeline.Entry {
	var out []timeline.Entry
	for _, e := range m.entries {
		if m.visible.Intersects(e.Start, e.End) {
			out = append(out, e)
		}
	}
	return out
}

// Visible returns the visible window.
func (m Model) Visible() timeline.TimeWindow {
	return m.visible
}

// State returns the current canvas layout.
func (m Model) State() timeline.CanvasState {
	return m.state
}

// Unit returns the bucket unit of the visible window.
func (m Model) Unit() timeline.TimeUnit {
	return m.unit
}

// Steps returns the bucket step multipliers.
func (m Model) Steps() timeline.StepMultipliers {
	return m.steps
}

// Layout returns the layout configuration in use.
func (m Model) Layout() timeline.LayoutConfig {
	return m.layout
}

// Groups returns the groups.
func (m Model) Groups() []timeline.Group {
	return m.groups
}

// EntryCount returns the number of loaded entries.
func (m Model) EntryCount() int {
	return len(m.entries)
}

// ScrollTop returns the first visible row.
func (m Model) ScrollTop() float64 {
	return m.scrollTop
}

// Band returns the materialized row band.
func (m Model) Band() (float64, float64) {
	return m.band.Top, m.band.Bottom
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// ChartHeight returns the number of entry rows on screen.
func (m Model) ChartHeight() int {
	return max(m.height-axisHeight, 0)
}

func (m Model) chartHeight() int {
	return m.ChartHeight()
}

func (m Model) plotWidth() int {
	return max(m.width-m.gutter, 1)
}

func (m Model) canvasWidth() float64 {
	return float64(timeline.CanvasFactor * m.plotWidth())
}

func (m Model) visibleX() (float64, float64) {
	cw := m.canvasWidth()
	return timeline.TimeToX(m.state.Canvas, cw, m.visible.Start),
		timeline.TimeToX(m.state.Canvas, cw, m.visible.End)
}

// View renders the axis header followed by the visible rows.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if !m.visible.Valid() {
		return charts.Placeholder(m.width, m.height, "Loading timeline...")
	}
	if len(m.groups) == 0 {
		return charts.Placeholder(m.width, m.height, "No groups")
	}

	left, _ := m.visibleX()
	boundaries, _ := timeline.BucketBoundaries(m.visible, m.unit, m.steps)
	marks := m.axisMarks(boundaries, left)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderAxis(marks))
	for r := range m.chartHeight() {
		y := m.scrollTop + float64(r)
		lines = append(lines, m.renderGutter(y)+m.renderRow(y, left, marks))
	}
	return strings.Join(lines, "\n")
}
