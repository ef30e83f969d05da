package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/store"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/charts"
	"github.com/kpumuk/lazytimeline/internal/ui/components/density"
	"github.com/kpumuk/lazytimeline/internal/ui/components/frame"
	"github.com/kpumuk/lazytimeline/internal/ui/components/jsonview"
	"github.com/kpumuk/lazytimeline/internal/ui/components/metrics"
	"github.com/kpumuk/lazytimeline/internal/ui/components/scrollbar"
	"github.com/kpumuk/lazytimeline/internal/ui/components/timelineview"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs/period"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

const (
	panColumns     = 4
	densityHeight  = 7
	minDensityRows = 16
	inspectorWidth = 48
	minInspector   = 72
	defaultSpan    = 24 * time.Hour
	sourceTimeout  = 5 * time.Second
)

type groupsLoadedMsg struct {
	groups []timeline.Group
	bounds timeline.TimeWindow
}

type entriesLoadedMsg struct {
	req     loadRequest
	entries []timeline.Entry
}

// loadRequest identifies one Entries call so repeated requests for the same
// canvas and groups are skipped.
type loadRequest struct {
	canvas timeline.TimeWindow
	groups string
}

func (r loadRequest) groupIDs() []string {
	if r.groups == "" {
		return nil
	}
	return strings.Split(r.groups, "\x00")
}

// Timeline shows the groups of a source as rows and their entries as bars
// along the time axis.
type Timeline struct {
	ready   bool
	width   int
	height  int
	styles  Styles
	keys    TimelineKeyMap
	source  store.Source
	tracker *devtools.Tracker
	now     func() time.Time

	initial timeline.TimeWindow
	home    timeline.TimeWindow
	minZoom int64
	maxZoom int64

	chartOpts []timelineview.Option
	chart     timelineview.Model
	scroll    scrollbar.Model
	density   density.Model
	inspector jsonview.Model

	showDensity   bool
	showInspector bool

	last    loadRequest
	loading bool
	notice  error
}

// TimelineOption configures the timeline view.
type TimelineOption func(*Timeline)

// NewTimeline creates a timeline view over source.
func NewTimeline(source store.Source, opts ...TimelineOption) *Timeline {
	t := &Timeline{
		keys:        DefaultTimelineKeyMap(),
		source:      source,
		now:         time.Now,
		minZoom:     timeline.DefaultMinZoom,
		maxZoom:     timeline.DefaultMaxZoom,
		scroll:      scrollbar.New(),
		density:     density.New(),
		inspector:   jsonview.New(jsonview.WithEmptyMessage("Select an entry with tab")),
		showDensity: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	chartOpts := append([]timelineview.Option{
		timelineview.WithZoomLimits(t.minZoom, t.maxZoom),
		timelineview.WithTracker(t.tracker),
	}, t.chartOpts...)
	t.chart = timelineview.New(chartOpts...)
	return t
}

// WithTracker records recomputations in tracker.
func WithTracker(tracker *devtools.Tracker) TimelineOption {
	return func(t *Timeline) { t.tracker = tracker }
}

// WithInitialWindow sets the window shown on start and restored by Home.
func WithInitialWindow(w timeline.TimeWindow) TimelineOption {
	return func(t *Timeline) { t.initial = w }
}

// WithZoomLimits sets the shortest and longest visible durations.
func WithZoomLimits(minZoom, maxZoom int64) TimelineOption {
	return func(t *Timeline) { t.minZoom, t.maxZoom = minZoom, maxZoom }
}

// WithClock replaces the clock used for the default window.
func WithClock(now func() time.Time) TimelineOption {
	return func(t *Timeline) { t.now = now }
}

// WithChartOptions passes options to the chart component.
func WithChartOptions(opts ...timelineview.Option) TimelineOption {
	return func(t *Timeline) {
		t.chartOpts = append(t.chartOpts, opts...)
	}
}

// Init starts loading the groups.
func (t *Timeline) Init() tea.Cmd {
	t.reset()
	return t.fetchGroupsCmd()
}

// Update handles messages.
func (t *Timeline) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case groupsLoadedMsg:
		return t, t.applyGroups(msg)

	case entriesLoadedMsg:
		t.loading = false
		t.setNotice(t.chart.MergeEntries(msg.entries))
		t.sync()
		return t, t.loadCmd()

	case SourceErrorMsg:
		t.loading = false
		t.last = loadRequest{}
		return t, nil

	case ReloadMsg:
		return t, t.Init()

	case period.ApplyMsg:
		t.setNotice(t.chart.ShowPeriod(msg.Window.Start, msg.Window.End))
		return t, t.afterMove()

	case tea.KeyPressMsg:
		return t, t.handleKey(msg)
	}

	return t, nil
}

func (t *Timeline) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if !t.ready {
		if key.Matches(msg, t.keys.Reload) {
			return t.Init()
		}
		return nil
	}

	switch {
	case key.Matches(msg, t.keys.PanLeft):
		t.setNotice(t.chart.Pan(-panColumns))
	case key.Matches(msg, t.keys.PanRight):
		t.setNotice(t.chart.Pan(panColumns))
	case key.Matches(msg, t.keys.PageLeft):
		t.setNotice(t.chart.PanPages(-1))
	case key.Matches(msg, t.keys.PageRight):
		t.setNotice(t.chart.PanPages(1))
	case key.Matches(msg, t.keys.ZoomIn):
		t.setNotice(t.chart.Zoom(0.5))
	case key.Matches(msg, t.keys.ZoomOut):
		t.setNotice(t.chart.Zoom(2))
	case key.Matches(msg, t.keys.ScrollUp):
		t.chart.ScrollBy(-1)
	case key.Matches(msg, t.keys.ScrollDown):
		t.chart.ScrollBy(1)
	case key.Matches(msg, t.keys.PageUp):
		t.chart.ScrollBy(-max(t.chart.ChartHeight(), 1))
	case key.Matches(msg, t.keys.PageDown):
		t.chart.ScrollBy(max(t.chart.ChartHeight(), 1))
	case key.Matches(msg, t.keys.Next):
		t.chart.SelectNext()
	case key.Matches(msg, t.keys.Prev):
		t.chart.SelectPrev()
	case key.Matches(msg, t.keys.Deselect):
		t.chart.ClearSelection()
	case key.Matches(msg, t.keys.Home):
		t.setNotice(t.chart.SetVisible(t.home))
	case key.Matches(msg, t.keys.Period):
		dialog := period.New(
			period.WithStyles(t.periodStyles()),
			period.WithCurrent(t.chart.Visible()),
		)
		return func() tea.Msg {
			return dialogs.OpenDialogMsg{Model: dialog}
		}
	case key.Matches(msg, t.keys.Stack):
		_, err := t.chart.ToggleStacking()
		t.setNotice(err)
	case key.Matches(msg, t.keys.Inspector):
		t.showInspector = !t.showInspector
		t.layout()
	case key.Matches(msg, t.keys.InspectUp):
		t.inspector.ScrollBy(-1)
		return nil
	case key.Matches(msg, t.keys.InspectDown):
		t.inspector.ScrollBy(1)
		return nil
	case key.Matches(msg, t.keys.Density):
		t.showDensity = !t.showDensity
		t.layout()
	case key.Matches(msg, t.keys.Reload):
		return t.Init()
	default:
		return nil
	}
	return t.afterMove()
}

// afterMove refreshes the panels and requests entries for the new canvas.
func (t *Timeline) afterMove() tea.Cmd {
	t.sync()
	return t.loadCmd()
}

func (t *Timeline) applyGroups(msg groupsLoadedMsg) tea.Cmd {
	t.setNotice(t.chart.SetGroups(msg.groups))

	if !t.ready {
		t.home = t.startWindow(msg.bounds)
		t.setNotice(t.chart.SetVisible(t.home))
		t.ready = true
	}
	t.sync()
	return t.loadCmd()
}

// startWindow picks the configured window, else the source bounds clamped to
// the zoom limits, else the last day.
func (t *Timeline) startWindow(bounds timeline.TimeWindow) timeline.TimeWindow {
	if t.initial.Valid() {
		return t.initial
	}
	if bounds.Valid() {
		if w, err := timeline.ZoomBy(1, 0.5, bounds, t.minZoom, t.maxZoom); err == nil {
			return w
		}
	}
	end := t.now()
	return timeline.WindowOf(end.Add(-defaultSpan), end)
}

func (t *Timeline) reset() {
	t.ready = false
	t.loading = false
	t.last = loadRequest{}
	t.notice = nil
}

func (t *Timeline) setNotice(err error) {
	t.notice = err
}

// Notice returns the error of the last navigation action, if any.
func (t *Timeline) Notice() error {
	return t.notice
}

// Ready reports whether groups are loaded and a window is shown.
func (t *Timeline) Ready() bool {
	return t.ready
}

// Loading reports whether an entries request is in flight.
func (t *Timeline) Loading() bool {
	return t.loading
}

// Chart returns the chart component.
func (t *Timeline) Chart() timelineview.Model {
	return t.chart
}

// Metrics returns the figures shown in the metrics bar.
func (t *Timeline) Metrics() metrics.Data {
	return metrics.Data{
		Visible:              t.chart.Visible(),
		Unit:                 t.chart.Unit(),
		Entries:              t.chart.EntryCount(),
		Groups:               len(t.chart.Groups()),
		Stacked:              t.chart.Layout().StackItems,
		HorizontalRecomputes: t.tracker.Count(devtools.EntryHorizontalRecompute),
		VerticalRecomputes:   t.tracker.Count(devtools.EntryVerticalRecompute),
	}
}

func (t *Timeline) fetchGroupsCmd() tea.Cmd {
	source := t.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(devtools.WithOrigin(context.Background(), "views.Timeline"), sourceTimeout)
		defer cancel()

		groups, err := source.Groups(ctx)
		if err != nil {
			return SourceErrorMsg{Err: fmt.Errorf("load groups: %w", err)}
		}
		msg := groupsLoadedMsg{groups: groups}
		if b, ok := source.(store.Bounder); ok {
			w, found, err := b.Bounds(ctx)
			if err != nil {
				return SourceErrorMsg{Err: fmt.Errorf("load bounds: %w", err)}
			}
			if found {
				msg.bounds = w
			}
		}
		return msg
	}
}

// loadCmd requests the entries of the current canvas and visible groups,
// unless the same request was already made.
func (t *Timeline) loadCmd() tea.Cmd {
	canvas, groupIDs := t.chart.LoadRequest()
	if !canvas.Valid() || len(groupIDs) == 0 {
		return nil
	}
	ids := slices.Clone(groupIDs)
	slices.Sort(ids)
	req := loadRequest{canvas: canvas, groups: strings.Join(ids, "\x00")}
	if req == t.last {
		return nil
	}
	t.last = req
	t.loading = true

	source := t.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(devtools.WithOrigin(context.Background(), "views.Timeline"), sourceTimeout)
		defer cancel()

		entries, err := source.Entries(ctx, req.canvas, req.groupIDs())
		if err != nil {
			return SourceErrorMsg{Err: fmt.Errorf("load entries: %w", err)}
		}
		return entriesLoadedMsg{req: req, entries: entries}
	}
}

// sync copies chart state into the scrollbar, density chart and inspector.
func (t *Timeline) sync() {
	top, bottom := t.chart.Band()
	t.scroll.SetPosition(scrollbar.Position{
		Total:      t.chart.State().TotalHeight,
		Visible:    float64(t.chart.ChartHeight()),
		Top:        t.chart.ScrollTop(),
		BandTop:    top,
		BandBottom: bottom,
	})

	if t.chart.Visible().Valid() {
		err := t.density.SetEntries(t.chart.VisibleEntries(), t.chart.Visible(), t.chart.Unit(), t.chart.Steps())
		if err != nil && t.notice == nil {
			t.notice = err
		}
	}
	t.inspectSelected()
}

func (t *Timeline) inspectSelected() {
	if e, d, ok := t.chart.Selected(); ok {
		t.inspector.SetEntry(e, d)
		return
	}
	t.inspector.Clear()
}

// Name returns the view name.
func (t *Timeline) Name() string {
	return "Timeline"
}

// ShortHelp returns keybindings to show in the navbar.
func (t *Timeline) ShortHelp() []key.Binding {
	return t.keys.ShortHelp()
}

// KeyMap returns the view bindings.
func (t *Timeline) KeyMap() TimelineKeyMap {
	return t.keys
}

// SetSize implements View.
func (t *Timeline) SetSize(width, height int) View {
	t.width = width
	t.height = height
	t.layout()
	return t
}

// SetStyles implements View.
func (t *Timeline) SetStyles(styles Styles) View {
	t.styles = styles
	t.chart.SetStyles(timelineview.Styles{
		Axis:       styles.Axis,
		Gutter:     styles.Gutter,
		GroupTitle: styles.GroupTitle,
		Grid:       styles.Grid,
		Entry:      styles.Entry,
		EntryAlt:   styles.EntryAlt,
		Selected:   styles.Selected,
		Muted:      styles.Muted,
	})
	t.scroll.SetStyles(scrollbar.Styles{
		Track: styles.ScrollTrack,
		Band:  styles.ScrollBand,
		Thumb: styles.ScrollThumb,
	})
	t.density.SetStyles(density.Styles{
		Axis:  styles.ChartAxis,
		Bar:   styles.ChartBar,
		Muted: styles.Muted,
	})
	t.inspector.SetStyles(jsonview.Styles{
		Text:        styles.Text,
		Key:         styles.JSONKey,
		String:      styles.JSONString,
		Number:      styles.JSONNumber,
		Bool:        styles.JSONBool,
		Null:        styles.JSONNull,
		Punctuation: styles.JSONPunctuation,
		Muted:       styles.Muted,
	})
	return t
}

// panels returns the inspector width and density height for the current size.
func (t *Timeline) panels() (int, int) {
	inspW := 0
	if t.showInspector && t.width >= minInspector {
		inspW = min(inspectorWidth, t.width/3)
	}
	densH := 0
	if t.showDensity && t.height >= minDensityRows {
		densH = densityHeight
	}
	return inspW, densH
}

func (t *Timeline) layout() {
	inspW, densH := t.panels()
	mainW := t.width - inspW
	chartH := t.height - densH

	innerW := max(mainW-2, 0)
	innerH := max(chartH-2, 0)
	if err := t.chart.SetSize(max(innerW-t.scroll.Width(), 0), innerH); err != nil {
		t.notice = err
	}
	t.scroll.SetHeight(t.chart.ChartHeight())
	t.density.SetSize(innerW, max(densH-2, 0))
	t.inspector.SetSize(max(inspW-2, 0), innerH+densH)
	t.sync()
}

func (t *Timeline) frameStyles() frame.Styles {
	return frame.Styles{
		Focused: frame.StyleState{
			Title:  t.styles.Title,
			Meta:   t.styles.Muted,
			Border: t.styles.FocusBorder,
		},
		Blurred: frame.StyleState{
			Title:  t.styles.Title,
			Meta:   t.styles.Muted,
			Border: t.styles.BorderStyle,
		},
	}
}

func (t *Timeline) periodStyles() period.Styles {
	return period.Styles{
		Title:       t.styles.Title,
		Border:      t.styles.FocusBorder,
		Prompt:      t.styles.Title,
		Text:        t.styles.Text,
		Placeholder: t.styles.Muted,
		Cursor:      t.styles.Text,
		Error:       t.styles.Error,
		Muted:       t.styles.Muted,
	}
}

// View renders the chart with its scrollbar, the density chart below and the
// inspector on the right.
func (t *Timeline) View() string {
	if t.width <= 0 || t.height <= 0 {
		return ""
	}
	if !t.ready {
		return charts.Placeholder(t.width, t.height, "Loading groups...")
	}

	inspW, densH := t.panels()
	mainW := t.width - inspW
	styles := t.frameStyles()

	meta := format.Window(t.chart.Visible())
	if t.loading {
		meta = "loading · " + meta
	}
	body := t.chart.View()
	if t.chart.ChartHeight() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "\n"+t.scroll.View())
	}
	left := frame.New(
		frame.WithStyles(styles),
		frame.WithTitle(t.Name()),
		frame.WithMeta(meta),
		frame.WithContent(body),
		frame.WithSize(mainW, t.height-densH),
		frame.WithFocused(true),
	).View()

	if densH > 0 {
		box := frame.New(
			frame.WithStyles(styles),
			frame.WithTitle("Density"),
			frame.WithMeta("per "+t.chart.Unit().String()),
			frame.WithContent(t.density.View()),
			frame.WithSize(mainW, densH),
		)
		left = lipgloss.JoinVertical(lipgloss.Left, left, box.View())
	}

	if inspW == 0 {
		return left
	}
	right := frame.New(
		frame.WithStyles(styles),
		frame.WithTitle("Inspector"),
		frame.WithContent(t.inspector.View()),
		frame.WithSize(inspW, t.height),
	).View()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
