// Package ui renders the Bubble Tea application UI.
package ui

import (
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/store"
	"github.com/kpumuk/lazytimeline/internal/ui/components/errorpopup"
	"github.com/kpumuk/lazytimeline/internal/ui/components/metrics"
	"github.com/kpumuk/lazytimeline/internal/ui/components/navbar"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
	devtoolsdialog "github.com/kpumuk/lazytimeline/internal/ui/dialogs/devtools"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs/help"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs/period"
	"github.com/kpumuk/lazytimeline/internal/ui/theme"
	"github.com/kpumuk/lazytimeline/internal/ui/views"
)

// App is the main application model.
type App struct {
	keys        KeyMap
	width       int
	height      int
	ready       bool
	timeline    *views.Timeline
	metrics     metrics.Model
	navbar      navbar.Model
	errorPopup  errorpopup.Model
	dialogs     dialogs.Stack
	styles      theme.Styles
	tracker     *devtools.Tracker
	sourceName  string
	sourceError error
}

// Option configures the application.
type Option func(*appOptions)

type appOptions struct {
	tracker    *devtools.Tracker
	sourceName string
	brand      string
	timeline   []views.TimelineOption
}

// WithTracker records source commands and recomputations in tracker.
func WithTracker(tracker *devtools.Tracker) Option {
	return func(o *appOptions) { o.tracker = tracker }
}

// WithSourceName sets the source label shown in the metrics bar.
func WithSourceName(name string) Option {
	return func(o *appOptions) { o.sourceName = name }
}

// WithBrand sets the label on the right of the navbar.
func WithBrand(brand string) Option {
	return func(o *appOptions) { o.brand = brand }
}

// WithTimelineOptions passes options to the timeline view.
func WithTimelineOptions(opts ...views.TimelineOption) Option {
	return func(o *appOptions) { o.timeline = append(o.timeline, opts...) }
}

// New creates a new App instance.
func New(source store.Source, opts ...Option) App {
	o := appOptions{brand: "lazytimeline"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracker == nil {
		o.tracker = devtools.NewTracker()
	}

	styles := theme.NewStyles()
	keys := DefaultKeyMap()

	timelineOpts := append([]views.TimelineOption{views.WithTracker(o.tracker)}, o.timeline...)
	timelineView := views.NewTimeline(source, timelineOpts...)
	timelineView.SetStyles(views.Styles{
		Text:            styles.ViewText,
		Muted:           styles.ViewMuted,
		Title:           styles.ViewTitle,
		BorderStyle:     styles.BorderStyle,
		FocusBorder:     styles.FocusBorder,
		Axis:            styles.Axis,
		Gutter:          styles.Gutter,
		GroupTitle:      styles.GroupTitle,
		Grid:            styles.Grid,
		Entry:           styles.Entry,
		EntryAlt:        styles.EntryAlt,
		Selected:        styles.Selected,
		ScrollTrack:     styles.ScrollTrack,
		ScrollBand:      styles.ScrollBand,
		ScrollThumb:     styles.ScrollThumb,
		ChartAxis:       styles.ChartAxis,
		ChartBar:        styles.ChartBar,
		JSONKey:         styles.JSONKey,
		JSONString:      styles.JSONString,
		JSONNumber:      styles.JSONNumber,
		JSONBool:        styles.JSONBool,
		JSONNull:        styles.JSONNull,
		JSONPunctuation: styles.JSONPunctuation,
		Error:           styles.ErrorTitle,
	})

	return App{
		keys:     keys,
		timeline: timelineView,
		metrics: metrics.New(
			metrics.WithStyles(metrics.Styles{
				Bar:   styles.MetricsBar,
				Fill:  styles.MetricsFill,
				Label: styles.MetricsLabel,
				Value: styles.MetricsValue,
				Error: styles.MetricsError,
			}),
			metrics.WithData(metrics.Data{Source: o.sourceName}),
		),
		navbar: navbar.New(
			navbar.WithStyles(navbar.Styles{
				Bar:   styles.NavBar,
				Brand: styles.NavBrand,
				Key:   styles.NavKey,
				Item:  styles.NavItem,
			}),
			navbar.WithBrand(o.brand),
			navbar.WithBindings(slices.Concat(timelineView.ShortHelp(), keys.ShortHelp())),
		),
		errorPopup: errorpopup.New(
			errorpopup.WithStyles(errorpopup.Styles{
				Title:   styles.ErrorTitle,
				Message: styles.ViewText,
				Hint:    styles.ViewMuted,
				Border:  styles.ErrorBorder,
			}),
			errorpopup.WithTitle("Source Error"),
			errorpopup.WithHint("press r to retry"),
		),
		dialogs:    dialogs.NewStack(),
		styles:     styles,
		tracker:    o.tracker,
		sourceName: o.sourceName,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.timeline.Init(),
		a.metrics.Init(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		a.metrics.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)

		contentHeight := max(msg.Height-a.metrics.Height()-a.navbar.Height(), 0)
		a.timeline.SetSize(msg.Width, contentHeight)
		a.errorPopup.SetSize(msg.Width, contentHeight)

		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(tea.WindowSizeMsg{Width: msg.Width, Height: contentHeight})
		cmds = append(cmds, cmd)

	case views.SourceErrorMsg:
		a.sourceError = msg.Err
		_, cmd := a.timeline.Update(msg)
		cmds = append(cmds, cmd)

	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg:
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	case period.ApplyMsg:
		_, cmd := a.timeline.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.dialogs.Open() {
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			cmds = append(cmds, cmd)
			break
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			cmds = append(cmds, a.openDialog(a.helpDialog()))

		case key.Matches(msg, a.keys.DevTools):
			cmds = append(cmds, a.openDialog(devtoolsdialog.New(
				devtoolsdialog.WithTracker(a.tracker),
				devtoolsdialog.WithStyles(devtoolsdialog.Styles{
					Title:  a.styles.ViewTitle,
					Border: a.styles.FocusBorder,
					Text:   a.styles.ViewText,
					Muted:  a.styles.ViewMuted,
					Header: a.styles.NavKey,
				}),
			)))

		default:
			if key.Matches(msg, a.timeline.KeyMap().Reload) {
				a.sourceError = nil
			}
			_, cmd := a.timeline.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		if _, ok := msg.(metrics.UpdateMsg); ok {
			var cmd tea.Cmd
			a.metrics, cmd = a.metrics.Update(msg)
			cmds = append(cmds, cmd)
		}

		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

		_, cmd = a.timeline.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.syncMetrics()
	return a, tea.Batch(cmds...)
}

func (a App) openDialog(model dialogs.DialogModel) tea.Cmd {
	return func() tea.Msg {
		return dialogs.OpenDialogMsg{Model: model}
	}
}

func (a App) helpDialog() *help.Model {
	tk := a.timeline.KeyMap()
	data := a.timeline.Metrics()
	return help.New(
		help.WithStyles(help.Styles{
			Title:   a.styles.ViewTitle,
			Border:  a.styles.FocusBorder,
			Section: a.styles.ViewTitle,
			Key:     a.styles.NavKey,
			Desc:    a.styles.ViewText,
			Muted:   a.styles.ViewMuted,
		}),
		help.WithStatus(help.Status{
			Visible: data.Visible,
			Unit:    data.Unit,
			Entries: data.Entries,
			Stacked: data.Stacked,
		}),
		help.WithGroups(
			help.Group{Title: "Navigation", Bindings: tk.Navigation()},
			help.Group{Title: "Entries", Bindings: tk.Entries()},
			help.Group{Title: "Display", Bindings: tk.Display()},
			help.Group{Title: "General", Bindings: a.keys.General()},
		),
	)
}

// syncMetrics copies the timeline figures into the metrics bar.
func (a *App) syncMetrics() {
	data := a.timeline.Metrics()
	data.Source = a.sourceName
	a.metrics.SetData(data)
	a.metrics.SetError(a.timeline.Notice())
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(a.render())
	return v
}

// render builds the layout: metrics (top) + content (middle) + navbar (bottom).
func (a App) render() string {
	if !a.ready {
		return "Initializing..."
	}

	content := a.timeline.View()

	if a.sourceError != nil {
		a.errorPopup.SetMessage(a.sourceError.Error())
		content = a.errorPopup.Over(content)
	}
	content = a.dialogs.Overlay(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.metrics.View(),
		content,
		a.navbar.View(),
	)
}
