package ui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/store"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	devtoolsdialog "github.com/kpumuk/lazytimeline/internal/ui/dialogs/devtools"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs/help"
	"github.com/kpumuk/lazytimeline/internal/ui/views"
)

const hour = int64(3_600_000)

func testSource() store.Source {
	return store.NewFileSource(store.Dataset{
		Groups: []timeline.Group{
			{ID: "api", Title: "API"},
			{ID: "db", Title: "Database"},
		},
		Entries: []timeline.Entry{
			{ID: "a", GroupID: "api", Title: "deploy", Start: 0, End: hour},
			{ID: "c", GroupID: "db", Title: "vacuum", Start: hour, End: 3 * hour},
		},
	})
}

func keyText(text string) tea.KeyPressMsg {
	r := []rune(text)
	return tea.KeyPressMsg{Code: r[0], Text: text}
}

// run executes cmd and feeds every resulting message back into the app,
// expanding batches.
func run(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatal("unexpected quit")
		}
		model, c := a.Update(msg)
		a = model.(App)
		queue = append(queue, c)
	}
	return a
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, cmd := a.Update(msg)
	return run(t, model.(App), cmd)
}

func newTestApp(t *testing.T) (App, *devtools.Tracker) {
	t.Helper()
	tracker := devtools.NewTracker()
	a := New(testSource(),
		WithTracker(tracker),
		WithSourceName("file"),
		WithTimelineOptions(views.WithInitialWindow(timeline.TimeWindow{Start: 0, End: 4 * hour})),
	)
	a = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	a = run(t, a, a.Init())
	return a, tracker
}

func TestAppInitialView(t *testing.T) {
	t.Parallel()

	a := New(testSource())
	if got := a.render(); got != "Initializing..." {
		t.Fatalf("View before size = %q", got)
	}

	a, _ = newTestApp(t)
	if !a.View().AltScreen {
		t.Fatal("AltScreen = false")
	}
	content := a.render()
	for _, want := range []string{"Source:", "file", "Entries:", "Timeline", "API", "pan left", "lazytimeline"} {
		if !strings.Contains(content, want) {
			t.Fatalf("view missing %q:\n%s", want, content)
		}
	}
	if lines := strings.Split(content, "\n"); len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	if got := a.metrics.Data().Entries; got != 2 {
		t.Fatalf("metrics entries = %d, want 2", got)
	}
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	_, cmd := a.Update(keyText("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}

func TestAppHelpDialog(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = update(t, a, keyText("?"))
	if got := a.dialogs.TopID(); got != help.DialogID {
		t.Fatalf("active dialog = %q, want %q", got, help.DialogID)
	}
	if !strings.Contains(a.render(), "Navigation") {
		t.Fatalf("help not drawn:\n%s", a.render())
	}

	// Keys go to the dialog while it is open.
	model, cmd := a.Update(keyText("q"))
	a = model.(App)
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q quit while the help dialog was open")
		}
	}

	a = update(t, a, keyText("?"))
	if a.dialogs.Open() {
		t.Fatal("help dialog still open")
	}
}

func TestAppDevToolsDialog(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = update(t, a, keyText("~"))
	if got := a.dialogs.TopID(); got != devtoolsdialog.DialogID {
		t.Fatalf("active dialog = %q, want %q", got, devtoolsdialog.DialogID)
	}
	if !strings.Contains(a.render(), "Dev Log") {
		t.Fatalf("dev log not drawn:\n%s", a.render())
	}
}

func TestAppSourceError(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = update(t, a, views.SourceErrorMsg{Err: errors.New("connection refused")})

	content := a.render()
	for _, want := range []string{"Source Error", "connection refused", "press r to retry"} {
		if !strings.Contains(content, want) {
			t.Fatalf("view missing %q:\n%s", want, content)
		}
	}

	a = update(t, a, keyText("r"))
	if a.sourceError != nil {
		t.Fatalf("sourceError = %v after retry", a.sourceError)
	}
	if strings.Contains(a.render(), "Source Error") {
		t.Fatal("error popup shown after retry")
	}
}

func TestAppNavigationUpdatesMetrics(t *testing.T) {
	t.Parallel()

	a, tracker := newTestApp(t)
	before := a.metrics.Data().Visible

	a = update(t, a, keyText("L"))
	after := a.metrics.Data().Visible
	if after.Start != before.End {
		t.Fatalf("visible start = %d, want %d", after.Start, before.End)
	}
	if got := a.metrics.Data().HorizontalRecomputes; got != tracker.Count(devtools.EntryHorizontalRecompute) {
		t.Fatalf("HorizontalRecomputes = %d, tracker has %d", got, tracker.Count(devtools.EntryHorizontalRecompute))
	}
}
