package devtools

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	coredevtools "github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
)

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func keyText(text string) tea.KeyPressMsg {
	var code rune
	for _, r := range text {
		code = r
		break
	}
	return tea.KeyPressMsg(tea.Key{Text: text, Code: code})
}

func updateModel(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", next)
	}
	return updated, cmd
}

func seedTracker() *coredevtools.Tracker {
	tracker := coredevtools.NewTracker()
	tracker.AppendLog(coredevtools.LogEntry{
		Time:   time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC),
		Origin: "store.Entries",
		Entry: coredevtools.Entry{
			Kind:     coredevtools.EntryCommand,
			Command:  "zrangebyscore test:entries:api -inf 3600000",
			Duration: 3 * time.Millisecond,
		},
	})
	tracker.RecordRecompute(
		coredevtools.WithOrigin(context.Background(), "timelineview"),
		coredevtools.EntryHorizontalRecompute,
		"canvas recentred",
		2*time.Millisecond,
	)
	return tracker
}

func TestDevToolsCloseKeys(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		msg tea.Msg
	}{
		"f12":   {msg: keyCode(tea.KeyF12)},
		"tilde": {msg: keyText("~")},
		"esc":   {msg: keyCode(tea.KeyEsc)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := New()
			m.Init()

			_, cmd := updateModel(t, m, tc.msg)
			if cmd == nil {
				t.Fatal("expected close command")
			}
			if _, ok := cmd().(dialogs.CloseDialogMsg); !ok {
				t.Fatalf("message type = %T, want dialogs.CloseDialogMsg", cmd())
			}
		})
	}
}

func TestDevToolsWindowSizing(t *testing.T) {
	t.Parallel()

	m := New()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 15 {
		t.Fatalf("size = %dx%d, want 100x15", m.width, m.height)
	}

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 40, Height: 5})
	if m.height != 4 {
		t.Fatalf("height = %d, want 4", m.height)
	}
}

func TestDevToolsViewRows(t *testing.T) {
	t.Parallel()

	m := New(WithTracker(seedTracker()))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 10 {
		t.Fatalf("lines = %d, want 10", len(lines))
	}
	if !strings.Contains(lines[0], "Dev Log") || !strings.Contains(lines[0], "all · 2") {
		t.Fatalf("unexpected top border %q", lines[0])
	}
	if !strings.Contains(lines[1], "Origin") || !strings.Contains(lines[1], "Detail") {
		t.Fatalf("expected header, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "03:04:05.678") || !strings.Contains(lines[2], "zrangebyscore") || !strings.Contains(lines[2], "3ms") {
		t.Fatalf("expected redis row, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "timelineview") || !strings.Contains(lines[3], "canvas-x") {
		t.Fatalf("expected recompute row, got %q", lines[3])
	}
}

func TestDevToolsFilterCycle(t *testing.T) {
	t.Parallel()

	m := New(WithTracker(seedTracker()))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	m, _ = updateModel(t, m, keyText("f"))
	if m.Filter() != FilterRedis {
		t.Fatalf("filter = %v, want redis", m.Filter())
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "redis · 1") || strings.Contains(view, "canvas-x") {
		t.Fatalf("expected only redis rows, got %q", view)
	}

	m, _ = updateModel(t, m, keyText("f"))
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "canvas · 1") || strings.Contains(view, "zrangebyscore") {
		t.Fatalf("expected only canvas rows, got %q", view)
	}

	m, _ = updateModel(t, m, keyText("f"))
	if m.Filter() != FilterAll {
		t.Fatalf("filter = %v, want all", m.Filter())
	}
}

func TestDevToolsFollowsTail(t *testing.T) {
	t.Parallel()

	tracker := coredevtools.NewTracker()
	for i := range 20 {
		tracker.AppendLog(coredevtools.LogEntry{
			Origin: "store.Entries",
			Entry:  coredevtools.Entry{Kind: coredevtools.EntryCommand, Command: "cmd-" + string(rune('a'+i))},
		})
	}

	m := New(WithTracker(tracker))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 16})

	// 8 rows high: 5 log rows below the header
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "cmd-t") || strings.Contains(view, "cmd-o") {
		t.Fatalf("expected tail rows, got %q", view)
	}

	m, _ = updateModel(t, m, keyText("g"))
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "cmd-a") || strings.Contains(view, "cmd-t") {
		t.Fatalf("expected head rows, got %q", view)
	}

	m, _ = updateModel(t, m, keyText("j"))
	if m.yOffset != 1 {
		t.Fatalf("yOffset = %d, want 1", m.yOffset)
	}

	m, _ = updateModel(t, m, keyText("G"))
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "cmd-t") {
		t.Fatalf("expected tail rows after G, got %q", view)
	}
}

func TestDevToolsEmpty(t *testing.T) {
	t.Parallel()

	m := New()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	if !strings.Contains(ansi.Strip(m.View()), "No entries recorded.") {
		t.Fatal("expected empty message")
	}
}
