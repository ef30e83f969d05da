package period

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/dialogs"
)

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func keyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
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

func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	default:
		return []tea.Msg{m}
	}
}

func ms(s string) int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}

func TestParse(t *testing.T) {
	t.Parallel()

	current := timeline.TimeWindow{Start: 0, End: 4 * 3_600_000}

	tests := map[string]struct {
		input   string
		want    timeline.TimeWindow
		wantErr bool
	}{
		"explicit minutes": {
			input: "2024-05-01 10:00 .. 2024-05-01 12:30",
			want:  timeline.TimeWindow{Start: ms("2024-05-01T10:00:00Z"), End: ms("2024-05-01T12:30:00Z")},
		},
		"explicit rfc3339": {
			input: "2024-05-01T10:00:00+02:00..2024-05-01T11:00:00Z",
			want:  timeline.TimeWindow{Start: ms("2024-05-01T08:00:00Z"), End: ms("2024-05-01T11:00:00Z")},
		},
		"dates": {
			input: "2024-05-01 .. 2024-05-02",
			want:  timeline.TimeWindow{Start: ms("2024-05-01T00:00:00Z"), End: ms("2024-05-02T00:00:00Z")},
		},
		"hours centred": {
			input: "2h",
			want:  timeline.TimeWindow{Start: 3_600_000, End: 3 * 3_600_000},
		},
		"days centred": {
			input: "1d",
			want:  timeline.TimeWindow{Start: 2*3_600_000 - 12*3_600_000, End: 2*3_600_000 + 12*3_600_000},
		},
		"reversed":     {input: "2024-05-02 .. 2024-05-01", wantErr: true},
		"garbage":      {input: "yesterday", wantErr: true},
		"empty":        {input: "  ", wantErr: true},
		"zero span":    {input: "0s", wantErr: true},
		"bad end time": {input: "2024-05-01 .. soon", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.input, current)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %+v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSpanWithoutCurrent(t *testing.T) {
	t.Parallel()

	if _, err := Parse("1h", timeline.TimeWindow{}); !errors.Is(err, timeline.ErrInvalidTimeRange) {
		t.Fatalf("error = %v, want ErrInvalidTimeRange", err)
	}
}

func TestPeriodDialogEnterApplies(t *testing.T) {
	t.Parallel()

	m := New(WithCurrent(timeline.TimeWindow{Start: 0, End: 4 * 3_600_000}))
	m.Init()
	m.input.SetValue("2h")
	m.input.CursorEnd()

	_, cmd := updateModel(t, m, keyCode(tea.KeyEnter))
	msgs := collectMsgs(t, cmd)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	apply, ok := msgs[0].(ApplyMsg)
	if !ok {
		t.Fatalf("message type = %T, want ApplyMsg", msgs[0])
	}
	if want := (timeline.TimeWindow{Start: 3_600_000, End: 3 * 3_600_000}); apply.Window != want {
		t.Fatalf("window = %+v, want %+v", apply.Window, want)
	}
	if _, ok := msgs[1].(dialogs.CloseDialogMsg); !ok {
		t.Fatalf("message type = %T, want dialogs.CloseDialogMsg", msgs[1])
	}
}

func TestPeriodDialogEnterRejectsInvalid(t *testing.T) {
	t.Parallel()

	m := New(WithCurrent(timeline.TimeWindow{Start: 0, End: 1000}))
	m.Init()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m.input.SetValue("nonsense")

	m, cmd := updateModel(t, m, keyCode(tea.KeyEnter))
	if cmd != nil {
		t.Fatalf("expected no command, got %v", collectMsgs(t, cmd))
	}
	if !errors.Is(m.Err(), ErrInvalidPeriod) {
		t.Fatalf("Err() = %v, want ErrInvalidPeriod", m.Err())
	}
	if !strings.Contains(ansi.Strip(m.View()), "cannot parse span") {
		t.Fatal("expected error in view")
	}

	m, _ = updateModel(t, m, keyCtrl('u'))
	if m.input.Value() != "" || m.Err() != nil {
		t.Fatalf("ctrl+u should clear input and error, got %q / %v", m.input.Value(), m.Err())
	}
}

func TestPeriodDialogEscCloses(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()

	_, cmd := updateModel(t, m, keyCode(tea.KeyEsc))
	msgs := collectMsgs(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(dialogs.CloseDialogMsg); !ok {
		t.Fatalf("message type = %T, want dialogs.CloseDialogMsg", msgs[0])
	}
}

func TestPeriodDialogWindowSizing(t *testing.T) {
	t.Parallel()

	m := New()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	if m.width != 60 || m.height != 4 {
		t.Fatalf("size = %dx%d, want 60x4", m.width, m.height)
	}
	if m.row != 13 || m.col != 30 {
		t.Fatalf("position = %d,%d, want 13,30", m.row, m.col)
	}

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if m.width != 48 {
		t.Fatalf("width = %d, want min width 48", m.width)
	}

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╭─ Go to period ") {
		t.Fatalf("unexpected top border %q", lines[0])
	}
}
