package timeline

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestReconcileHorizontalCanvas(t *testing.T) {
	t.Parallel()

	prevVisible := TimeWindow{Start: 1000, End: 2000}
	prevCanvas := TimeWindow{Start: 0, End: 3000}

	tests := []struct {
		name           string
		requested      TimeWindow
		force          bool
		wantCanvas     TimeWindow
		wantRecomputed bool
	}{
		{
			name:       "unchanged",
			requested:  prevVisible,
			wantCanvas: prevCanvas,
		},
		{
			name:       "small pan right",
			requested:  TimeWindow{Start: 1400, End: 2400},
			wantCanvas: prevCanvas,
		},
		{
			name:       "pan to the lower edge of the band",
			requested:  TimeWindow{Start: 500, End: 1500},
			wantCanvas: prevCanvas,
		},
		{
			name:           "pan past the band",
			requested:      TimeWindow{Start: 1600, End: 2600},
			wantCanvas:     TimeWindow{Start: 600, End: 3600},
			wantRecomputed: true,
		},
		{
			name:           "zoom changed",
			requested:      TimeWindow{Start: 1000, End: 1500},
			wantCanvas:     TimeWindow{Start: 500, End: 2000},
			wantRecomputed: true,
		},
		{
			name:           "forced",
			requested:      prevVisible,
			force:          true,
			wantCanvas:     prevCanvas,
			wantRecomputed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReconcileHorizontalCanvas(tt.requested, prevVisible, prevCanvas, tt.force)
			if err != nil {
				t.Fatalf("ReconcileHorizontalCanvas error: %v", err)
			}
			if got.Canvas != tt.wantCanvas || got.Recomputed != tt.wantRecomputed {
				t.Fatalf("ReconcileHorizontalCanvas = %+v, want canvas %+v recomputed %v", got, tt.wantCanvas, tt.wantRecomputed)
			}
		})
	}
}

func TestReconcileHorizontalCanvas_InitialState(t *testing.T) {
	t.Parallel()

	got, err := ReconcileHorizontalCanvas(TimeWindow{Start: 10, End: 20}, TimeWindow{}, TimeWindow{}, false)
	if err != nil {
		t.Fatalf("ReconcileHorizontalCanvas error: %v", err)
	}
	if !got.Recomputed || got.Canvas != (TimeWindow{Start: 0, End: 30}) {
		t.Fatalf("initial reconcile = %+v", got)
	}
}

func TestReconcileHorizontalCanvas_RejectsInvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := ReconcileHorizontalCanvas(TimeWindow{Start: 20, End: 20}, TimeWindow{Start: 0, End: 10}, TimeWindow{Start: -10, End: 20}, false)
	var rangeErr *InvalidTimeRangeError
	if !errors.As(err, &rangeErr) || rangeErr.Start != 20 {
		t.Fatalf("error = %v, want *InvalidTimeRangeError", err)
	}
}

func TestReconcileHorizontalCanvas_AlwaysContainsVisible(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 5))
	visible := TimeWindow{Start: 1_000_000, End: 1_100_000}
	canvas := CanvasFor(visible)

	for range 2000 {
		zoom := visible.Duration()
		switch rng.IntN(3) {
		case 0:
			zoom = max(zoom+rng.Int64N(20_000)-10_000, 1000)
		}
		start := visible.Start + rng.Int64N(zoom) - zoom/2
		next := TimeWindow{Start: start, End: start + zoom}

		got, err := ReconcileHorizontalCanvas(next, visible, canvas, rng.IntN(50) == 0)
		if err != nil {
			t.Fatalf("ReconcileHorizontalCanvas error: %v", err)
		}
		if !got.Canvas.Contains(next) {
			t.Fatalf("canvas %+v does not contain visible %+v", got.Canvas, next)
		}
		if got.Recomputed && got.Canvas.Duration() != CanvasFactor*next.Duration() {
			t.Fatalf("recomputed canvas %+v is not %dx %+v", got.Canvas, CanvasFactor, next)
		}
		visible, canvas = next, got.Canvas
	}
}

func TestReconcileVerticalCanvas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		visibleTop float64
		height     float64
		prevTop    float64
		prevBottom float64
		want       VerticalResult
	}{
		{
			name:       "centred viewport keeps band",
			visibleTop: 100, height: 100, prevTop: 0, prevBottom: 300,
			want: VerticalResult{Top: 0, Bottom: 300},
		},
		{
			name:       "exactly half a viewport of slack keeps band",
			visibleTop: 50, height: 100, prevTop: 0, prevBottom: 300,
			want: VerticalResult{Top: 0, Bottom: 300},
		},
		{
			name:       "near the top recentres",
			visibleTop: 40, height: 100, prevTop: 0, prevBottom: 300,
			want: VerticalResult{Top: -60, Bottom: 240, Recomputed: true},
		},
		{
			name:       "near the bottom recentres",
			visibleTop: 160, height: 100, prevTop: 0, prevBottom: 300,
			want: VerticalResult{Top: 60, Bottom: 360, Recomputed: true},
		},
		{
			name:       "initial empty band recentres",
			visibleTop: 0, height: 20, prevTop: 0, prevBottom: 0,
			want: VerticalResult{Top: -20, Bottom: 40, Recomputed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ReconcileVerticalCanvas(tt.visibleTop, tt.height, tt.prevTop, tt.prevBottom)
			if got != tt.want {
				t.Fatalf("ReconcileVerticalCanvas = %+v, want %+v", got, tt.want)
			}
		})
	}
}
