package timeline

import (
	"math"
	"testing"
	"time"
)

func TestXToTime_DayCanvas(t *testing.T) {
	t.Parallel()

	canvas := WindowOf(
		time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC),
	)

	tests := []struct {
		name string
		x    float64
		want time.Time
	}{
		{name: "canvas start", x: 0, want: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "middle", x: 1500, want: time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "quarter", x: 750, want: time.Date(2018, 1, 1, 12, 0, 0, 0, time.UTC)},
		{name: "eighth", x: 375, want: time.Date(2018, 1, 1, 6, 0, 0, 0, time.UTC)},
		{name: "canvas end", x: 3000, want: time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := XToTime(canvas, 3000, tt.x)
			if got != float64(tt.want.UnixMilli()) {
				t.Fatalf("XToTime(%v) = %v, want %v", tt.x, got, tt.want.UnixMilli())
			}
		})
	}
}

func TestTimeToX_IsLinearAndUnclamped(t *testing.T) {
	t.Parallel()

	canvas := TimeWindow{Start: 1000, End: 2000}
	if got := TimeToX(canvas, 500, 1500); got != 250 {
		t.Fatalf("TimeToX(1500) = %v, want 250", got)
	}
	if got := TimeToX(canvas, 500, 500); got != -250 {
		t.Fatalf("TimeToX(500) = %v, want -250", got)
	}
	if got := TimeToX(canvas, 500, 3000); got != 1000 {
		t.Fatalf("TimeToX(3000) = %v, want 1000", got)
	}
}

func TestCoordinateInverse(t *testing.T) {
	t.Parallel()

	canvases := []struct {
		canvas TimeWindow
		width  float64
	}{
		{canvas: TimeWindow{Start: 1514764800000, End: 1514937600000}, width: 3000},
		{canvas: TimeWindow{Start: -86400000, End: 86400000}, width: 1234.5},
		{canvas: TimeWindow{Start: 0, End: 7}, width: 4096},
	}

	for _, c := range canvases {
		step := max(c.canvas.Duration()/97, 1)
		for ts := c.canvas.Start; ts <= c.canvas.End; ts += step {
			x := TimeToX(c.canvas, c.width, ts)
			back := XToTime(c.canvas, c.width, x)
			if math.Abs(back-float64(ts)) > 1e-2 {
				t.Fatalf("XToTime(TimeToX(%d)) = %v on %+v", ts, back, c.canvas)
			}
		}
	}
}

func TestPixelsPerMs(t *testing.T) {
	t.Parallel()

	canvas := TimeWindow{Start: 0, End: 2000}
	if got := PixelsPerMs(canvas, 1000); got != 0.5 {
		t.Fatalf("PixelsPerMs = %v, want 0.5", got)
	}
	if got := MsPerPixel(canvas, 1000); got != 2 {
		t.Fatalf("MsPerPixel = %v, want 2", got)
	}
}
