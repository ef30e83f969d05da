package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestZoomBy(t *testing.T) {
	t.Parallel()

	hour := int64(time.Hour / time.Millisecond)

	tests := []struct {
		name    string
		scale   float64
		anchor  float64
		current TimeWindow
		want    TimeWindow
	}{
		{
			name:    "zoom in around the centre",
			scale:   0.5,
			anchor:  0.5,
			current: TimeWindow{Start: 0, End: 4 * hour},
			want:    TimeWindow{Start: hour, End: 3 * hour},
		},
		{
			name:    "zoom out anchored on the left edge",
			scale:   2,
			anchor:  0,
			current: TimeWindow{Start: 0, End: 4 * hour},
			want:    TimeWindow{Start: 0, End: 8 * hour},
		},
		{
			name:    "zoom in clamps to the minimum",
			scale:   0.1,
			anchor:  1,
			current: TimeWindow{Start: 0, End: 2 * hour},
			want:    TimeWindow{Start: hour, End: 2 * hour},
		},
		{
			name:    "zoom out clamps to the maximum",
			scale:   1000,
			anchor:  0,
			current: TimeWindow{Start: 0, End: 24 * 365 * hour},
			want:    TimeWindow{Start: 0, End: DefaultMaxZoom},
		},
		{
			name:    "anchor outside the window is clamped",
			scale:   0.5,
			anchor:  7,
			current: TimeWindow{Start: 0, End: 4 * hour},
			want:    TimeWindow{Start: 2 * hour, End: 4 * hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ZoomBy(tt.scale, tt.anchor, tt.current, DefaultMinZoom, DefaultMaxZoom)
			if err != nil {
				t.Fatalf("ZoomBy error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ZoomBy = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestZoomBy_RejectsInvalidWindow(t *testing.T) {
	t.Parallel()

	if _, err := ZoomBy(2, 0.5, TimeWindow{Start: 10, End: 5}, DefaultMinZoom, DefaultMaxZoom); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("ZoomBy error = %v, want ErrInvalidTimeRange", err)
	}
}

func TestPanByTime(t *testing.T) {
	t.Parallel()

	w := TimeWindow{Start: 100, End: 200}
	got, err := PanByTime(w, 50)
	if err != nil || got != (TimeWindow{Start: 150, End: 250}) {
		t.Fatalf("PanByTime(50) = %+v, %v", got, err)
	}
	got, err = PanByTime(w, 0)
	if err != nil || got != w {
		t.Fatalf("PanByTime(0) = %+v, %v", got, err)
	}
	if _, err := PanByTime(TimeWindow{Start: 5, End: 5}, 10); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("PanByTime(empty) error = %v, want ErrInvalidTimeRange", err)
	}
}

func TestPanByPixels(t *testing.T) {
	t.Parallel()

	canvas := TimeWindow{Start: 0, End: 30_000}
	got, err := PanByPixels(canvas, 3000, 1000, 10_000)
	if err != nil || got != (TimeWindow{Start: 10_000, End: 20_000}) {
		t.Fatalf("PanByPixels = %+v, %v", got, err)
	}
	got, err = PanByPixels(canvas, 3000, 1000.04, 10_000)
	if err != nil || got.Start != 10_000 {
		t.Fatalf("PanByPixels rounding = %+v, %v", got, err)
	}
	if _, err := PanByPixels(canvas, 3000, 10, 0); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("PanByPixels(zero zoom) error = %v, want ErrInvalidTimeRange", err)
	}
}

func TestShowPeriod(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	if _, ok := ShowPeriod(start, start+300_000); ok {
		t.Fatalf("ShowPeriod accepted a five minute period")
	}
	got, ok := ShowPeriod(start, start+MinPeriod)
	if !ok || got != (TimeWindow{Start: start, End: start + MinPeriod}) {
		t.Fatalf("ShowPeriod(6m) = %+v, %v", got, ok)
	}
	if _, ok := ShowPeriod(start, start-MinPeriod); ok {
		t.Fatalf("ShowPeriod accepted an inverted period")
	}
}

func TestDefaultZoomLimits(t *testing.T) {
	t.Parallel()

	if DefaultMinZoom != 3_600_000 {
		t.Fatalf("DefaultMinZoom = %d", DefaultMinZoom)
	}
	if want := int64(157_783_680_000); DefaultMaxZoom != want {
		t.Fatalf("DefaultMaxZoom = %d, want %d", DefaultMaxZoom, want)
	}
}
