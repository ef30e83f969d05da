package timeline

import (
	"time"

	"github.com/kpumuk/lazytimeline/internal/mathutil"
)

const (
	// DefaultMinZoom is the narrowest visible window: one hour.
	DefaultMinZoom = int64(time.Hour / time.Millisecond)
	// DefaultMaxZoom is the widest visible window: 5 × 365.24 days.
	DefaultMaxZoom = int64(5 * 36524 * 24 * 60 * 60 * 10)
	// MinPeriod is the shortest window ShowPeriod accepts: six minutes.
	MinPeriod = int64(6 * time.Minute / time.Millisecond)
)

// PanByTime shifts the window by delta milliseconds.
func PanByTime(w TimeWindow, delta int64) (TimeWindow, error) {
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	if delta == 0 {
		return w, nil
	}
	return TimeWindow{Start: w.Start + delta, End: w.End + delta}, nil
}

// PanByPixels returns the visible window of duration zoom whose left edge is
// scrollX pixels from the canvas start.
func PanByPixels(canvas TimeWindow, canvasWidth, scrollX float64, zoom int64) (TimeWindow, error) {
	if err := canvas.Validate(); err != nil {
		return TimeWindow{}, err
	}
	if zoom <= 0 {
		return TimeWindow{}, &InvalidTimeRangeError{Start: canvas.Start, End: canvas.Start + zoom}
	}
	start := mathutil.Round(XToTime(canvas, canvasWidth, scrollX))
	return TimeWindow{Start: start, End: start + zoom}, nil
}

// ZoomBy scales the window duration by scale, clamped to [minZoom, maxZoom],
// keeping the instant at anchorRatio (0 = left edge, 1 = right edge) fixed.
func ZoomBy(scale, anchorRatio float64, current TimeWindow, minZoom, maxZoom int64) (TimeWindow, error) {
	if err := current.Validate(); err != nil {
		return TimeWindow{}, err
	}
	anchorRatio = mathutil.Clamp(anchorRatio, 0, 1)
	oldZoom := current.Duration()
	newZoom := mathutil.Clamp(mathutil.Round(float64(oldZoom)*scale), minZoom, maxZoom)
	start := mathutil.Round(float64(current.Start) + float64(oldZoom-newZoom)*anchorRatio)
	return TimeWindow{Start: start, End: start + newZoom}, nil
}

// ShowPeriod returns the window [from, to]. Periods shorter than MinPeriod
// are rejected and ok is false.
func ShowPeriod(from, to int64) (TimeWindow, bool) {
	if to-from < MinPeriod {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: from, End: to}, true
}
