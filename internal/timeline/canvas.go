package timeline

// CanvasFactor is how many visible widths (or heights) a canvas spans.
const CanvasFactor = 3

// CanvasFor returns the canvas centred on the visible window: one visible
// duration on either side.
func CanvasFor(visible TimeWindow) TimeWindow {
	zoom := visible.Duration()
	return TimeWindow{Start: visible.Start - zoom, End: visible.End + zoom}
}

// HorizontalResult is the outcome of ReconcileHorizontalCanvas.
type HorizontalResult struct {
	Canvas     TimeWindow
	Recomputed bool
}

// ReconcileHorizontalCanvas decides whether prevCanvas still covers the
// requested visible window. The canvas is kept only when the zoom is
// unchanged and the window still sits in the band between 0.5 and 2.5 visible
// durations from the canvas start; otherwise, or when force is set, it is
// recentred around the request. When Recomputed is true the caller must
// compute a new layout for Canvas.
func ReconcileHorizontalCanvas(requested, prevVisible, prevCanvas TimeWindow, force bool) (HorizontalResult, error) {
	if err := requested.Validate(); err != nil {
		return HorizontalResult{}, err
	}
	if !force && prevVisible.Valid() && prevCanvas.Valid() && canKeepCanvas(requested, prevVisible, prevCanvas) {
		return HorizontalResult{Canvas: prevCanvas}, nil
	}
	return HorizontalResult{Canvas: CanvasFor(requested), Recomputed: true}, nil
}

func canKeepCanvas(requested, prevVisible, prevCanvas TimeWindow) bool {
	oldZoom := prevVisible.Duration()
	if requested.Duration() != oldZoom {
		return false
	}
	start := float64(prevCanvas.Start)
	zoom := float64(oldZoom)
	vs, ve := float64(requested.Start), float64(requested.End)
	return vs >= start+zoom*0.5 &&
		vs <= start+zoom*1.5 &&
		ve >= start+zoom*1.5 &&
		ve <= start+zoom*2.5 &&
		prevCanvas.Contains(requested)
}

// VerticalResult is the outcome of ReconcileVerticalCanvas.
type VerticalResult struct {
	Top        float64
	Bottom     float64
	Recomputed bool
}

// ReconcileVerticalCanvas keeps the materialized row band [prevTop,
// prevBottom] while the viewport stays at least half a viewport away from
// both edges, and otherwise recentres it to three viewport heights. Moving
// the band never changes entry geometry.
func ReconcileVerticalCanvas(visibleTop, visibleHeight, prevTop, prevBottom float64) VerticalResult {
	margin := visibleHeight * 0.5
	needsRecenter := visibleTop-prevTop < margin ||
		prevBottom-(visibleTop+visibleHeight) < margin
	if !needsRecenter {
		return VerticalResult{Top: prevTop, Bottom: prevBottom}
	}
	return VerticalResult{
		Top:        visibleTop - visibleHeight,
		Bottom:     visibleTop + 2*visibleHeight,
		Recomputed: true,
	}
}
