package charts

import (
	"sort"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// BucketCounts counts the entries overlapping each bucket cell. Cell i spans
// [boundaries[i], boundaries[i+1]); the last cell ends at end. An entry that
// covers several cells is counted in each of them.
func BucketCounts(entries []timeline.Entry, boundaries []int64, end int64) []int64 {
	if len(boundaries) == 0 {
		return nil
	}
	counts := make([]int64, len(boundaries))
	for _, e := range entries {
		if e.End < boundaries[0] || e.Start >= end {
			continue
		}
		// First cell whose end is past the entry start.
		first := sort.Search(len(boundaries), func(i int) bool {
			return cellEnd(boundaries, i, end) > e.Start
		})
		for i := first; i < len(boundaries) && boundaries[i] <= e.End; i++ {
			counts[i]++
		}
	}
	return counts
}

func cellEnd(boundaries []int64, i int, end int64) int64 {
	if i+1 < len(boundaries) {
		return boundaries[i+1]
	}
	return end
}

// ColumnSeries resamples per-cell counts onto columns spread evenly over
// window. A column takes the largest count of the cells it overlaps.
func ColumnSeries(totals, boundaries []int64, window timeline.TimeWindow, columns int) []int64 {
	if len(totals) == 0 || len(totals) != len(boundaries) || columns <= 0 || !window.Valid() {
		return nil
	}
	out := make([]int64, columns)
	width := float64(columns)
	for c := range columns {
		from := timeline.XToTime(window, width, float64(c))
		to := timeline.XToTime(window, width, float64(c+1))
		// Last cell starting at or before from.
		i := sort.Search(len(boundaries), func(i int) bool {
			return float64(boundaries[i]) > from
		}) - 1
		for i = max(i, 0); i < len(boundaries) && float64(boundaries[i]) < to; i++ {
			out[c] = max(out[c], totals[i])
		}
	}
	return out
}

// BucketLabels formats every boundary for the given unit.
func BucketLabels(boundaries []int64, unit timeline.TimeUnit) []string {
	labels := make([]string, len(boundaries))
	for i, b := range boundaries {
		labels[i] = format.BucketLabel(b, unit)
	}
	return labels
}
