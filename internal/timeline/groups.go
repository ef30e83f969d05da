package timeline

import (
	"math"
	"sort"
)

// VisibleGroupRange returns the half-open index range [first, last) of groups
// that may intersect [canvasTop, canvasBottom]. groupTops must be sorted.
//
// The range is found by a leftmost binary search for canvasTop, widened by the
// predecessor when it reaches into the band, and then extended by
// ceil(height/lineHeight)+1 groups. This overshoots on purpose: it is only a
// hint for data loading.
func VisibleGroupRange(groupTops []float64, lineHeight, canvasTop, canvasBottom float64) (int, int) {
	n := len(groupTops)
	if n == 0 || lineHeight <= 0 || canvasBottom <= canvasTop {
		return 0, 0
	}

	first := sort.SearchFloat64s(groupTops, canvasTop)
	if first == n || (first > 0 && groupTops[first] > canvasTop) {
		first--
	}

	count := int(math.Ceil((canvasBottom-canvasTop)/lineHeight)) + 1
	last := min(first+count, n)
	return first, last
}

// FindVisibleGroups returns the ids of the groups that may intersect the
// vertical canvas band.
func FindVisibleGroups(layouts []GroupLayout, lineHeight, canvasTop, canvasBottom float64) []string {
	tops := make([]float64, len(layouts))
	for i, l := range layouts {
		tops[i] = l.Top
	}
	first, last := VisibleGroupRange(tops, lineHeight, canvasTop, canvasBottom)
	ids := make([]string, 0, last-first)
	for _, l := range layouts[first:last] {
		ids = append(ids, l.GroupID)
	}
	return ids
}
