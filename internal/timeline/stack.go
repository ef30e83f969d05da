package timeline

// collisionEpsilon keeps exactly touching intervals from counting as overlap.
const collisionEpsilon = 0.001

// StackResult is the output of Stack.
type StackResult struct {
	Entries      []EntryDimensions `json:"entries"`
	Height       float64           `json:"height"`
	GroupHeights []float64         `json:"groupHeights"`
	GroupTops    []float64         `json:"groupTops"`
}

// Collides reports whether two entries overlap both in time and vertically.
func Collides(a, b EntryDimensions) bool {
	aLeft, aWidth := float64(a.CollisionLeft), float64(a.CollisionWidth)
	bLeft, bWidth := float64(b.CollisionLeft), float64(b.CollisionWidth)
	return aLeft+collisionEpsilon < bLeft+bWidth &&
		aLeft+aWidth-collisionEpsilon > bLeft &&
		a.Top+collisionEpsilon < b.Top+b.Height &&
		a.Top+a.Height-collisionEpsilon > b.Top
}

// Stack assigns Top to every entry and computes group heights and offsets.
//
// Entries are placed group by group in input order. In a stacked group each
// entry starts on the group's first line and is pushed one line below the
// most recently placed entry it collides with until it collides with none.
// The packing depends on input order and is not minimal; callers rely on it
// being stable across re-runs.
//
// dims is not modified; the returned entries are fresh copies.
func Stack(dims []EntryDimensions, groups []Group, cfg LayoutConfig) StackResult {
	if len(groups) == 0 {
		return StackResult{
			Entries:      []EntryDimensions{},
			GroupHeights: []float64{},
			GroupTops:    []float64{},
		}
	}

	out := make([]EntryDimensions, len(dims))
	copy(out, dims)
	for i := range out {
		out[i].Top = 0
		out[i].Placed = false
		out[i].ExtraSpaceLeft = nil
		out[i].ExtraSpaceRight = nil
	}

	members := make([][]int, len(groups))
	for i, d := range out {
		if d.GroupOrderIndex < 0 || d.GroupOrderIndex >= len(groups) {
			continue
		}
		members[d.GroupOrderIndex] = append(members[d.GroupOrderIndex], i)
	}

	lineHeight := cfg.LineHeight
	result := StackResult{
		GroupHeights: make([]float64, 0, len(groups)),
		GroupTops:    make([]float64, 0, len(groups)),
	}

	var current float64
	for gi, group := range groups {
		result.GroupTops = append(result.GroupTops, current)

		var height float64
		if cfg.groupStacked(group) {
			height = stackGroup(out, members[gi], lineHeight, current)
		} else {
			height = placeGroup(out, members[gi], lineHeight, current)
		}

		if group.Height > 0 {
			height = group.Height
		} else {
			height = max(height, lineHeight)
		}
		result.GroupHeights = append(result.GroupHeights, height)
		current += height

		if cfg.groupExtraSpace(group) {
			calculateExtraSpace(out, members[gi])
		}
	}

	result.Entries = out
	result.Height = current
	return result
}

func stackGroup(out []EntryDimensions, members []int, lineHeight, groupTop float64) float64 {
	var height float64
	for k, i := range members {
		item := &out[i]
		margin := (lineHeight - item.Height) / 2
		item.Top = groupTop + margin
		item.Placed = true
		height = max(height, lineHeight)

		for {
			colliding := -1
			for j := k - 1; j >= 0; j-- {
				other := out[members[j]]
				if other.Placed && other.Stack && Collides(*item, other) {
					colliding = members[j]
					break
				}
			}
			if colliding < 0 {
				break
			}
			// Entries taller than a line are pushed below their full height,
			// otherwise the push would never clear them.
			item.Top = out[colliding].Top + max(lineHeight, out[colliding].Height)
			height = max(height, item.Top+item.Height+margin-groupTop)
		}
	}
	return height
}

// placeGroup centres every entry on the group's first line. The height is the
// lowest entry bottom below groupTop, at least one line.
func placeGroup(out []EntryDimensions, members []int, lineHeight, groupTop float64) float64 {
	height := lineHeight
	for _, i := range members {
		item := &out[i]
		item.Top = groupTop + (lineHeight-item.Height)/2
		item.Placed = true
		height = max(height, item.Bottom()-groupTop)
	}
	return height
}

// calculateExtraSpace records, for each entry, the gap to the nearest entry on
// its right that shares part of its vertical band, and the mirror gap on that
// neighbour's left.
func calculateExtraSpace(out []EntryDimensions, members []int) {
	for _, i := range members {
		for _, j := range members {
			if i == j {
				continue
			}
			a, b := out[i], out[j]
			if a.Top+collisionEpsilon >= b.Bottom() || a.Bottom()-collisionEpsilon <= b.Top {
				continue
			}
			if b.Left < a.Right()-collisionEpsilon {
				continue
			}
			gap := max(b.Left-a.Right(), 0)
			out[i].ExtraSpaceRight = minSpace(out[i].ExtraSpaceRight, gap)
			out[j].ExtraSpaceLeft = minSpace(out[j].ExtraSpaceLeft, gap)
		}
	}
}

func minSpace(current *float64, gap float64) *float64 {
	if current != nil && *current <= gap {
		return current
	}
	return &gap
}
