package timeline

// MinEntryWidth keeps zero-length and sub-pixel entries visible.
const MinEntryWidth = 3.0

// GroupOrders maps each group id to its rank.
func GroupOrders(groups []Group) map[string]int {
	orders := make(map[string]int, len(groups))
	for i, g := range groups {
		if _, ok := orders[g.ID]; !ok {
			orders[g.ID] = i
		}
	}
	return orders
}

// VisibleEntries keeps the entries that intersect the canvas and belong to a
// known group, in input order. Entries of unknown groups are dropped silently
// because groups may be paged independently of entries.
func VisibleEntries(entries []Entry, orders map[string]int, canvas TimeWindow) []Entry {
	visible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := orders[e.GroupID]; !ok {
			continue
		}
		if !canvas.Intersects(e.Start, e.End) {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

// CalculateDimensions computes the horizontal pixel span of [start, end] on
// the canvas and its collision extent. The pixel span is clipped to the canvas;
// the collision extent is not.
func CalculateDimensions(start, end int64, canvas TimeWindow, canvasWidth float64) EntryDimensions {
	effectiveStart := max(start, canvas.Start)
	effectiveEnd := min(end, canvas.End)

	left := TimeToX(canvas, canvasWidth, effectiveStart)
	right := TimeToX(canvas, canvasWidth, effectiveEnd)

	return EntryDimensions{
		Left:           left,
		Width:          max(right-left, MinEntryWidth),
		CollisionLeft:  start,
		CollisionWidth: end - start,
	}
}

func entryDimensions(e Entry, groupIndex int, stack bool, canvas TimeWindow, canvasWidth float64, cfg LayoutConfig) EntryDimensions {
	d := CalculateDimensions(e.Start, e.End, canvas, canvasWidth)
	d.EntryID = e.ID
	d.GroupID = e.GroupID
	d.GroupOrderIndex = groupIndex
	d.Stack = stack
	d.Height = e.Height
	if d.Height <= 0 {
		d.Height = cfg.EntryHeight()
	}
	return d
}
