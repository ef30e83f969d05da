// Package timeline is the geometry and virtualization engine of the timeline.
//
// It maps wall-clock milliseconds to pixels, decides how much of the time and
// row axes is materialized ("canvas") around the visible viewport, and stacks
// entries inside their groups so that overlapping entries never share vertical
// space. Everything here is synchronous and free of hidden state: the canvas
// reconcilers take the previous state explicitly and return the next one.
package timeline

import "time"

// TimeWindow is a half-open range of Unix milliseconds.
type TimeWindow struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// WindowOf builds a TimeWindow from two instants.
func WindowOf(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start.UnixMilli(), End: end.UnixMilli()}
}

// Duration returns End - Start in milliseconds.
func (w TimeWindow) Duration() int64 {
	return w.End - w.Start
}

// Valid reports whether Start < End.
func (w TimeWindow) Valid() bool {
	return w.Start < w.End
}

// Validate returns an *InvalidTimeRangeError when the window is empty or inverted.
func (w TimeWindow) Validate() error {
	if !w.Valid() {
		return &InvalidTimeRangeError{Start: w.Start, End: w.End}
	}
	return nil
}

// Contains reports whether other lies fully inside w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.Start <= other.Start && other.End <= w.End
}

// Intersects reports whether the closed ranges [start, end] and w overlap.
func (w TimeWindow) Intersects(start, end int64) bool {
	return start <= w.End && end >= w.Start
}

// StartTime returns Start as a UTC time.
func (w TimeWindow) StartTime() time.Time {
	return time.UnixMilli(w.Start).UTC()
}

// EndTime returns End as a UTC time.
func (w TimeWindow) EndTime() time.Time {
	return time.UnixMilli(w.End).UTC()
}

// Group is a timeline row. Its position in the groups slice is its rank.
type Group struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// StackItems overrides LayoutConfig.StackItems when set.
	StackItems *bool `json:"stackItems,omitempty" yaml:"stack_items,omitempty"`
	// Height forces the row height in pixels; zero means computed.
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	// CalculateExtraSpace overrides LayoutConfig.CalculateExtraSpace when set.
	CalculateExtraSpace *bool `json:"calculateExtraSpace,omitempty" yaml:"calculate_extra_space,omitempty"`
}

// Entry is a single item on the timeline.
type Entry struct {
	ID      string `json:"id"`
	GroupID string `json:"group"`
	Title   string `json:"title,omitempty"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	// Height in pixels; zero means LayoutConfig.EntryHeight().
	Height float64 `json:"height,omitempty"`
}

// EntryDimensions is the computed geometry of one visible entry.
type EntryDimensions struct {
	EntryID string  `json:"id"`
	GroupID string  `json:"group"`
	Left    float64 `json:"left"`
	Width   float64 `json:"width"`
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
	// Placed is false until the stacking pass assigns Top.
	Placed          bool  `json:"placed"`
	CollisionLeft   int64 `json:"collisionLeft"`
	CollisionWidth  int64 `json:"collisionWidth"`
	GroupOrderIndex int   `json:"groupOrderIndex"`
	Stack           bool  `json:"stack"`
	// ExtraSpaceLeft and ExtraSpaceRight are nil when unbounded.
	ExtraSpaceLeft  *float64 `json:"extraSpaceLeft"`
	ExtraSpaceRight *float64 `json:"extraSpaceRight"`
}

// Right returns Left + Width.
func (d EntryDimensions) Right() float64 {
	return d.Left + d.Width
}

// Bottom returns Top + Height.
func (d EntryDimensions) Bottom() float64 {
	return d.Top + d.Height
}

// GroupLayout is the vertical slot of a group. Slots are contiguous.
type GroupLayout struct {
	GroupID string  `json:"id"`
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
}

// CanvasState is everything the renderer needs for one materialized canvas.
// It is replaced wholesale whenever a canvas manager asks for recomputation.
type CanvasState struct {
	Canvas       TimeWindow        `json:"canvas"`
	CanvasWidth  float64           `json:"canvasWidth"`
	CanvasTop    float64           `json:"canvasTop"`
	CanvasBottom float64           `json:"canvasBottom"`
	Entries      []EntryDimensions `json:"entries"`
	GroupLayouts []GroupLayout     `json:"groups"`
	GroupTops    []float64         `json:"groupTops"`
	GroupHeights []float64         `json:"groupHeights"`
	TotalHeight  float64           `json:"height"`
}

// Entry looks up the dimensions of an entry by id.
func (s CanvasState) Entry(id string) (EntryDimensions, bool) {
	for _, d := range s.Entries {
		if d.EntryID == id {
			return d, true
		}
	}
	return EntryDimensions{}, false
}

// GroupLayout looks up the slot of a group by id.
func (s CanvasState) GroupLayout(id string) (GroupLayout, bool) {
	for _, g := range s.GroupLayouts {
		if g.GroupID == id {
			return g, true
		}
	}
	return GroupLayout{}, false
}

// EntriesInGroup returns the dimensions of a group's entries in stacking order.
func (s CanvasState) EntriesInGroup(id string) []EntryDimensions {
	var out []EntryDimensions
	for _, d := range s.Entries {
		if d.GroupID == id {
			out = append(out, d)
		}
	}
	return out
}
