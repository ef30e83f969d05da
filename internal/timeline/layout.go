package timeline

import (
	"errors"
	"fmt"

	"github.com/kpumuk/lazytimeline/internal/mathutil"
)

// ErrInvalidCanvasWidth is returned when a layout is requested for a canvas
// that is not wider than zero pixels.
var ErrInvalidCanvasWidth = errors.New("invalid canvas width")

// ErrInvalidLineHeight is returned for a non-positive line height.
var ErrInvalidLineHeight = errors.New("invalid line height")

// LayoutConfig holds every layout default in one place. Resolve it once at
// the boundary; nothing below applies its own fallbacks.
type LayoutConfig struct {
	// LineHeight is the height of one stacking line in pixels.
	LineHeight float64
	// ItemHeightRatio derives the default entry height from LineHeight.
	ItemHeightRatio float64
	// StackItems is the default for groups that do not set Group.StackItems.
	StackItems bool
	// CalculateExtraSpace is the default for groups that do not set
	// Group.CalculateExtraSpace.
	CalculateExtraSpace bool
}

// DefaultLayoutConfig returns the stock layout settings.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		LineHeight:      30,
		ItemHeightRatio: 0.65,
		StackItems:      true,
	}
}

// Validate checks that the configuration can drive a layout.
func (c LayoutConfig) Validate() error {
	if c.LineHeight <= 0 {
		return fmt.Errorf("line height %v: %w", c.LineHeight, ErrInvalidLineHeight)
	}
	return nil
}

// EntryHeight is the height of entries that do not declare one.
func (c LayoutConfig) EntryHeight() float64 {
	ratio := c.ItemHeightRatio
	if ratio <= 0 {
		ratio = 1
	}
	return float64(mathutil.Round(c.LineHeight * ratio))
}

func (c LayoutConfig) groupStacked(g Group) bool {
	if g.StackItems != nil {
		return *g.StackItems
	}
	return c.StackItems
}

func (c LayoutConfig) groupExtraSpace(g Group) bool {
	if g.CalculateExtraSpace != nil {
		return *g.CalculateExtraSpace
	}
	return c.CalculateExtraSpace
}

// LiveInteraction describes an entry that is being dragged or resized. Its
// times and group replace the stored ones for the duration of the gesture.
type LiveInteraction struct {
	EntryID string
	GroupID string
	Start   int64
	End     int64
}

func (l *LiveInteraction) apply(entries []Entry) []Entry {
	if l == nil || l.EntryID == "" {
		return entries
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].ID != l.EntryID {
			continue
		}
		if l.GroupID != "" {
			out[i].GroupID = l.GroupID
		}
		if l.Start < l.End {
			out[i].Start, out[i].End = l.Start, l.End
		}
	}
	return out
}

// LayoutInput gathers the arguments of ComputeLayout.
type LayoutInput struct {
	Entries     []Entry
	Groups      []Group
	Canvas      TimeWindow
	CanvasWidth float64
	Config      LayoutConfig
	Live        *LiveInteraction
}

// ComputeLayout filters the entries visible on the canvas, computes their
// dimensions and stacks them. With no groups it returns an empty layout of
// zero height without looking at the entries.
func ComputeLayout(in LayoutInput) (CanvasState, error) {
	if err := in.Canvas.Validate(); err != nil {
		return CanvasState{}, err
	}
	if in.CanvasWidth <= 0 {
		return CanvasState{}, fmt.Errorf("canvas width %v: %w", in.CanvasWidth, ErrInvalidCanvasWidth)
	}
	if err := in.Config.Validate(); err != nil {
		return CanvasState{}, err
	}

	state := CanvasState{
		Canvas:      in.Canvas,
		CanvasWidth: in.CanvasWidth,
	}
	if len(in.Groups) == 0 {
		state.Entries = []EntryDimensions{}
		state.GroupLayouts = []GroupLayout{}
		state.GroupTops = []float64{}
		state.GroupHeights = []float64{}
		return state, nil
	}

	orders := GroupOrders(in.Groups)
	visible := VisibleEntries(in.Live.apply(in.Entries), orders, in.Canvas)

	dims := make([]EntryDimensions, len(visible))
	for i, e := range visible {
		index := orders[e.GroupID]
		stack := in.Config.groupStacked(in.Groups[index])
		dims[i] = entryDimensions(e, index, stack, in.Canvas, in.CanvasWidth, in.Config)
	}

	stacked := Stack(dims, in.Groups, in.Config)
	state.Entries = stacked.Entries
	state.GroupTops = stacked.GroupTops
	state.GroupHeights = stacked.GroupHeights
	state.TotalHeight = stacked.Height
	state.GroupLayouts = make([]GroupLayout, len(in.Groups))
	for i, g := range in.Groups {
		state.GroupLayouts[i] = GroupLayout{
			GroupID: g.ID,
			Top:     stacked.GroupTops[i],
			Height:  stacked.GroupHeights[i],
		}
	}
	return state, nil
}
