// Package store loads timeline groups and entries for the visible part of the
// chart, from a YAML dataset or from Redis.
package store

import (
	"context"
	"slices"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

// Source provides groups and the entries of a time window.
type Source interface {
	// Groups returns every group in row order.
	Groups(ctx context.Context) ([]timeline.Group, error)
	// Entries returns the entries of the given groups that intersect window.
	Entries(ctx context.Context, window timeline.TimeWindow, groupIDs []string) ([]timeline.Entry, error)
	// Close releases the source.
	Close() error
}

// Bounder is implemented by sources that know the time range of their
// entries. ok is false when the source holds no entries.
type Bounder interface {
	Bounds(ctx context.Context) (w timeline.TimeWindow, ok bool, err error)
}

// Dataset is a complete set of groups and entries.
type Dataset struct {
	Groups  []timeline.Group
	Entries []timeline.Entry
}

// Window returns the smallest window that covers every entry. ok is false for
// an empty dataset.
func (d Dataset) Window() (timeline.TimeWindow, bool) {
	if len(d.Entries) == 0 {
		return timeline.TimeWindow{}, false
	}
	w := timeline.TimeWindow{Start: d.Entries[0].Start, End: d.Entries[0].End}
	for _, e := range d.Entries[1:] {
		w.Start = min(w.Start, e.Start)
		w.End = max(w.End, e.End)
	}
	if w.End <= w.Start {
		w.End = w.Start + 1
	}
	return w, true
}

// filterEntries keeps entries of the given groups intersecting window, in
// input order.
func filterEntries(entries []timeline.Entry, window timeline.TimeWindow, groupIDs []string) []timeline.Entry {
	out := make([]timeline.Entry, 0, len(entries))
	for _, e := range entries {
		if !slices.Contains(groupIDs, e.GroupID) {
			continue
		}
		if !window.Intersects(e.Start, e.End) {
			continue
		}
		out = append(out, e)
	}
	return out
}
