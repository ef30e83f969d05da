// Package devtools records diagnostics that cannot be printed while the
// terminal UI owns the screen: Redis commands issued by the store and canvas
// recomputations performed by the timeline view.
package devtools

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

const defaultCapacity = 500

// EntryKind describes the type of a tracked entry.
type EntryKind int

const (
	// EntryCommand represents a single Redis command.
	EntryCommand EntryKind = iota
	// EntryPipelineBegin marks the start of a pipeline execution.
	EntryPipelineBegin
	// EntryPipelineExec marks the execution of a pipeline.
	EntryPipelineExec
	// EntryHorizontalRecompute marks a recentred time canvas and its relayout.
	EntryHorizontalRecompute
	// EntryVerticalRecompute marks a recentred row band.
	EntryVerticalRecompute

	kindCount
)

var kindLabels = [kindCount]string{
	EntryCommand:             "redis",
	EntryPipelineBegin:       "multi",
	EntryPipelineExec:        "exec",
	EntryHorizontalRecompute: "canvas-x",
	EntryVerticalRecompute:   "canvas-y",
}

// String returns a short label for the kind.
func (k EntryKind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindLabels[k]
}

// Entry is what happened: a command line or a recompute detail, and how long
// it took. Pipeline markers leave Command empty.
type Entry struct {
	Kind     EntryKind
	Command  string
	Duration time.Duration
}

// LogEntry is an Entry stamped with its sequence number, wall time and the
// component that caused it.
type LogEntry struct {
	Seq    uint64
	Time   time.Time
	Origin string
	Entry  Entry
}

// Tracker keeps the newest entries in a fixed ring and counts every entry by
// kind, evicted ones included. A nil Tracker records nothing. It is safe for
// concurrent use; store commands run inside bubbletea commands off the UI
// goroutine.
type Tracker struct {
	mu     sync.RWMutex
	ring   []LogEntry
	next   int
	filled bool
	seq    uint64
	counts [kindCount]uint64
}

// NewTracker creates a tracker holding the last 500 entries.
func NewTracker() *Tracker {
	return newTracker(defaultCapacity)
}

func newTracker(capacity int) *Tracker {
	return &Tracker{ring: make([]LogEntry, max(capacity, 0))}
}

// AppendLog stores entry, assigning its sequence number.
func (t *Tracker) AppendLog(entry LogEntry) {
	if t == nil || len(t.ring) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	entry.Seq = t.seq
	t.seq++
	if k := entry.Entry.Kind; k >= 0 && k < kindCount {
		t.counts[k]++
	}
	t.ring[t.next] = entry
	t.next = (t.next + 1) % len(t.ring)
	if t.next == 0 {
		t.filled = true
	}
}

// LogEntries returns the retained entries, oldest first.
func (t *Tracker) LogEntries() []LogEntry {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.filled {
		if t.next == 0 {
			return nil
		}
		return append([]LogEntry(nil), t.ring[:t.next]...)
	}
	out := make([]LogEntry, 0, len(t.ring))
	out = append(out, t.ring[t.next:]...)
	return append(out, t.ring[:t.next]...)
}

// Count returns how many entries of kind were recorded.
func (t *Tracker) Count(kind EntryKind) uint64 {
	if t == nil || kind < 0 || kind >= kindCount {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[kind]
}

// RecordRecompute logs a canvas recomputation.
func (t *Tracker) RecordRecompute(ctx context.Context, kind EntryKind, detail string, duration time.Duration) {
	t.record(ctx, Entry{Kind: kind, Command: detail, Duration: duration})
}

func (t *Tracker) record(ctx context.Context, entry Entry) {
	if t == nil {
		return
	}
	t.AppendLog(LogEntry{Time: time.Now(), Origin: originOf(ctx), Entry: entry})
}

type originKey struct{}

// WithOrigin labels everything recorded under ctx with origin.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, originKey{}, origin)
}

// originOf prefers the context label, then the nearest caller in one of the
// origin layers.
func originOf(ctx context.Context) string {
	if ctx != nil {
		if origin, _ := ctx.Value(originKey{}).(string); origin != "" {
			return origin
		}
	}
	if origin := callerOrigin(); origin != "" {
		return origin
	}
	return "unknown"
}

// originLayers are searched in order; a UI caller beats a store caller
// further down the stack.
var originLayers = []string{"/internal/ui", "/internal/store"}

func callerOrigin() string {
	pcs := make([]uintptr, 32)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(3, pcs)])
	found := make([]string, len(originLayers))
	for {
		frame, more := frames.Next()
		for i, layer := range originLayers {
			if found[i] == "" && inLayer(frame.Function, layer) {
				found[i] = frame.Function
			}
		}
		if found[0] != "" || !more {
			break
		}
	}
	for _, fn := range found {
		if fn != "" {
			return funcLabel(fn)
		}
	}
	return ""
}

func inLayer(fn, layer string) bool {
	return strings.Contains(fn, layer+"/") || strings.Contains(fn, layer+".")
}

// funcLabel shortens a runtime function name to package.Type.Method.
func funcLabel(fn string) string {
	fn = fn[strings.LastIndexByte(fn, '/')+1:]
	parts := strings.Split(strings.NewReplacer("(*", "", ")", "").Replace(fn), ".")
	for len(parts) > 1 && isClosure(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// isClosure matches the func1 and 2 segments the compiler appends to
// closure names.
func isClosure(part string) bool {
	part = strings.TrimPrefix(part, "func")
	if part == "" {
		return false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatDuration renders a compact duration string.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dus", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
