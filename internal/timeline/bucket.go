package timeline

import "time"

// TimeUnit is a calendar granularity used for grid cells and labels.
type TimeUnit int

// Units from finest to coarsest.
const (
	UnitSecond TimeUnit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear

	unitCount
)

// MinCellWidth is the narrowest grid cell, in pixels, that is still legible.
const MinCellWidth = 17.0

var unitNames = [unitCount]string{"second", "minute", "hour", "day", "week", "month", "year"}

// Months are approximated as 30 days and years as 365 days.
var unitMillis = [unitCount]int64{
	UnitSecond: int64(time.Second / time.Millisecond),
	UnitMinute: int64(time.Minute / time.Millisecond),
	UnitHour:   int64(time.Hour / time.Millisecond),
	UnitDay:    24 * int64(time.Hour/time.Millisecond),
	UnitWeek:   7 * 24 * int64(time.Hour/time.Millisecond),
	UnitMonth:  30 * 24 * int64(time.Hour/time.Millisecond),
	UnitYear:   365 * 24 * int64(time.Hour/time.Millisecond),
}

// Year is its own successor so the coarsening walk always terminates.
var unitNext = [unitCount]TimeUnit{
	UnitSecond: UnitMinute,
	UnitMinute: UnitHour,
	UnitHour:   UnitDay,
	UnitDay:    UnitWeek,
	UnitWeek:   UnitMonth,
	UnitMonth:  UnitYear,
	UnitYear:   UnitYear,
}

// Units returns every unit from finest to coarsest.
func Units() []TimeUnit {
	return []TimeUnit{UnitSecond, UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear}
}

// ParseTimeUnit returns the unit with the given name.
func ParseTimeUnit(name string) (TimeUnit, error) {
	for i, n := range unitNames {
		if n == name {
			return TimeUnit(i), nil
		}
	}
	return 0, &UnknownTimeUnitError{Unit: -1, Name: name}
}

func (u TimeUnit) valid() bool {
	return u >= 0 && u < unitCount
}

// String returns the lowercase unit name.
func (u TimeUnit) String() string {
	if !u.valid() {
		return "unknown"
	}
	return unitNames[u]
}

// Millis returns the fixed length of one unit in milliseconds.
func (u TimeUnit) Millis() (int64, error) {
	if !u.valid() {
		return 0, &UnknownTimeUnitError{Unit: u}
	}
	return unitMillis[u], nil
}

// NextUnit returns the next coarser unit; year maps to itself.
func NextUnit(u TimeUnit) (TimeUnit, error) {
	if !u.valid() {
		return 0, &UnknownTimeUnitError{Unit: u}
	}
	return unitNext[u], nil
}

// StepMultipliers scales the cell size of each unit, e.g. 15 for quarter-hour
// minute cells. Zero entries count as 1.
type StepMultipliers [unitCount]float64

// DefaultSteps returns multipliers of 1 for every unit.
func DefaultSteps() StepMultipliers {
	var s StepMultipliers
	for i := range s {
		s[i] = 1
	}
	return s
}

// Step returns the multiplier for u, defaulting to 1.
func (s StepMultipliers) Step(u TimeUnit) float64 {
	if !u.valid() || s[u] <= 0 {
		return 1
	}
	return s[u]
}

// SelectBucketUnit returns the finest unit whose cell is wider than
// MinCellWidth when a span of spanMs is drawn across width pixels. It walks
// from seconds towards years and stops at year.
func SelectBucketUnit(spanMs int64, width float64, steps StepMultipliers) TimeUnit {
	unit := UnitSecond
	for {
		cells := float64(spanMs) / (float64(unitMillis[unit]) * steps.Step(unit))
		if width/cells > MinCellWidth || unit == UnitYear {
			return unit
		}
		unit = unitNext[unit]
	}
}

// maxBoundaries bounds BucketBoundaries for very fine units over wide windows.
const maxBoundaries = 1000

// BucketBoundaries returns the start of every cell of unit (scaled by step)
// that intersects the window. Cells are aligned to multiples of the cell
// length since the Unix epoch.
func BucketBoundaries(window TimeWindow, unit TimeUnit, steps StepMultipliers) ([]int64, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	ms, err := unit.Millis()
	if err != nil {
		return nil, err
	}
	cell := int64(float64(ms) * steps.Step(unit))
	if cell <= 0 {
		cell = ms
	}

	first := window.Start - mod(window.Start, cell)
	var out []int64
	for t := first; t < window.End && len(out) < maxBoundaries; t += cell {
		out = append(out, t)
	}
	return out, nil
}

func mod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
