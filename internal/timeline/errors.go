package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeRange matches *InvalidTimeRangeError.
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrUnknownTimeUnit matches *UnknownTimeUnitError.
	ErrUnknownTimeUnit = errors.New("unknown time unit")
)

// InvalidTimeRangeError is returned for a window whose start is not before its end.
type InvalidTimeRangeError struct {
	Start int64
	End   int64
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("invalid time range: start %d is not before end %d", e.Start, e.End)
}

// Is makes errors.Is(err, ErrInvalidTimeRange) hold.
func (e *InvalidTimeRangeError) Is(target error) bool {
	return target == ErrInvalidTimeRange
}

// UnknownTimeUnitError is returned for a TimeUnit outside the unit table.
type UnknownTimeUnitError struct {
	Unit TimeUnit
	Name string
}

func (e *UnknownTimeUnitError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown time unit %q", e.Name)
	}
	return fmt.Sprintf("unknown time unit %d", int(e.Unit))
}

// Is makes errors.Is(err, ErrUnknownTimeUnit) hold.
func (e *UnknownTimeUnitError) Is(target error) bool {
	return target == ErrUnknownTimeUnit
}
