// Package format provides UI formatting helpers.
package format

import (
	"fmt"
	"time"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

// Duration formats elapsed seconds as "2m3s", "1h30m", etc. (max 2 segments).
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Span formats a millisecond span. Sub-second spans are shown in ms.
func Span(ms int64) string {
	if ms >= 0 && ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return Duration(ms / 1000)
}

// Timestamp formats epoch milliseconds as a UTC time.
func Timestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// Window formats a time window as "start → end (span)".
func Window(w timeline.TimeWindow) string {
	return fmt.Sprintf("%s → %s (%s)", Timestamp(w.Start), Timestamp(w.End), Span(w.Duration()))
}

// BucketLabel formats the start of a bucket cell for the axis. The layout
// depends on the bucket unit so labels stay short.
func BucketLabel(ms int64, unit timeline.TimeUnit) string {
	t := time.UnixMilli(ms).UTC()
	switch unit {
	case timeline.UnitSecond:
		return t.Format("15:04:05")
	case timeline.UnitMinute, timeline.UnitHour:
		if t.Hour() == 0 && t.Minute() == 0 {
			return t.Format("Jan 2")
		}
		return t.Format("15:04")
	case timeline.UnitDay, timeline.UnitWeek:
		return t.Format("Jan 2")
	case timeline.UnitMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("2006")
	}
}

// Number formats a number with K/M suffixes for readability.
func Number(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n int64) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1_000)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	default:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	}
}
