// Package mathutil holds the rounding and clamping rules shared by the layout
// engine and the UI.
package mathutil

import (
	"cmp"
	"math"
)

// Clamp bounds val to [low, high]. low wins when the range is inverted.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Round rounds half-way values towards positive infinity, so Round(-2.5) is -2.
// This differs from math.Round, which rounds half away from zero.
func Round(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// ApproxEqual reports whether a and b differ by no more than epsilon.
func ApproxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
