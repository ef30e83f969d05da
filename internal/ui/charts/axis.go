// Package charts holds the bucket and axis helpers shared by the timeline
// panels.
package charts

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// TimeAxisLine writes each label at the column where its boundary falls when
// window is spread over width columns. A label that would touch the previous
// one is dropped, and boundaries outside the window are skipped.
func TimeAxisLine(width int, window timeline.TimeWindow, boundaries []int64, labels []string) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	if !window.Valid() {
		return string(line)
	}

	free := 0
	for i, b := range boundaries {
		if i >= len(labels) || labels[i] == "" {
			continue
		}
		x := int(math.Floor(timeline.TimeToX(window, float64(width), b)))
		if x < free || x >= width {
			continue
		}
		label := []rune(labels[i])
		n := min(len(label), width-x)
		copy(line[x:], label[:n])
		free = x + n + 1
	}
	return string(line)
}

// CountScale labels the rows of a column plot with entry counts, from the
// maximum on the top row down to zero on the bottom row.
type CountScale struct {
	labels map[int]string
	width  int
}

// NewCountScale builds a scale for rows plot rows topping out at maxVal.
func NewCountScale(maxVal int64, rows int) CountScale {
	s := CountScale{labels: make(map[int]string)}
	if rows <= 0 {
		return s
	}
	maxVal = max(maxVal, 0)

	s.labels[rows-1] = format.ShortNumber(0)
	if rows > 1 {
		s.labels[0] = format.ShortNumber(maxVal)
	}
	if rows >= 5 && maxVal >= 2 {
		s.labels[(rows-1)/2] = format.ShortNumber(maxVal / 2)
	}
	for _, label := range s.labels {
		s.width = max(s.width, lipgloss.Width(label))
	}
	return s
}

// Width returns the gutter width taken by Apply, including the separator.
func (s CountScale) Width() int {
	return s.width + 1
}

// Apply prefixes every row with its right-aligned label.
func (s CountScale) Apply(rows []string, style lipgloss.Style) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		label := s.labels[i]
		pad := strings.Repeat(" ", s.width-lipgloss.Width(label))
		if label != "" {
			label = style.Render(label)
		}
		out[i] = pad + label + " " + row
	}
	return out
}
