package charts

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placeholder fills a width by height block with msg centred in it. It stands
// in for a panel that has nothing to draw yet.
func Placeholder(width, height int, msg string) string {
	if height < 1 {
		return ""
	}
	if width <= 0 {
		return strings.Repeat("\n", height-1)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, ansi.Truncate(msg, width, ""))
}
