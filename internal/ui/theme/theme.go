// Package theme holds the color palette and the styles derived from it.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Bars
	MetricsBarBg compat.CompleteAdaptiveColor
	MetricsText  compat.CompleteAdaptiveColor

	// Border colors
	Border      compat.AdaptiveColor
	BorderFocus compat.CompleteAdaptiveColor

	// Timeline
	EntryBg    compat.CompleteAdaptiveColor
	EntryAltBg compat.CompleteAdaptiveColor
	EntryFg    compat.AdaptiveColor
	SelectedFg compat.AdaptiveColor
	SelectedBg compat.AdaptiveColor
	Grid       compat.AdaptiveColor

	// Accent colors
	Success compat.AdaptiveColor
	Error   compat.AdaptiveColor
	Warning compat.AdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1971c2"), ANSI256: lipgloss.Color("26"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#74c0fc"), ANSI256: lipgloss.Color("117"), ANSI: lipgloss.Color("12")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Bars
	MetricsBarBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1c7ed6"), ANSI256: lipgloss.Color("33"), ANSI: lipgloss.Color("12")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4dabf7"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
	},
	MetricsText: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#374151"), // Gray-700
	},
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1971c2"), ANSI256: lipgloss.Color("26"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#74c0fc"), ANSI256: lipgloss.Color("117"), ANSI: lipgloss.Color("12")},
	},

	// Timeline
	EntryBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#a5d8ff"), ANSI256: lipgloss.Color("153"), ANSI: lipgloss.Color("6")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#1864ab"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
	},
	EntryAltBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#b2f2bb"), ANSI256: lipgloss.Color("157"), ANSI: lipgloss.Color("2")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#2b8a3e"), ANSI256: lipgloss.Color("28"), ANSI: lipgloss.Color("2")},
	},
	EntryFg: compat.AdaptiveColor{
		Light: lipgloss.Color("#212529"),
		Dark:  lipgloss.Color("#f8f9fa"),
	},
	SelectedFg: compat.AdaptiveColor{
		Light: lipgloss.Color("229"),
		Dark:  lipgloss.Color("229"),
	},
	SelectedBg: compat.AdaptiveColor{
		Light: lipgloss.Color("57"),
		Dark:  lipgloss.Color("57"),
	},
	Grid: compat.AdaptiveColor{
		Light: lipgloss.Color("#dee2e6"), // Gray-3
		Dark:  lipgloss.Color("#343a40"), // Gray-8
	},

	// Accents
	Success: compat.AdaptiveColor{
		Light: lipgloss.Color("#16A34A"),
		Dark:  lipgloss.Color("#22C55E"),
	},
	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#FF0000"),
		Dark:  lipgloss.Color("#FF0000"),
	},
	Warning: compat.AdaptiveColor{
		Light: lipgloss.Color("#e67700"),
		Dark:  lipgloss.Color("#fcc419"),
	},
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Metrics bar
	MetricsBar   lipgloss.Style
	MetricsFill  lipgloss.Style
	MetricsLabel lipgloss.Style
	MetricsValue lipgloss.Style
	MetricsError lipgloss.Style

	// Navbar
	NavBar   lipgloss.Style
	NavBrand lipgloss.Style
	NavItem  lipgloss.Style
	NavKey   lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Timeline
	Axis       lipgloss.Style
	Gutter     lipgloss.Style
	GroupTitle lipgloss.Style
	Grid       lipgloss.Style
	Entry      lipgloss.Style
	EntryAlt   lipgloss.Style
	Selected   lipgloss.Style

	// Scrollbar
	ScrollTrack lipgloss.Style
	ScrollBand  lipgloss.Style
	ScrollThumb lipgloss.Style

	// Charts
	ChartAxis lipgloss.Style
	ChartBar  lipgloss.Style

	// JSON inspector
	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style

	// Layout helpers
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		// Metrics bar
		MetricsBar: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg),

		MetricsFill: lipgloss.NewStyle().
			Background(t.MetricsBarBg),

		MetricsLabel: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg),

		MetricsValue: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg).
			Bold(true),

		MetricsError: lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.MetricsBarBg).
			Bold(true),

		// Navbar
		NavBar: lipgloss.NewStyle(),

		NavBrand: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Timeline
		Axis: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Gutter: lipgloss.NewStyle(),

		GroupTitle: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		Grid: lipgloss.NewStyle().
			Foreground(t.Grid),

		Entry: lipgloss.NewStyle().
			Foreground(t.EntryFg).
			Background(t.EntryBg),

		EntryAlt: lipgloss.NewStyle().
			Foreground(t.EntryFg).
			Background(t.EntryAltBg),

		Selected: lipgloss.NewStyle().
			Foreground(t.SelectedFg).
			Background(t.SelectedBg).
			Bold(true),

		// Scrollbar
		ScrollTrack: lipgloss.NewStyle().
			Foreground(t.Border),

		ScrollBand: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ScrollThumb: lipgloss.NewStyle().
			Foreground(t.Primary),

		// Charts
		ChartAxis: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ChartBar: lipgloss.NewStyle().
			Foreground(t.Primary),

		// JSON inspector
		JSONKey: lipgloss.NewStyle().
			Foreground(t.Primary),

		JSONString: lipgloss.NewStyle().
			Foreground(t.Success),

		JSONNumber: lipgloss.NewStyle().
			Foreground(t.Warning),

		JSONBool: lipgloss.NewStyle().
			Foreground(t.Warning),

		JSONNull: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		JSONPunctuation: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Layout helpers
		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
