// Package theme defines the palettes of the tally dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards
	SurfaceHover  lipgloss.Color // selected row, active tab
	SurfaceBright lipgloss.Color // input fields
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color

	TextDim     lipgloss.Color // key hints
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Budget health, from comfortable to overspent.
	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Yellow      lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color

	Cyan lipgloss.Color // savings goal
}

// Ledger is the default: green ink on a dark page.
var Ledger = Theme{
	Name:          "ledger",
	Background:    lipgloss.Color("#0F1412"),
	Surface:       lipgloss.Color("#18201C"),
	SurfaceHover:  lipgloss.Color("#233029"),
	SurfaceBright: lipgloss.Color("#2E3D35"),
	Border:        lipgloss.Color("#3A4A41"),
	BorderAccent:  lipgloss.Color("#4FB286"),
	TextDim:       lipgloss.Color("#56695E"),
	TextMuted:     lipgloss.Color("#8FA398"),
	TextPrimary:   lipgloss.Color("#EEF4EF"),
	Accent:        lipgloss.Color("#4FB286"),
	AccentBright:  lipgloss.Color("#7FD6AC"),
	Green:         lipgloss.Color("#6BBF59"),
	GreenBright:   lipgloss.Color("#97DB84"),
	Yellow:        lipgloss.Color("#E3C04F"),
	Orange:        lipgloss.Color("#E58A3A"),
	Red:           lipgloss.Color("#E0554A"),
	Cyan:          lipgloss.Color("#5CC3D1"),
}

// Paper is a light palette for bright terminals.
var Paper = Theme{
	Name:          "paper",
	Background:    lipgloss.Color("#FAF7F0"),
	Surface:       lipgloss.Color("#F0EBDF"),
	SurfaceHover:  lipgloss.Color("#E4DDCC"),
	SurfaceBright: lipgloss.Color("#D9D0BA"),
	Border:        lipgloss.Color("#C7BDA5"),
	BorderAccent:  lipgloss.Color("#2F7D6D"),
	TextDim:       lipgloss.Color("#A0977F"),
	TextMuted:     lipgloss.Color("#6E6652"),
	TextPrimary:   lipgloss.Color("#24211A"),
	Accent:        lipgloss.Color("#2F7D6D"),
	AccentBright:  lipgloss.Color("#1F5E52"),
	Green:         lipgloss.Color("#4E8A2E"),
	GreenBright:   lipgloss.Color("#3A6E1E"),
	Yellow:        lipgloss.Color("#A88300"),
	Orange:        lipgloss.Color("#C0621B"),
	Red:           lipgloss.Color("#B83A2E"),
	Cyan:          lipgloss.Color("#1F7A8C"),
}

// Terminal sticks to the 16 ANSI colors so it follows the terminal's own palette.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("2"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("2"),
	AccentBright:  lipgloss.Color("10"),
	Green:         lipgloss.Color("2"),
	GreenBright:   lipgloss.Color("10"),
	Yellow:        lipgloss.Color("11"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Cyan:          lipgloss.Color("6"),
}

// All lists the palettes in menu order.
var All = []Theme{Ledger, Paper, Terminal}

// Active is the palette every view renders with.
var Active = Ledger

// ByName returns the named palette, or Ledger.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Ledger
}

// SetActive switches the palette.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists palette names in menu order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Valid reports whether name is a known palette.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Spend picks the color for a budget usage ratio: green while comfortable,
// yellow then orange as it fills, red once overspent.
func (t Theme) Spend(ratio float64) lipgloss.Color {
	switch {
	case ratio > 1:
		return t.Red
	case ratio >= 0.9:
		return t.Orange
	case ratio >= 0.7:
		return t.Yellow
	default:
		return t.Green
	}
}
