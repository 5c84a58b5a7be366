package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	overStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// SeparatorRow, used as a table row, draws a horizontal rule.
var SeparatorRow = []string{"---"}

// Table represents a bordered text table for CLI output.
// The first column is left-aligned; the rest are right-aligned amounts.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Flagged marks rows (by index) to draw in the warning color.
	Flagged map[int]bool
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	// Widths use display cells so currency symbols line up.
	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for r, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow[0] {
			rule("├", "┼", "┤")
			continue
		}

		style := valueStyle
		if t.Flagged[r] {
			style = overStyle
		}

		b.WriteString(dimStyle.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderUsageBar renders how much of a budget has been spent.
// The bar turns orange past 80% and red once overspent.
func RenderUsageBar(spent, budget decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	if !budget.IsPositive() {
		if spent.IsPositive() {
			return overStyle.Render(strings.Repeat("█", width))
		}
		return dimStyle.Render(strings.Repeat("░", width))
	}

	ratio := spent.Div(budget)
	clamped := decimal.Min(decimal.Max(ratio, decimal.Zero), decimal.NewFromInt(1))
	filled := int(clamped.Mul(decimal.NewFromInt(int64(width))).IntPart())

	style := goodStyle
	switch {
	case ratio.GreaterThan(decimal.NewFromInt(1)):
		style = overStyle
	case ratio.GreaterThan(decimal.RequireFromString("0.8")):
		style = warnStyle
	}

	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderShareBar renders a category's percent of income as a bar.
func RenderShareBar(percent decimal.Decimal, maxWidth int) string {
	n := int(percent.Mul(decimal.NewFromInt(int64(maxWidth))).Div(decimal.NewFromInt(100)).IntPart())
	n = min(max(n, 0), maxWidth)
	return mutedStyle.Render(strings.Repeat("█", n))
}

// RenderWarning renders a one-line advisory.
func RenderWarning(msg string) string {
	return warnStyle.Render("! " + msg)
}

// RenderOK renders a one-line confirmation.
func RenderOK(msg string) string {
	return goodStyle.Render(msg)
}
