package components

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// UsageRatio returns spent/budget as a float for drawing. A zero budget
// with any spending counts as fully overspent.
func UsageRatio(spent, budget decimal.Decimal) float64 {
	if !budget.IsPositive() {
		if spent.IsPositive() {
			return 2
		}
		return 0
	}
	r, _ := spent.Div(budget).Float64()
	return max(r, 0)
}

// UsageBar renders a labeled bar showing how much of a budget is spent.
// The bar caps at full; the percentage keeps counting past 100%.
func UsageBar(label string, spent, budget decimal.Decimal, labelW, barWidth int) string {
	t := theme.Active
	ratio := UsageRatio(spent, budget)
	color := t.Spend(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(min(ratio, 1)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", ratio*100))
}

// AllocationBar renders how much of income the categories claim.
// Exactly 100% is green; under is yellow and over is red.
func AllocationBar(total decimal.Decimal, width int) string {
	t := theme.Active
	pct, _ := total.Float64()
	ratio := pct / 100

	color := t.Green
	switch {
	case total.GreaterThan(decimal.NewFromInt(100)):
		color = t.Red
	case total.LessThan(decimal.NewFromInt(100)):
		color = t.Yellow
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(min(max(ratio, 0), 1)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(total.Round(2).String()+"%")
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
