package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) updateCheckinKey(key string) (tea.Model, tea.Cmd) {
	row := a.cursor[tabCheckin]
	if row >= len(a.rec.Categories) {
		return a, nil
	}
	cat := a.rec.Categories[row]

	switch key {
	case "enter":
		return a.startEdit(editSpent, cat.Key, amountValue(a.rec.Spending.Of(cat.Key)), "amount spent")
	case "D":
		a.apply(model.Patch{Spending: a.rec.Spending.With(cat.Key, decimal.Zero)}, "Cleared "+cat.Name)
	}
	return a, nil
}

func (a App) renderCheckinTab(cw int) string {
	t := theme.Active
	r := a.report
	innerW := components.CardInnerWidth(cw)

	metrics := []components.Metric{
		{Label: "Budgeted", Value: a.money(r.TotalBudgeted), Note: a.month.Label()},
		{Label: "Spent", Value: a.money(r.TotalSpent)},
		{Label: "Remaining", Value: a.money(r.TotalRemaining), Warn: r.TotalRemaining.IsNegative()},
		{Label: "Over budget", Value: fmt.Sprintf("%d", r.OverCount), Note: "categories", Warn: r.OverCount > 0},
	}

	const labelW = 22
	amountW := 32
	barW := max(innerW-2-labelW-1-1-5-2-amountW, 10)

	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var spend strings.Builder
	for i, line := range r.Lines {
		if a.edit.editing(editSpent, line.Key) {
			spend.WriteString(a.renderEditRow(truncStr(line.Name, labelW), labelW))
			spend.WriteString("\n")
			continue
		}

		marker := space.Render("  ")
		if i == a.cursor[tabCheckin] {
			marker = selStyle.Render("▸ ")
		}
		amounts := fmt.Sprintf("%s / %s", a.money(line.Spent), a.money(line.Budgeted))
		amountText := amountStyle.Render(fmt.Sprintf("%*s", amountW, amounts))
		if line.Over {
			amountText = overStyle.Render(fmt.Sprintf("%*s", amountW, amounts))
		}

		spend.WriteString(marker)
		spend.WriteString(components.UsageBar(line.Name, line.Spent, line.Budgeted, labelW, barW))
		spend.WriteString(space.Render("  "))
		spend.WriteString(amountText)
		spend.WriteString("\n")
	}
	spend.WriteString("\n")
	spend.WriteString(hint("[enter] record spent  [D] clear"))

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Spending", spend.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("History", a.renderHistory(innerW), cw))
	return b.String()
}

// renderHistory charts total spending for every saved month.
func (a App) renderHistory(innerW int) string {
	if len(a.history) == 0 {
		return hint("No saved months yet. Record spending to start a history.")
	}

	spent := make([]decimal.Decimal, len(a.history))
	labels := make([]string, len(a.history))
	for i, m := range a.history {
		spent[i] = m.spent
		labels[i] = m.key.Month().String()[:3]
	}

	limit, _ := a.report.TotalBudgeted.Float64()
	values := components.Floats(spent)

	var b strings.Builder
	b.WriteString(hint("trend "))
	b.WriteString(components.Sparkline(values, theme.Active.Accent))
	b.WriteString("\n\n")
	b.WriteString(components.BarChart(values, labels, limit, theme.Active.Accent, innerW, 8))
	return b.String()
}
