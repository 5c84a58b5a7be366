package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Budget tab rows: the income fields come first, then one row per category.
const (
	budgetRowAmount = iota
	budgetRowFrequency
	budgetRowType
	budgetFixedRows
)

const categoryLabelW = 24

// cycle returns the option after cur, wrapping around. Unknown values start over.
func cycle[T comparable](opts []T, cur T) T {
	i := slices.Index(opts, cur)
	return opts[(i+1)%len(opts)]
}

// selectedCategory returns the category under the Budget cursor, if any.
func (a App) selectedCategory(row int) (model.Category, bool) {
	i := row - budgetFixedRows
	if i < 0 || i >= len(a.rec.Categories) {
		return model.Category{}, false
	}
	return a.rec.Categories[i], true
}

func (a App) updateBudgetKey(key string) (tea.Model, tea.Cmd) {
	row := a.cursor[tabBudget]
	cat, onCategory := a.selectedCategory(row)

	switch key {
	case "enter":
		switch row {
		case budgetRowAmount:
			return a.startEdit(editIncome, "", amountValue(a.rec.Income.Amount), "amount per period")
		case budgetRowFrequency:
			in := a.rec.Income
			in.Frequency = cycle(model.Frequencies, in.Frequency)
			a.apply(model.Patch{Income: &in}, "Frequency: "+string(in.Frequency))
			return a, nil
		case budgetRowType:
			in := a.rec.Income
			in.Type = cycle(model.IncomeTypes, in.Type)
			a.apply(model.Patch{Income: &in}, "Income type: "+string(in.Type))
			return a, nil
		}
		if onCategory {
			return a.startEdit(editPercent, cat.Key, cat.Percent.String(), "percent of income")
		}
	case "a":
		return a.startEdit(editNewCategory, "", "", "category name")
	case "r":
		if onCategory {
			return a.startEdit(editRename, cat.Key, cat.Name, "category name")
		}
	case "D":
		if onCategory {
			cats, err := a.rec.Categories.Without(cat.Key)
			if err != nil {
				a.setFlash(err.Error(), components.StatusError)
				return a, nil
			}
			a.apply(model.Patch{Categories: cats}, "Removed "+cat.Name)
		}
	}
	return a, nil
}

func (a App) renderBudgetTab(cw int) string {
	r := a.report
	innerW := components.CardInnerWidth(cw)

	daily := decimal.Zero
	for _, b := range r.Budgets {
		daily = daily.Add(b.Daily)
	}

	goalValue, goalNote := "none", "set one on the Goal tab"
	if r.Goal.Active {
		goalValue = a.money(r.Goal.PerMonth)
		goalNote = "per month for " + cli.FormatMonths(r.Goal.Months)
	}

	metrics := []components.Metric{
		{Label: "Monthly income", Value: a.money(r.MonthlyIncome), Note: "from " + strings.ToLower(string(r.Income.Frequency)) + " " + strings.ToLower(string(r.Income.Type))},
		{Label: "Allocated", Value: cli.FormatPercent(r.TotalPercent), Note: "of income", Warn: !r.Balanced},
		{Label: "Daily budget", Value: a.money(daily), Note: fmt.Sprintf("over %d days", r.Days)},
		{Label: "Savings goal", Value: goalValue, Note: goalNote, Warn: r.Goal.Tight},
	}

	// Income card
	var income strings.Builder
	incomeRows := []struct{ label, value string }{
		{"Amount", a.money(r.Income.Amount)},
		{"Frequency", string(r.Income.Frequency)},
		{"Type", string(r.Income.Type)},
	}
	for i, row := range incomeRows {
		if i == budgetRowAmount && a.edit.editing(editIncome, "") {
			income.WriteString(a.renderEditRow(row.label, 12))
		} else {
			income.WriteString(renderRow(i == a.cursor[tabBudget], row.label, row.value, 12, innerW))
		}
		income.WriteString("\n")
	}
	income.WriteString(hint("[enter] edit amount or cycle frequency/type"))

	// Allocation card
	var alloc strings.Builder
	alloc.WriteString(hint(fmt.Sprintf("  %-*s %8s %14s %12s", categoryLabelW, "Category", "Percent", "Monthly", "Daily")))
	alloc.WriteString("\n")
	for i, c := range a.rec.Categories {
		row := budgetFixedRows + i
		if a.edit.editing(editPercent, c.Key) || a.edit.editing(editRename, c.Key) {
			alloc.WriteString(a.renderEditRow(truncStr(c.Name, categoryLabelW), categoryLabelW))
			alloc.WriteString("\n")
			continue
		}
		b := r.Budgets[i]
		value := fmt.Sprintf("%8s %14s %12s", cli.FormatPercent(b.Percent), a.money(b.Monthly), a.money(b.Daily))
		alloc.WriteString(renderRow(row == a.cursor[tabBudget], truncStr(c.Name, categoryLabelW), value, categoryLabelW, innerW))
		alloc.WriteString("\n")
	}
	if a.edit.editing(editNewCategory, "") {
		alloc.WriteString(a.renderEditRow("New category", categoryLabelW))
		alloc.WriteString("\n")
	}
	alloc.WriteString("\n")
	alloc.WriteString(components.AllocationBar(r.TotalPercent, min(innerW-12, 60)))
	if !r.Balanced {
		alloc.WriteString("\n")
		alloc.WriteString(warnLine(fmt.Sprintf("Allocations total %s, not 100%%", cli.FormatPercent(r.TotalPercent))))
	}
	alloc.WriteString("\n")
	alloc.WriteString(hint("[enter] percent  [a] add  [r] rename  [D] delete"))

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Income", income.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Allocation", alloc.String(), cw))
	return b.String()
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
