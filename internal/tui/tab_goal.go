package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	goalFieldTarget = iota
	goalFieldMonths
	goalFieldCount
)

func (a App) updateGoalKey(key string) (tea.Model, tea.Cmd) {
	g := a.rec.Goal
	switch key {
	case "enter":
		if a.cursor[tabGoal] == goalFieldTarget {
			return a.startEdit(editGoalTarget, "", amountValue(g.Target), "target amount")
		}
		months := ""
		if g.Months > 0 {
			months = fmt.Sprint(g.Months)
		}
		return a.startEdit(editGoalMonths, "", months, "number of months")
	case "D":
		a.apply(model.Patch{Goal: &model.Goal{}}, "Goal cleared")
	}
	return a, nil
}

func (a App) renderGoalTab(cw int) string {
	t := theme.Active
	g := a.report.Goal
	innerW := components.CardInnerWidth(cw)

	var form strings.Builder
	fields := []struct {
		target editTarget
		label  string
		value  string
	}{
		{editGoalTarget, "Target", a.money(a.rec.Goal.Target)},
		{editGoalMonths, "Months", fmt.Sprint(a.rec.Goal.Months)},
	}
	for i, f := range fields {
		if a.edit.editing(f.target, "") {
			form.WriteString(a.renderEditRow(f.label, 12))
		} else {
			form.WriteString(renderRow(i == a.cursor[tabGoal], f.label, f.value, 12, innerW))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(hint("[enter] edit  [D] clear goal"))

	var plan strings.Builder
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	good := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	if !g.Active {
		plan.WriteString(hint("Set a target and a number of months to plan a savings goal."))
	} else {
		plan.WriteString(label.Render("Save per month:   ") + value.Render(a.money(g.PerMonth)) + "\n")
		plan.WriteString(label.Render("Savings budget:   ") + value.Render(a.money(g.SavingsBudget)) + "\n")
		plan.WriteString(label.Render("Goal share:       ") + value.Render(shareOf(g)) + "\n\n")
		plan.WriteString(components.UsageBar("of savings budget", g.PerMonth, g.SavingsBudget, 18, max(innerW-30, 10)))
		plan.WriteString("\n\n")
		if g.Tight {
			plan.WriteString(warnLine("This goal needs more than your savings budget. Raise the savings share or extend the months."))
		} else {
			plan.WriteString(good.Render("✓ Your savings budget covers this goal."))
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Savings goal", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Plan", plan.String(), cw))
	return b.String()
}

// shareOf renders the goal's monthly amount as a share of the savings budget.
func shareOf(g model.GoalPlan) string {
	if !g.SavingsBudget.IsPositive() {
		return "no savings budget"
	}
	return cli.FormatPercent(g.PerMonth.Div(g.SavingsBudget).Shift(2))
}
