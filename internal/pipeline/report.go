// Package pipeline derives budgets, goal plans and spending reports from month records.
package pipeline

import (
	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// BuildReport runs a month record through income normalization, allocation,
// goal planning and spending tracking. Nothing here is cached; callers
// rebuild the report whenever the record changes.
func BuildReport(month model.MonthKey, rec model.MonthRecord) model.Report {
	days := month.Days()
	monthly := MonthlyIncome(rec.Income)
	total := TotalPercent(rec.Categories)
	budgets := ComputeBudgets(rec.Categories, monthly, days)
	lines := TrackSpending(budgets, rec.Spending)

	r := model.Report{
		Month:          month,
		Days:           days,
		Income:         rec.Income,
		MonthlyIncome:  monthly,
		TotalPercent:   total,
		Balanced:       AllocationBalanced(total),
		Budgets:        budgets,
		Goal:           PlanGoal(rec.Goal, budgets),
		Lines:          lines,
		TotalBudgeted:  decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}

	for _, l := range lines {
		r.TotalBudgeted = r.TotalBudgeted.Add(l.Budgeted)
		r.TotalSpent = r.TotalSpent.Add(l.Spent)
		if l.Over {
			r.OverCount++
		}
	}
	r.TotalRemaining = r.TotalBudgeted.Sub(r.TotalSpent)

	return r
}
