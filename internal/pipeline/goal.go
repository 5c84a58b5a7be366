package pipeline

import (
	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// MonthlyContribution returns how much must be saved each month to reach g.
// ok is false when there is no active goal: either field empty, or a
// non-positive target or month count, which would otherwise divide by zero.
func MonthlyContribution(g model.Goal) (perMonth decimal.Decimal, ok bool) {
	if !g.Target.IsPositive() || g.Months <= 0 {
		return decimal.Zero, false
	}
	return g.Target.Div(decimal.NewFromInt(int64(g.Months))), true
}

// IsTight reports whether the goal needs more than the savings budget provides.
func IsTight(contribution, savingsBudget decimal.Decimal) bool {
	return contribution.GreaterThan(savingsBudget)
}

// PlanGoal compares g against the savings category in budgets.
// A missing savings category counts as a zero budget.
func PlanGoal(g model.Goal, budgets []model.Budget) model.GoalPlan {
	plan := model.GoalPlan{Target: g.Target, Months: g.Months, SavingsBudget: decimal.Zero}
	if b, ok := BudgetFor(budgets, model.SavingsKey); ok {
		plan.SavingsBudget = b.Monthly
	}

	perMonth, ok := MonthlyContribution(g)
	if !ok {
		return plan
	}
	plan.Active = true
	plan.PerMonth = perMonth
	plan.Tight = IsTight(perMonth, plan.SavingsBudget)
	return plan
}
