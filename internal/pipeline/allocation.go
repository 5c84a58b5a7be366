package pipeline

import (
	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// TotalPercent sums every category's share. Order doesn't matter.
func TotalPercent(cats model.Categories) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(c.Percent)
	}
	return total
}

// AllocationBalanced reports whether the shares add up to exactly 100%.
// An unbalanced allocation is a warning for the user, not an error.
func AllocationBalanced(total decimal.Decimal) bool {
	return total.Equal(hundredPercent)
}

// ComputeBudgets derives the monthly and daily amount for each category.
// The result has one entry per input category, in the same order.
func ComputeBudgets(cats model.Categories, monthlyIncome decimal.Decimal, daysInMonth int) []model.Budget {
	budgets := make([]model.Budget, 0, len(cats))
	days := decimal.NewFromInt(int64(daysInMonth))

	for _, c := range cats {
		monthly := monthlyIncome.Mul(c.Percent).Div(hundredPercent)
		daily := decimal.Zero
		if daysInMonth > 0 {
			daily = monthly.Div(days)
		}
		budgets = append(budgets, model.Budget{
			Key:     c.Key,
			Name:    c.Name,
			Percent: c.Percent,
			Monthly: monthly,
			Daily:   daily,
		})
	}
	return budgets
}

// BudgetFor returns the budget with the given key.
func BudgetFor(budgets []model.Budget, key string) (model.Budget, bool) {
	for _, b := range budgets {
		if b.Key == key {
			return b, true
		}
	}
	return model.Budget{}, false
}
