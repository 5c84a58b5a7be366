package pipeline

import (
	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// Remaining is what's left of a monthly budget after spending.
func Remaining(budgetMonthly, spent decimal.Decimal) decimal.Decimal {
	return budgetMonthly.Sub(spent)
}

// IsOverspent reports whether a remaining amount has gone negative.
func IsOverspent(remaining decimal.Decimal) bool {
	return remaining.IsNegative()
}

// TrackSpending builds one line per budget. Categories with nothing
// recorded count as zero spent; spending on keys with no budget is ignored.
func TrackSpending(budgets []model.Budget, spending model.Spending) []model.SpendLine {
	lines := make([]model.SpendLine, 0, len(budgets))
	for _, b := range budgets {
		spent := spending.Of(b.Key)
		remaining := Remaining(b.Monthly, spent)
		lines = append(lines, model.SpendLine{
			Key:       b.Key,
			Name:      b.Name,
			Budgeted:  b.Monthly,
			Spent:     spent,
			Remaining: remaining,
			Over:      IsOverspent(remaining),
		})
	}
	return lines
}
