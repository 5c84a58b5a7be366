package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

var (
	weeksPerMonth  = decimal.NewFromInt(4)
	monthsPerYear  = decimal.NewFromInt(12)
	hundredPercent = decimal.NewFromInt(100)
)

// ToMonthly converts an income amount received at frequency f into a monthly figure.
// Weekly income counts four weeks per month (not 52/12); stored budgets depend on it.
// Unknown frequencies are treated as monthly.
func ToMonthly(amount decimal.Decimal, f model.Frequency) decimal.Decimal {
	switch f {
	case model.Weekly:
		return amount.Mul(weeksPerMonth)
	case model.Yearly:
		return amount.Div(monthsPerYear)
	default:
		return amount
	}
}

// MonthlyIncome normalizes an Income record.
func MonthlyIncome(in model.Income) decimal.Decimal {
	return ToMonthly(in.Amount, in.Frequency)
}

// ParseAmount reads a user-entered number. Anything that isn't a finite
// number (blank, text, NaN, Inf) becomes zero so it can't poison the math
// downstream. Thousands separators are dropped; see NormalizeAmount.
func ParseAmount(s string) decimal.Decimal {
	s = NormalizeAmount(s)
	if s == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// ParseFloat accepts forms decimal doesn't, like hex floats.
		return decimal.NewFromFloat(f)
	}
	return d
}

// NormalizeAmount rewrites grouping and decimal commas into plain
// "1234.56" form. With a dot present, whichever separator comes last is the
// decimal point ("1,234.56", "1.234,56"). A lone comma is a decimal point
// unless exactly three digits follow it ("12,34" but "2,500").
func NormalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	commas := strings.Count(s, ",")
	if commas == 0 {
		return s
	}

	lastComma := strings.LastIndex(s, ",")
	if lastDot := strings.LastIndex(s, "."); lastDot >= 0 {
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	}

	if commas == 1 && !isThousandsGroup(s[lastComma+1:]) {
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ",", "")
}

func isThousandsGroup(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// maxCount bounds whole-number inputs so they convert to int on any platform.
var maxCount = decimal.NewFromInt(math.MaxInt32)

// ParseCount reads a whole number such as a goal's month count. Fractions
// are truncated; negative, invalid or out-of-range input reads as zero.
func ParseCount(s string) int {
	d := ParseAmount(s)
	if d.IsNegative() || d.GreaterThan(maxCount) {
		return 0
	}
	return int(d.IntPart())
}
