// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals and thousands separators.
// e.g., 1234.5 -> "₵1,234.50", -12 -> "-₵12.00"
func FormatMoney(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg(), symbol)
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return symbol + fixed
	}
	return symbol + FormatNumber(n) + "." + frac
}

// FormatSigned renders an amount with an explicit sign, for deltas.
func FormatSigned(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return FormatMoney(d, symbol)
	}
	return "+" + FormatMoney(d, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent renders a percentage without trailing zeros.
// e.g., 30 -> "30%", 12.50 -> "12.5%"
func FormatPercent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

// FormatMonths renders a month count, e.g. "1 month", "6 months".
func FormatMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
