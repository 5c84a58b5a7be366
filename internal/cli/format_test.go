package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₵0.00"},
		{"9.5", "₵9.50"},
		{"900", "₵900.00"},
		{"1234.567", "₵1,234.57"},
		{"1000000", "₵1,000,000.00"},
		{"-12", "-₵12.00"},
		{"-1500.1", "-₵1,500.10"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in), "₵"), "FormatMoney(%s)", tt.in)
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+$5.00", FormatSigned(decimal.NewFromInt(5), "$"))
	assert.Equal(t, "+$0.00", FormatSigned(decimal.Zero, "$"))
	assert.Equal(t, "-$1,205.00", FormatSigned(decimal.NewFromInt(-1205), "$"))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4321, "-4,321"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, FormatNumber(tt.in), "FormatNumber(%d)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"30", "30%"},
		{"12.50", "12.5%"},
		{"33.3333", "33.33%"},
		{"120", "120%"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, FormatPercent(decimal.RequireFromString(tt.in)), "FormatPercent(%s)", tt.in)
	}
}

func TestFormatMonths(t *testing.T) {
	assert.Equal(t, "1 month", FormatMonths(1))
	assert.Equal(t, "6 months", FormatMonths(6))
}
