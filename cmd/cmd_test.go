package cmd

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
)

func TestParseChoice(t *testing.T) {
	f, err := parseChoice("weekly", model.Frequencies)
	require.NoError(t, err)
	assert.Equal(t, model.Weekly, f)

	it, err := parseChoice("SALARY", model.IncomeTypes)
	require.NoError(t, err)
	assert.Equal(t, model.IncomeSalary, it)

	_, err = parseChoice("daily", model.Frequencies)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly, weekly, yearly")
}

func TestMergeMonthsKeepsUnmentioned(t *testing.T) {
	income := func(n int64) *model.Income {
		in := model.DefaultIncome()
		in.Amount = decimal.NewFromInt(n)
		return &in
	}

	saved := store.NewMonths().
		Update("2024-01", model.Patch{Income: income(1000)}).
		Update("2024-02", model.Patch{Income: income(2000)})
	imported := store.NewMonths().
		Update("2024-02", model.Patch{Income: income(2500)}).
		Update("2024-03", model.Patch{Income: income(3000)})

	merged := mergeMonths(saved, imported)

	assert.Equal(t, []model.MonthKey{"2024-01", "2024-02", "2024-03"}, merged.Keys())
	assert.True(t, merged.Get("2024-01").Income.Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, merged.Get("2024-02").Income.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 2, saved.Len(), "merge must not modify the saved store")
}

func TestSelectedMonth(t *testing.T) {
	t.Cleanup(func() { flagMonth = "" })

	flagMonth = "2024-02"
	k, err := selectedMonth()
	require.NoError(t, err)
	assert.Equal(t, model.MonthKey("2024-02"), k)

	flagMonth = "2024-13"
	_, err = selectedMonth()
	require.ErrorIs(t, err, model.ErrInvalidMonthKey)

	flagMonth = ""
	k, err = selectedMonth()
	require.NoError(t, err)
	assert.Equal(t, model.CurrentMonth(), k)
}

func TestDefaultIncomeFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.IncomeType = "Salary"
	cfg.Defaults.Frequency = "Weekly"

	in := defaultIncome(cfg)
	assert.Equal(t, model.IncomeSalary, in.Type)
	assert.Equal(t, model.Weekly, in.Frequency)
	assert.True(t, in.Amount.IsZero())
}

func TestFormattedAmountsParseBack(t *testing.T) {
	for _, in := range []string{"2500", "1234.56", "1000000", "0.5"} {
		d := decimal.RequireFromString(in)
		shown := cli.FormatMoney(d, "")
		assert.Truef(t, pipeline.ParseAmount(shown).Equal(d), "%s printed as %q", in, shown)
	}
}
