package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/model"
)

const legacyExport = `{
  "2024-01": {
    "income": {"amount": "3000", "type": "Salary", "frequency": "Monthly"},
    "categories": {
      "savings": {"name": "Savings & Investments", "percent": 40},
      "food": {"name": "Food & Drinks", "percent": "35"},
      "others": {"name": "Others", "percent": 25}
    },
    "goal": {"target": "1200", "months": "6"},
    "spending": {"food": "310.5", "others": 12}
  }
}`

func TestImportLegacyKeepsCategoryOrder(t *testing.T) {
	m, err := ImportLegacy(strings.NewReader(legacyExport))
	require.NoError(t, err)

	rec := m.Get("2024-01")
	assert.Equal(t, []string{"savings", "food", "others"}, rec.Categories.Keys())
	food, ok := rec.Categories.Lookup("food")
	require.True(t, ok)
	assert.True(t, food.Percent.Equal(dec("35")))
	assert.Equal(t, model.IncomeSalary, rec.Income.Type)
	assert.True(t, rec.Income.Amount.Equal(dec("3000")))
	assert.True(t, rec.Goal.Equal(model.Goal{Target: dec("1200"), Months: 6}))
	assert.True(t, rec.Spending.Of("food").Equal(dec("310.5")))
	assert.True(t, rec.Spending.Of("others").Equal(dec("12")))
}

func TestImportLegacyStringAndWrapped(t *testing.T) {
	quoted, err := json.Marshal(legacyExport)
	require.NoError(t, err)

	fromString, err := ImportLegacy(strings.NewReader(string(quoted)))
	require.NoError(t, err)
	assert.Equal(t, []model.MonthKey{"2024-01"}, fromString.Keys())

	wrapped := `{"finance_store": ` + string(quoted) + `}`
	fromWrapper, err := ImportLegacy(strings.NewReader(wrapped))
	require.NoError(t, err)
	assert.True(t, fromString.Equal(fromWrapper))
}

func TestImportLegacyRejectsGarbage(t *testing.T) {
	_, err := ImportLegacy(strings.NewReader("[1,2,3]"))
	assert.Error(t, err)
}
