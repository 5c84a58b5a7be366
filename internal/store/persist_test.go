package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
)

func sampleMonths() Months {
	income := model.Income{Amount: dec("3000.50"), Type: model.IncomeSalary, Frequency: model.Weekly}
	goal := model.Goal{Target: dec("1500"), Months: 5}
	cats := model.DefaultCategories().With(model.Category{Key: "pets", Name: "Pets", Percent: dec("2.5")})

	return NewMonths().
		Update("2024-01", model.Patch{
			Income:     &income,
			Categories: cats,
			Goal:       &goal,
			Spending:   model.Spending{"food": dec("120.25"), "pets": dec("8")},
		}).
		Update("2024-02", model.Patch{})
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)

	empty, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	want := sampleMonths()
	require.NoError(t, db.Save(ctx, want))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, []string{"food", "bills", "lifestyle", "savings", "misc", "others", "pets"},
		got.Get("2024-01").Categories.Keys())

	assert.Equal(t, 2, got.Len())

	// Saving a smaller store drops months that are gone.
	require.NoError(t, db.Save(ctx, got.Delete("2024-02")))
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.MonthKey{"2024-01"}, got.Keys())
}

func TestJSONFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tally.json")
	f := NewJSONFile(path)

	empty, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	want := sampleMonths()
	require.NoError(t, f.Save(ctx, want))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	got, err := NewJSONFile(path).Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, "pets", got.Get("2024-01").Categories[6].Key)
}

func TestJSONFileWritesNumbers(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, EncodeJSON(&sb, sampleMonths()))

	out := sb.String()
	assert.Contains(t, out, `"amount": 3000.5`)
	assert.Contains(t, out, `"percent": 2.5`)
	assert.Contains(t, out, `"months": 5`)
}

func TestJSONFileCorruptIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	m, err := NewJSONFile(path).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, m.Len())

	b := Open(context.Background(), NewJSONFile(path), nil)
	assert.Equal(t, 0, b.Months().Len())
}

func TestDecodeJSONLenientNumbers(t *testing.T) {
	in := `{
		"2024-03": {
			"income": {"amount": "2500", "type": "Job", "frequency": "Yearly"},
			"categories": [{"key": "food", "name": "Food", "percent": "abc"}],
			"goal": {"target": "", "months": "4"},
			"spending": {"food": ""}
		},
		"not-a-month": {}
	}`
	m, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []model.MonthKey{"2024-03"}, m.Keys())

	rec := m.Get("2024-03")
	assert.True(t, rec.Income.Amount.Equal(dec("2500")))
	assert.Equal(t, model.Yearly, rec.Income.Frequency)
	assert.True(t, rec.Categories[0].Percent.IsZero())
	assert.True(t, rec.Goal.Target.IsZero())
	assert.Equal(t, 4, rec.Goal.Months)
	assert.True(t, rec.Spending.Of("food").IsZero())
}

func TestDecodeJSONDuplicateCategoryKeys(t *testing.T) {
	for name, cats := range map[string]string{
		"list":   `[{"key": "food", "name": "Food", "percent": 30}, {"key": "rent", "name": "Rent", "percent": 40}, {"key": "food", "name": "Groceries", "percent": 20}]`,
		"object": `{"food": {"name": "Food", "percent": 30}, "rent": {"name": "Rent", "percent": 40}, "food": {"name": "Groceries", "percent": 20}}`,
	} {
		t.Run(name, func(t *testing.T) {
			in := `{"2024-05": {"income": {"amount": 1000}, "categories": ` + cats + `}}`
			m, err := DecodeJSON(strings.NewReader(in))
			require.NoError(t, err)

			rec := m.Get("2024-05")
			assert.Equal(t, []string{"food", "rent"}, rec.Categories.Keys())
			assert.Equal(t, "Groceries", rec.Categories[0].Name)
			assert.True(t, pipeline.TotalPercent(rec.Categories).Equal(dec("60")))

			db, err := OpenSQLite(filepath.Join(t.TempDir(), "tally.db"))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			require.NoError(t, db.Save(context.Background(), m))
		})
	}
}

func TestDecodeJSONMonthsOutOfRange(t *testing.T) {
	in := `{"2024-05": {"goal": {"target": 1200, "months": "18446744073709551628"}}}`
	m, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)

	g := m.Get("2024-05").Goal
	assert.Equal(t, 0, g.Months)
	_, active := pipeline.MonthlyContribution(g)
	assert.False(t, active)
}
