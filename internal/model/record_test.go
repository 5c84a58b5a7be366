package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, 6)

	want := []struct {
		key, name string
		pct       int64
	}{
		{"food", "Food & Drinks", 30},
		{"bills", "Bills & Subscriptions", 20},
		{"lifestyle", "Clothing & Lifestyle", 10},
		{"savings", "Savings & Investments", 25},
		{"misc", "Misc / Emergency", 10},
		{"others", "Others", 5},
	}
	for i, w := range want {
		assert.Equal(t, w.key, cats[i].Key)
		assert.Equal(t, w.name, cats[i].Name)
		assert.True(t, decimal.NewFromInt(w.pct).Equal(cats[i].Percent), w.key)
	}
}

func TestCategoriesEditsReturnCopies(t *testing.T) {
	orig := DefaultCategories()

	changed, err := orig.WithPercent("food", decimal.NewFromInt(40))
	require.NoError(t, err)
	food, _ := orig.Lookup("food")
	assert.True(t, food.Percent.Equal(decimal.NewFromInt(30)), "original untouched")
	food, _ = changed.Lookup("food")
	assert.True(t, food.Percent.Equal(decimal.NewFromInt(40)))

	_, err = orig.WithPercent("nope", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrUnknownCategory)

	added := orig.With(Category{Key: "pets", Name: "Pets", Percent: decimal.NewFromInt(3)})
	assert.Len(t, orig, 6)
	assert.Equal(t, "pets", added[len(added)-1].Key)

	removed, err := added.Without("bills")
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "lifestyle", "savings", "misc", "others", "pets"}, removed.Keys())
	assert.Len(t, added, 7)
}

func TestApplyPatchIsShallow(t *testing.T) {
	rec := NewRecord()
	rec.Spending = Spending{"food": decimal.NewFromInt(12)}

	income := Income{Amount: decimal.NewFromInt(900), Type: IncomeSalary, Frequency: Weekly}
	out := rec.Apply(Patch{Income: &income})

	assert.True(t, out.Income.Equal(income))
	assert.True(t, out.Categories.Equal(rec.Categories))
	assert.True(t, out.Spending.Equal(rec.Spending))
	assert.True(t, rec.Income.Equal(DefaultIncome()), "receiver untouched")

	only := Categories{{Key: "all", Name: "Everything", Percent: decimal.NewFromInt(100)}}
	out = out.Apply(Patch{Categories: only})
	assert.Equal(t, []string{"all"}, out.Categories.Keys(), "categories are replaced wholesale")

	out = out.Apply(Patch{Spending: Spending{}})
	assert.Empty(t, out.Spending)
	assert.True(t, out.Income.Equal(income))
}

func TestCarryForwardResetsSpending(t *testing.T) {
	rec := NewRecord()
	rec.Income.Amount = decimal.NewFromInt(1500)
	rec.Goal = Goal{Target: decimal.NewFromInt(600), Months: 6}
	rec.Spending = Spending{"food": decimal.NewFromInt(80)}

	next := rec.CarryForward()
	assert.True(t, next.Income.Equal(rec.Income))
	assert.True(t, next.Goal.Equal(rec.Goal))
	assert.True(t, next.Categories.Equal(rec.Categories))
	assert.Empty(t, next.Spending)
	assert.NotEmpty(t, rec.Spending)

	next.Categories[0].Name = "changed"
	assert.Equal(t, "Food & Drinks", rec.Categories[0].Name, "no aliasing")
}

func TestGoalIsEmpty(t *testing.T) {
	assert.True(t, Goal{}.IsEmpty())
	assert.False(t, Goal{Months: 3}.IsEmpty())
	assert.False(t, Goal{Target: decimal.NewFromInt(1)}.IsEmpty())
}

func TestNewCategoryKey(t *testing.T) {
	cats := DefaultCategories()

	assert.Equal(t, "pets", cats.NewCategoryKey("Pets"))
	assert.Equal(t, "eating-out", cats.NewCategoryKey("  Eating  Out! "))
	assert.Equal(t, "food-2", cats.NewCategoryKey("Food"))
	assert.Equal(t, "category", cats.NewCategoryKey("!!"))

	cats = cats.With(Category{Key: "food-2", Name: "Food again"})
	assert.Equal(t, "food-3", cats.NewCategoryKey("food"))
}
