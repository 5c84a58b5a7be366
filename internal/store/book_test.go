package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/model"
)

type stubPersister struct {
	loaded  Months
	loadErr error
	saveErr error
	saves   int
	saved   Months
}

func (s *stubPersister) Load(context.Context) (Months, error) {
	return s.loaded, s.loadErr
}

func (s *stubPersister) Save(_ context.Context, m Months) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = m
	return nil
}

func (s *stubPersister) Close() error { return nil }

func TestOpenLoadFailureStartsEmpty(t *testing.T) {
	p := &stubPersister{loadErr: errors.New("corrupt")}
	b := Open(context.Background(), p, nil)

	assert.Equal(t, 0, b.Months().Len())
	assert.True(t, b.Month("2024-01").Equal(model.NewRecord()))
}

func TestBookUpdateSavesWholeStore(t *testing.T) {
	p := &stubPersister{loaded: NewMonths()}
	b := Open(context.Background(), p, nil)

	goal := model.Goal{Target: dec("600"), Months: 3}
	_, err := b.Update(context.Background(), "2024-01", model.Patch{Goal: &goal})
	require.NoError(t, err)
	_, err = b.Update(context.Background(), "2024-02", model.Patch{Spending: model.Spending{"food": dec("4")}})
	require.NoError(t, err)

	assert.Equal(t, 2, p.saves)
	assert.Equal(t, []model.MonthKey{"2024-01", "2024-02"}, p.saved.Keys())
	assert.True(t, p.saved.Get("2024-02").Goal.Equal(goal))
}

func TestBookUpdateKeepsChangeWhenSaveFails(t *testing.T) {
	p := &stubPersister{loaded: NewMonths(), saveErr: errors.New("disk full")}
	b := Open(context.Background(), p, nil)

	rec, err := b.Update(context.Background(), "2024-01", model.Patch{Spending: model.Spending{"food": dec("7")}})
	require.Error(t, err)
	assert.True(t, rec.Spending.Of("food").Equal(dec("7")))
	assert.True(t, b.Months().Has("2024-01"))
}

func TestBookDelete(t *testing.T) {
	p := &stubPersister{loaded: NewMonths().Update("2024-01", model.Patch{})}
	b := Open(context.Background(), p, nil)

	ok, err := b.Delete(context.Background(), "2024-05")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, p.saves)

	ok, err = b.Delete(context.Background(), "2024-01")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, p.saved.Len())
}

func TestOpenPersisterUnknownBackend(t *testing.T) {
	_, err := OpenPersister("csv", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestBookUpdateEmptyPatchIsNoop(t *testing.T) {
	p := &stubPersister{loaded: NewMonths()}
	b := Open(context.Background(), p, nil)

	rec, err := b.Update(context.Background(), "2024-01", model.Patch{})
	require.NoError(t, err)

	assert.True(t, rec.Equal(model.NewRecord()))
	assert.False(t, b.Months().Has("2024-01"), "an empty patch must not store the month")
	assert.Equal(t, 0, p.saves)
}

func TestBookDefaultIncomeSeedsEmptyStore(t *testing.T) {
	p := &stubPersister{loaded: NewMonths()}
	b := Open(context.Background(), p, nil)
	b.SetDefaultIncome(model.Income{Amount: dec("99"), Type: model.IncomeSalary, Frequency: model.Weekly})

	in := b.Month("2024-03").Income
	assert.Equal(t, model.IncomeSalary, in.Type)
	assert.Equal(t, model.Weekly, in.Frequency)
	assert.True(t, in.Amount.IsZero(), "the seed never carries an amount")
	assert.Equal(t, 0, b.Months().Len())

	goal := model.Goal{Target: dec("300"), Months: 3}
	rec, err := b.Update(context.Background(), "2024-03", model.Patch{Goal: &goal})
	require.NoError(t, err)
	assert.Equal(t, model.Weekly, rec.Income.Frequency)
	assert.Equal(t, model.Weekly, p.saved.Get("2024-03").Income.Frequency)
}

func TestBookDefaultIncomeIgnoredOnceSaved(t *testing.T) {
	income := model.Income{Amount: dec("1200"), Type: model.IncomeJob, Frequency: model.Yearly}
	p := &stubPersister{loaded: NewMonths().Update("2024-01", model.Patch{Income: &income})}
	b := Open(context.Background(), p, nil)
	b.SetDefaultIncome(model.Income{Type: model.IncomeSalary, Frequency: model.Weekly})

	assert.True(t, b.Month("2024-02").Income.Equal(income))
}
