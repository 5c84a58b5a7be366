package store

import (
	"context"
	"fmt"

	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
)

// Book owns the in-memory store for one editing session and writes it back
// through a Persister after every change. It assumes a single editor.
type Book struct {
	months        Months
	p             Persister
	log           *log.Logger
	defaultIncome *model.Income
}

// Open loads the store once. Unreadable data is logged and treated as an
// empty store so the user can keep working.
func Open(ctx context.Context, p Persister, logger *log.Logger) *Book {
	if logger == nil {
		logger = log.Discard()
	}
	b := &Book{p: p, log: logger.WithComponent("store")}
	b.months = b.load(ctx)
	return b
}

func (b *Book) load(ctx context.Context) Months {
	m, err := b.p.Load(ctx)
	if err != nil {
		b.log.Warn("could not load saved budgets, starting empty", "error", err)
		return b.seeded(NewMonths())
	}
	b.log.Debug("loaded budgets", "months", m.Len())
	return b.seeded(m)
}

// SetDefaultIncome sets the income type and frequency a month starts with
// while nothing is saved yet. The amount is ignored.
func (b *Book) SetDefaultIncome(in model.Income) {
	in.Amount = model.DefaultIncome().Amount
	b.defaultIncome = &in
	b.months = b.seeded(b.months)
}

func (b *Book) seeded(m Months) Months {
	if b.defaultIncome == nil {
		return m
	}
	return m.WithDefaultIncome(*b.defaultIncome)
}

// Reload re-reads the persisted store, picking up edits from other processes.
func (b *Book) Reload(ctx context.Context) {
	b.months = b.load(ctx)
}

// Months returns the current store value.
func (b *Book) Months() Months { return b.months }

// Keys returns stored months, oldest first.
func (b *Book) Keys() []model.MonthKey { return b.months.Keys() }

// Month returns the effective record for key. See Months.Get.
func (b *Book) Month(key model.MonthKey) model.MonthRecord {
	return b.months.Get(key)
}

// Update applies p to key and saves. The in-memory change is kept even if
// the save fails; the error tells the caller the edit isn't durable yet.
// An empty patch neither stores the month nor saves.
func (b *Book) Update(ctx context.Context, key model.MonthKey, p model.Patch) (model.MonthRecord, error) {
	if p.IsEmpty() {
		return b.months.Get(key), nil
	}
	b.months = b.months.Update(key, p)
	rec := b.months.Get(key)
	if err := b.save(ctx); err != nil {
		return rec, err
	}
	b.log.Debug("updated month", "month", key)
	return rec, nil
}

// Delete removes key and saves. Deleting an unsaved month is a no-op.
func (b *Book) Delete(ctx context.Context, key model.MonthKey) (bool, error) {
	if !b.months.Has(key) {
		return false, nil
	}
	b.months = b.months.Delete(key)
	return true, b.save(ctx)
}

// Replace swaps in a whole store, e.g. after an import, and saves it.
func (b *Book) Replace(ctx context.Context, m Months) error {
	b.months = b.seeded(m)
	return b.save(ctx)
}

func (b *Book) save(ctx context.Context) error {
	if err := b.p.Save(ctx, b.months); err != nil {
		b.log.Error("saving budgets failed", "error", err)
		return fmt.Errorf("saving budgets: %w", err)
	}
	return nil
}

// Close releases the persister.
func (b *Book) Close() error {
	return b.p.Close()
}
