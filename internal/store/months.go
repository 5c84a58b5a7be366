// Package store keeps month records and persists them to SQLite or a JSON file.
package store

import (
	"maps"
	"slices"

	"github.com/theirongolddev/tally/internal/model"
)

// Months maps month keys to records. At most one record exists per month.
// Values are immutable from the outside: Update and Delete return new stores.
type Months struct {
	records map[model.MonthKey]model.MonthRecord
	seed    *model.MonthRecord
}

// NewMonths returns an empty store.
func NewMonths() Months {
	return Months{records: make(map[model.MonthKey]model.MonthRecord)}
}

// Len returns the number of stored months.
func (m Months) Len() int { return len(m.records) }

// Has reports whether key has a stored record.
func (m Months) Has(key model.MonthKey) bool {
	_, ok := m.records[key]
	return ok
}

// Keys returns stored month keys, oldest first.
func (m Months) Keys() []model.MonthKey {
	keys := slices.Collect(maps.Keys(m.records))
	slices.Sort(keys)
	return keys
}

// Latest returns the greatest stored key.
func (m Months) Latest() (model.MonthKey, bool) {
	var latest model.MonthKey
	for k := range m.records {
		if k > latest {
			latest = k
		}
	}
	return latest, latest != ""
}

// WithDefaultIncome returns a store whose first month starts from in
// instead of model.DefaultIncome. Stored months are unaffected.
func (m Months) WithDefaultIncome(in model.Income) Months {
	seed := model.NewRecord()
	seed.Income = in
	m.seed = &seed
	return m
}

// Stored returns the record saved for key, without carry-forward.
func (m Months) Stored(key model.MonthKey) (model.MonthRecord, bool) {
	rec, ok := m.records[key]
	if !ok {
		return model.MonthRecord{}, false
	}
	return rec.Clone(), true
}

// Get returns the effective record for key. A month that hasn't been saved
// inherits income, categories and goal from the latest stored month, with
// spending cleared. An empty store yields the defaults, or the record set
// by WithDefaultIncome. Get never adds an entry: a month is only stored
// once something in it is updated.
func (m Months) Get(key model.MonthKey) model.MonthRecord {
	if rec, ok := m.Stored(key); ok {
		return rec
	}
	latest, ok := m.Latest()
	if !ok {
		if m.seed != nil {
			return m.seed.Clone()
		}
		return model.NewRecord()
	}
	return m.records[latest].CarryForward()
}

// Update returns a store where key holds Get(key) with p applied.
func (m Months) Update(key model.MonthKey, p model.Patch) Months {
	next := m.clone()
	next.records[key] = m.Get(key).Apply(p)
	return next
}

// Delete returns a store without key.
func (m Months) Delete(key model.MonthKey) Months {
	next := m.clone()
	delete(next.records, key)
	return next
}

// Equal reports whether both stores hold the same months and records.
// Default income seeds are not compared.
func (m Months) Equal(o Months) bool {
	return maps.EqualFunc(m.records, o.records, func(a, b model.MonthRecord) bool {
		return a.Equal(b)
	})
}

func (m Months) clone() Months {
	next := Months{records: make(map[model.MonthKey]model.MonthRecord, len(m.records)+1), seed: m.seed}
	for k, v := range m.records {
		next.records[k] = v.Clone()
	}
	return next
}

// put stores rec in place. Only loaders building a fresh store use it.
func (m *Months) put(key model.MonthKey, rec model.MonthRecord) {
	if m.records == nil {
		m.records = make(map[model.MonthKey]model.MonthRecord)
	}
	m.records[key] = rec
}
