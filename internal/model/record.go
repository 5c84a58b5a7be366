package model

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrUnknownCategory is returned when a category key is not in a record.
var ErrUnknownCategory = errors.New("unknown category")

// IncomeType describes where income comes from. It is display metadata only.
type IncomeType string

const (
	IncomeAllowance IncomeType = "Allowance"
	IncomeSalary    IncomeType = "Salary"
	IncomeJob       IncomeType = "Job"
	IncomeOther     IncomeType = "Other"
)

// IncomeTypes lists the selectable income types in display order.
var IncomeTypes = []IncomeType{IncomeAllowance, IncomeSalary, IncomeJob, IncomeOther}

// Frequency is how often the income amount is received.
type Frequency string

const (
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
	Yearly  Frequency = "Yearly"
)

// Frequencies lists the selectable frequencies in display order.
var Frequencies = []Frequency{Monthly, Weekly, Yearly}

// Income is the user's income for a month.
type Income struct {
	Amount    decimal.Decimal `json:"amount"`
	Type      IncomeType      `json:"type"`
	Frequency Frequency       `json:"frequency"`
}

// DefaultIncome is used when no month has been recorded yet.
func DefaultIncome() Income {
	return Income{Amount: decimal.Zero, Type: IncomeAllowance, Frequency: Monthly}
}

// Equal reports whether two incomes hold the same values.
func (in Income) Equal(o Income) bool {
	return in.Amount.Equal(o.Amount) && in.Type == o.Type && in.Frequency == o.Frequency
}

// Category is a named share of monthly income.
// Percent is not range checked; totals other than 100 are advisory.
type Category struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// Categories keeps categories in display order. Keys are unique.
type Categories []Category

// SavingsKey is the category that savings goals are measured against.
const SavingsKey = "savings"

// DefaultCategories returns the seed allocation used before any month exists.
func DefaultCategories() Categories {
	return Categories{
		{Key: "food", Name: "Food & Drinks", Percent: decimal.NewFromInt(30)},
		{Key: "bills", Name: "Bills & Subscriptions", Percent: decimal.NewFromInt(20)},
		{Key: "lifestyle", Name: "Clothing & Lifestyle", Percent: decimal.NewFromInt(10)},
		{Key: SavingsKey, Name: "Savings & Investments", Percent: decimal.NewFromInt(25)},
		{Key: "misc", Name: "Misc / Emergency", Percent: decimal.NewFromInt(10)},
		{Key: "others", Name: "Others", Percent: decimal.NewFromInt(5)},
	}
}

// Lookup returns the category with the given key.
func (cs Categories) Lookup(key string) (Category, bool) {
	for _, c := range cs {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Keys returns category keys in display order.
func (cs Categories) Keys() []string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = c.Key
	}
	return keys
}

// WithPercent returns a copy with the percent of key replaced.
func (cs Categories) WithPercent(key string, pct decimal.Decimal) (Categories, error) {
	out := slices.Clone(cs)
	for i := range out {
		if out[i].Key == key {
			out[i].Percent = pct
			return out, nil
		}
	}
	return nil, ErrUnknownCategory
}

// With returns a copy where c replaces the category sharing its key,
// or is appended when the key is new.
func (cs Categories) With(c Category) Categories {
	out := slices.Clone(cs)
	for i := range out {
		if out[i].Key == c.Key {
			out[i] = c
			return out
		}
	}
	return append(out, c)
}

// Without returns a copy with key removed.
func (cs Categories) Without(key string) (Categories, error) {
	idx := slices.IndexFunc(cs, func(c Category) bool { return c.Key == key })
	if idx < 0 {
		return nil, ErrUnknownCategory
	}
	return slices.Delete(slices.Clone(cs), idx, idx+1), nil
}

// Equal reports whether both lists hold the same categories in the same order.
func (cs Categories) Equal(o Categories) bool {
	return slices.EqualFunc(cs, o, func(a, b Category) bool {
		return a.Key == b.Key && a.Name == b.Name && a.Percent.Equal(b.Percent)
	})
}

// Goal is a savings target reached over a number of months.
// A zero Target or Months means the field is empty.
type Goal struct {
	Target decimal.Decimal `json:"target"`
	Months int             `json:"months"`
}

// IsEmpty reports whether neither field has been set.
func (g Goal) IsEmpty() bool {
	return g.Target.IsZero() && g.Months == 0
}

// Equal reports whether two goals hold the same values.
func (g Goal) Equal(o Goal) bool {
	return g.Target.Equal(o.Target) && g.Months == o.Months
}

// Spending maps category key to the amount spent. Missing keys mean nothing spent.
type Spending map[string]decimal.Decimal

// Of returns the amount spent on key, zero when absent.
func (s Spending) Of(key string) decimal.Decimal {
	if v, ok := s[key]; ok {
		return v
	}
	return decimal.Zero
}

// With returns a copy with key set to amount.
func (s Spending) With(key string, amount decimal.Decimal) Spending {
	out := make(Spending, len(s)+1)
	maps.Copy(out, s)
	out[key] = amount
	return out
}

// Equal reports whether both maps hold the same amounts.
func (s Spending) Equal(o Spending) bool {
	return maps.EqualFunc(s, o, func(a, b decimal.Decimal) bool { return a.Equal(b) })
}

// MonthRecord is everything stored for one month.
type MonthRecord struct {
	Income     Income     `json:"income"`
	Categories Categories `json:"categories"`
	Goal       Goal       `json:"goal"`
	Spending   Spending   `json:"spending"`
}

// NewRecord returns the record used when nothing has been stored yet.
func NewRecord() MonthRecord {
	return MonthRecord{
		Income:     DefaultIncome(),
		Categories: DefaultCategories(),
		Spending:   Spending{},
	}
}

// CarryForward seeds a new month from r: configuration is kept, spending starts empty.
func (r MonthRecord) CarryForward() MonthRecord {
	next := r.Clone()
	next.Spending = Spending{}
	return next
}

// Clone returns a deep copy so callers can't alias stored slices or maps.
func (r MonthRecord) Clone() MonthRecord {
	out := r
	out.Categories = slices.Clone(r.Categories)
	out.Spending = maps.Clone(r.Spending)
	if out.Spending == nil {
		out.Spending = Spending{}
	}
	return out
}

// Equal reports whether two records hold the same values.
func (r MonthRecord) Equal(o MonthRecord) bool {
	return r.Income.Equal(o.Income) &&
		r.Categories.Equal(o.Categories) &&
		r.Goal.Equal(o.Goal) &&
		r.Spending.Equal(o.Spending)
}

// Patch overrides top-level fields of a record. Nil fields are left alone.
// Categories and Spending replace the whole collection, not individual entries.
type Patch struct {
	Income     *Income
	Categories Categories
	Goal       *Goal
	Spending   Spending
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Income == nil && p.Categories == nil && p.Goal == nil && p.Spending == nil
}

// Apply returns r with the patch's fields swapped in.
func (r MonthRecord) Apply(p Patch) MonthRecord {
	out := r.Clone()
	if p.Income != nil {
		out.Income = *p.Income
	}
	if p.Categories != nil {
		out.Categories = slices.Clone(p.Categories)
	}
	if p.Goal != nil {
		out.Goal = *p.Goal
	}
	if p.Spending != nil {
		out.Spending = maps.Clone(p.Spending)
	}
	return out
}

// NewCategoryKey derives a unique key for a category called name.
// It slugifies the name and adds a numeric suffix on collision.
func (cs Categories) NewCategoryKey(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	base := strings.TrimSuffix(b.String(), "-")
	if base == "" {
		base = "category"
	}
	key := base
	for n := 2; ; n++ {
		if _, taken := cs.Lookup(key); !taken {
			return key
		}
		key = base + "-" + strconv.Itoa(n)
	}
}
