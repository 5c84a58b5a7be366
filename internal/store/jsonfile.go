package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/shopspring/decimal"
)

// JSONFile persists the store as one JSON object keyed by month.
// It reads the browser planner's exported data as well as its own output.
type JSONFile struct {
	path string
}

// NewJSONFile returns a persister for path. The file is created on first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file path.
func (f *JSONFile) Path() string { return f.path }

// Load reads the file. A missing file is an empty store.
func (f *JSONFile) Load(_ context.Context) (Months, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewMonths(), nil
		}
		return NewMonths(), fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMonths(), nil
	}
	m, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return NewMonths(), fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return m, nil
}

// Save writes the whole store to a temp file and renames it into place.
func (f *JSONFile) Save(_ context.Context, m Months) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, m); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op.
func (f *JSONFile) Close() error { return nil }

type wireIncome struct {
	Amount    number `json:"amount"`
	Type      string `json:"type"`
	Frequency string `json:"frequency"`
}

type wireCategory struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Percent number `json:"percent"`
}

type wireGoal struct {
	Target number `json:"target"`
	Months count  `json:"months"`
}

type wireRecord struct {
	Income     wireIncome        `json:"income"`
	Categories wireCategories    `json:"categories"`
	Goal       wireGoal          `json:"goal"`
	Spending   map[string]number `json:"spending"`
}

// EncodeJSON writes m as indented JSON, months in ascending order.
func EncodeJSON(w io.Writer, m Months) error {
	out := make(map[string]wireRecord, m.Len())
	for _, key := range m.Keys() {
		rec := m.records[key]
		wr := wireRecord{
			Income: wireIncome{
				Amount:    number(rec.Income.Amount),
				Type:      string(rec.Income.Type),
				Frequency: string(rec.Income.Frequency),
			},
			Categories: make(wireCategories, 0, len(rec.Categories)),
			Goal:       wireGoal{Target: number(rec.Goal.Target), Months: count(rec.Goal.Months)},
			Spending:   make(map[string]number, len(rec.Spending)),
		}
		for _, c := range rec.Categories {
			wr.Categories = append(wr.Categories, wireCategory{Key: c.Key, Name: c.Name, Percent: number(c.Percent)})
		}
		for k, v := range rec.Spending {
			wr.Spending[k] = number(v)
		}
		out[string(key)] = wr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding budgets: %w", err)
	}
	return nil
}

// DecodeJSON reads a store. Keys that aren't YYYY-MM are dropped, and
// numbers may be JSON numbers or strings; blank or invalid ones read as zero.
// Categories may be a list or an object keyed by category, whose order is kept.
// Category keys are unique after decoding.
func DecodeJSON(r io.Reader) (Months, error) {
	var raw map[string]wireRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return NewMonths(), fmt.Errorf("decoding budgets: %w", err)
	}

	m := NewMonths()
	for k, wr := range raw {
		key, err := model.ParseMonthKey(k)
		if err != nil {
			continue
		}
		rec := model.MonthRecord{
			Income: model.Income{
				Amount:    decimal.Decimal(wr.Income.Amount),
				Type:      model.IncomeType(wr.Income.Type),
				Frequency: model.Frequency(wr.Income.Frequency),
			},
			Categories: make(model.Categories, 0, len(wr.Categories)),
			Goal:       model.Goal{Target: decimal.Decimal(wr.Goal.Target), Months: int(wr.Goal.Months)},
			Spending:   make(model.Spending, len(wr.Spending)),
		}
		if rec.Income.Type == "" {
			rec.Income.Type = model.DefaultIncome().Type
		}
		if rec.Income.Frequency == "" {
			rec.Income.Frequency = model.DefaultIncome().Frequency
		}
		// A repeated key keeps its first position and its last value.
		for _, c := range wr.Categories {
			rec.Categories = rec.Categories.With(model.Category{Key: c.Key, Name: c.Name, Percent: decimal.Decimal(c.Percent)})
		}
		for ck, v := range wr.Spending {
			rec.Spending[ck] = decimal.Decimal(v)
		}
		m.put(key, rec)
	}
	return m, nil
}

// wireCategories decodes from either a list or a key-ordered object.
type wireCategories []wireCategory

func (wc *wireCategories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*wc = nil
		return nil
	}
	if data[0] == '[' {
		var list []wireCategory
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*wc = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	var out wireCategories
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("category key %v is not a string", tok)
		}
		var c wireCategory
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		c.Key = key
		out = append(out, c)
	}
	*wc = out
	return nil
}

// number is a decimal that encodes as a bare JSON number and decodes leniently.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(data []byte) error {
	*n = number(pipeline.ParseAmount(unquote(data)))
	return nil
}

// count is a whole number that decodes leniently, like number.
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	*c = count(pipeline.ParseCount(unquote(data)))
	return nil
}

func unquote(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return ""
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}
