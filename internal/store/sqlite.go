package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite persists months in normalized tables. Amounts are stored as TEXT
// so decimals round-trip exactly.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at dbPath and migrates it.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening budget db: %w", err)
	}
	return &SQLite{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads every stored month. Unparseable amounts load as zero.
func (s *SQLite) Load(ctx context.Context) (Months, error) {
	m := NewMonths()

	rows, err := s.db.QueryContext(ctx, `SELECT
		month_key, income_amount, income_type, income_frequency, goal_target, goal_months
		FROM months`)
	if err != nil {
		return m, fmt.Errorf("querying months: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, amount, incomeType, freq, target string
		var goalMonths int
		if err := rows.Scan(&key, &amount, &incomeType, &freq, &target, &goalMonths); err != nil {
			return m, fmt.Errorf("scanning month: %w", err)
		}
		m.put(model.MonthKey(key), model.MonthRecord{
			Income: model.Income{
				Amount:    pipeline.ParseAmount(amount),
				Type:      model.IncomeType(incomeType),
				Frequency: model.Frequency(freq),
			},
			Goal:       model.Goal{Target: pipeline.ParseAmount(target), Months: goalMonths},
			Categories: model.Categories{},
			Spending:   model.Spending{},
		})
	}
	if err := rows.Err(); err != nil {
		return m, err
	}

	catRows, err := s.db.QueryContext(ctx, `SELECT month_key, category_key, name, percent
		FROM categories ORDER BY month_key, position`)
	if err != nil {
		return m, fmt.Errorf("querying categories: %w", err)
	}
	defer func() { _ = catRows.Close() }()

	for catRows.Next() {
		var key string
		var c model.Category
		var pct string
		if err := catRows.Scan(&key, &c.Key, &c.Name, &pct); err != nil {
			return m, fmt.Errorf("scanning category: %w", err)
		}
		c.Percent = pipeline.ParseAmount(pct)
		if rec, ok := m.records[model.MonthKey(key)]; ok {
			rec.Categories = append(rec.Categories, c)
			m.records[model.MonthKey(key)] = rec
		}
	}
	if err := catRows.Err(); err != nil {
		return m, err
	}

	spendRows, err := s.db.QueryContext(ctx, `SELECT month_key, category_key, amount FROM spending`)
	if err != nil {
		return m, fmt.Errorf("querying spending: %w", err)
	}
	defer func() { _ = spendRows.Close() }()

	for spendRows.Next() {
		var key, catKey, amount string
		if err := spendRows.Scan(&key, &catKey, &amount); err != nil {
			return m, fmt.Errorf("scanning spending: %w", err)
		}
		if rec, ok := m.records[model.MonthKey(key)]; ok {
			rec.Spending[catKey] = pipeline.ParseAmount(amount)
		}
	}

	return m, spendRows.Err()
}

// Save replaces the stored months with m in a single transaction.
func (s *SQLite) Save(ctx context.Context, m Months) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"spending", "categories", "months"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, key := range m.Keys() {
		rec := m.records[key]

		_, err = tx.ExecContext(ctx, `INSERT INTO months
			(month_key, income_amount, income_type, income_frequency, goal_target, goal_months, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(key), rec.Income.Amount.String(), string(rec.Income.Type), string(rec.Income.Frequency),
			rec.Goal.Target.String(), rec.Goal.Months, now,
		)
		if err != nil {
			return fmt.Errorf("inserting month %s: %w", key, err)
		}

		for pos, c := range rec.Categories {
			_, err = tx.ExecContext(ctx, `INSERT INTO categories
				(month_key, category_key, name, percent, position)
				VALUES (?, ?, ?, ?, ?)`,
				string(key), c.Key, c.Name, c.Percent.String(), pos,
			)
			if err != nil {
				return fmt.Errorf("inserting category %s/%s: %w", key, c.Key, err)
			}
		}

		for catKey, amount := range rec.Spending {
			_, err = tx.ExecContext(ctx, `INSERT INTO spending (month_key, category_key, amount)
				VALUES (?, ?, ?)`, string(key), catKey, amount.String())
			if err != nil {
				return fmt.Errorf("inserting spending %s/%s: %w", key, catKey, err)
			}
		}
	}

	return tx.Commit()
}
