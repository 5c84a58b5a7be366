// Package cmd implements the tally CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagMonth   string
	flagDataDir string
	flagBackend string
	flagQuiet   bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:          "tally",
	Short:        "Personal monthly budget planner",
	Long:         "Split your income into categories, track what you spend and plan a savings goal, month by month.",
	RunE:         runReport,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to work on as YYYY-MM (default: this month)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding saved budgets (default: config or XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: sqlite or json (default: config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print machine-readable JSON")
}

// session is what every command that touches saved budgets needs.
type session struct {
	cfg      config.Config
	log      *log.Logger
	p        store.Persister
	book     *store.Book
	location string
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *log.Logger {
	l := log.New(log.Config{
		Level:     log.ParseLevel(cfg.Log.Level),
		Component: "tally",
		Output:    os.Stderr,
	})
	log.SetDefault(l)
	return l
}

// openPersister opens the configured backend without loading it.
func openPersister(cfg config.Config) (store.Persister, string, error) {
	p, err := store.OpenPersister(cfg.General.Backend, cfg.DataDir())
	if err != nil {
		return nil, "", fmt.Errorf("opening %s store: %w", cfg.General.Backend, err)
	}
	location := cfg.DataDir()
	if pp, ok := p.(interface{ Path() string }); ok {
		location = pp.Path()
	}
	return p, location, nil
}

// openSession loads config and the saved budgets.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	p, location, err := openPersister(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "backend", cfg.General.Backend, "path", location)

	book := store.Open(ctx, p, logger)
	book.SetDefaultIncome(defaultIncome(cfg))

	return &session{
		cfg:      cfg,
		log:      logger,
		p:        p,
		book:     book,
		location: location,
	}, nil
}

// defaultIncome is the income an empty store starts from: [defaults] type
// and frequency, amount zero.
func defaultIncome(cfg config.Config) model.Income {
	in := model.DefaultIncome()
	in.Type = model.IncomeType(cfg.Defaults.IncomeType)
	in.Frequency = model.Frequency(cfg.Defaults.Frequency)
	return in
}

func (s *session) Close() error {
	return s.book.Close()
}

func (s *session) currency() string {
	return s.cfg.General.Currency
}

// selectedMonth returns the --month flag, or the current month.
func selectedMonth() (model.MonthKey, error) {
	if flagMonth == "" {
		return model.CurrentMonth(), nil
	}
	return model.ParseMonthKey(flagMonth)
}

// notice prints a progress or hint line to stderr unless --quiet.
func notice(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
