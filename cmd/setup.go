package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		// A broken file is replaced by whatever the wizard collects.
		cfg = config.DefaultConfig()
	}

	incomeType := model.IncomeType(cfg.Defaults.IncomeType)
	frequency := model.Frequency(cfg.Defaults.Frequency)

	typeOpts := make([]huh.Option[model.IncomeType], len(model.IncomeTypes))
	for i, it := range model.IncomeTypes {
		typeOpts[i] = huh.NewOption(string(it), it)
	}
	freqOpts := make([]huh.Option[model.Frequency], len(model.Frequencies))
	for i, f := range model.Frequencies {
		freqOpts[i] = huh.NewOption(string(f), f)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("tally setup").
				Description("Settings are saved to "+config.ConfigPath()),
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("SQLite database", store.BackendSQLite),
					huh.NewOption("JSON file", store.BackendJSON),
				).
				Value(&cfg.General.Backend),
			huh.NewInput().
				Title("Data directory").
				Description("Leave blank for "+config.DefaultDataDir()).
				Value(&cfg.General.DataDir),
			huh.NewInput().
				Title("Currency symbol").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}).
				Value(&cfg.General.Currency),
		),
		huh.NewGroup(
			huh.NewSelect[model.IncomeType]().
				Title("Default income type").
				Options(typeOpts...).
				Value(&incomeType),
			huh.NewSelect[model.Frequency]().
				Title("Default pay frequency").
				Options(freqOpts...).
				Value(&frequency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&cfg.Appearance.Theme),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.General.DataDir = strings.TrimSpace(cfg.General.DataDir)
	cfg.General.Currency = strings.TrimSpace(cfg.General.Currency)
	cfg.Defaults.IncomeType = string(incomeType)
	cfg.Defaults.Frequency = string(frequency)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
