package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s.book, s.cfg, tui.Options{
		Month:    month,
		Location: s.location,
		Setup:    s.book.Months().Len() == 0 && !config.Exists(),
		SaveConfig: func(c config.Config) error {
			return config.Save(mergeTUISettings(c))
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// mergeTUISettings copies the settings the dashboard edits onto the config
// file's contents, so flag and environment overrides aren't written back.
func mergeTUISettings(c config.Config) config.Config {
	onDisk, err := config.LoadFile(config.ConfigPath())
	if err != nil {
		onDisk = config.DefaultConfig()
	}
	onDisk.General.Currency = c.General.Currency
	onDisk.Defaults = c.Defaults
	onDisk.Appearance = c.Appearance
	return onDisk
}
