package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List saved months with their totals",
	Args:  cobra.NoArgs,
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)
}

type monthRow struct {
	Month          string `json:"month"`
	MonthlyIncome  string `json:"monthly_income"`
	TotalSpent     string `json:"total_spent"`
	TotalRemaining string `json:"total_remaining"`
	OverCount      int    `json:"over_count"`
	Balanced       bool   `json:"balanced"`
}

func runMonths(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	keys := s.book.Keys()
	if flagJSON {
		out := make([]monthRow, len(keys))
		for i, k := range keys {
			r := pipeline.BuildReport(k, s.book.Month(k))
			out[i] = monthRow{
				Month:          string(k),
				MonthlyIncome:  r.MonthlyIncome.String(),
				TotalSpent:     r.TotalSpent.String(),
				TotalRemaining: r.TotalRemaining.String(),
				OverCount:      r.OverCount,
				Balanced:       r.Balanced,
			}
		}
		return printJSON(out)
	}

	if len(keys) == 0 {
		fmt.Println("\n  No months saved yet.")
		fmt.Println("  Start with `tally income <amount>` or `tally tui`.")
		return nil
	}

	rows := make([][]string, len(keys))
	flagged := make(map[int]bool)
	for i, k := range keys {
		r := pipeline.BuildReport(k, s.book.Month(k))
		rows[i] = []string{
			k.Label(),
			cli.FormatMoney(r.MonthlyIncome, s.currency()),
			cli.FormatMoney(r.TotalSpent, s.currency()),
			cli.FormatSigned(r.TotalRemaining, s.currency()),
			fmt.Sprint(r.OverCount),
		}
		if r.OverCount > 0 || !r.Balanced {
			flagged[i] = true
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Saved months (%d)", len(keys)),
		Headers: []string{"Month", "Income", "Spent", "Remaining", "Over"},
		Rows:    rows,
		Flagged: flagged,
	}))
	fmt.Println()
	return nil
}
