package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var allocCmd = &cobra.Command{
	Use:   "alloc <category> <percent>",
	Short: "Set the share of income for a category",
	Long: `Set what percent of monthly income a category gets. Totals other than
100% are allowed; tally warns about them.`,
	Example: `  tally alloc food 35
  tally alloc savings 20 -m 2024-06`,
	Args: cobra.ExactArgs(2),
	RunE: runAlloc,
}

func init() {
	rootCmd.AddCommand(allocCmd)
}

func runAlloc(cmd *cobra.Command, args []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rec := s.book.Month(month)
	cats, err := rec.Categories.WithPercent(args[0], pipeline.ParseAmount(args[1]))
	if err != nil {
		return fmt.Errorf("%w %q (see `tally category list`)", err, args[0])
	}

	rec, err = s.book.Update(cmd.Context(), month, model.Patch{Categories: cats})
	if err != nil {
		return err
	}

	report := pipeline.BuildReport(month, rec)
	if flagJSON {
		return printJSON(report)
	}
	if b, ok := pipeline.BudgetFor(report.Budgets, args[0]); ok {
		fmt.Printf("  %s: %s of income = %s a month, %s a day\n", b.Name,
			cli.FormatPercent(b.Percent), cli.FormatMoney(b.Monthly, s.currency()), cli.FormatMoney(b.Daily, s.currency()))
	}
	printBalance(report)
	return nil
}

// printBalance reports the allocation total after an edit.
func printBalance(r model.Report) {
	if r.Balanced {
		fmt.Println("  " + cli.RenderOK("Allocations total 100%."))
		return
	}
	fmt.Println("  " + cli.RenderWarning(fmt.Sprintf("Allocations total %s, not 100%%.", cli.FormatPercent(r.TotalPercent))))
}
