package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagSpendAdd bool

var spendCmd = &cobra.Command{
	Use:   "spend <category> <amount>",
	Short: "Record what was spent in a category this month",
	Long: `Record the amount spent in a category. By default the amount replaces
what was recorded; with --add it is added to it.`,
	Example: `  tally spend food 420
  tally spend food 35.50 --add`,
	Args: cobra.ExactArgs(2),
	RunE: runSpend,
}

func init() {
	spendCmd.Flags().BoolVarP(&flagSpendAdd, "add", "a", false, "Add to the recorded amount instead of replacing it")
	rootCmd.AddCommand(spendCmd)
}

func runSpend(cmd *cobra.Command, args []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	key := args[0]
	rec := s.book.Month(month)
	if _, ok := rec.Categories.Lookup(key); !ok {
		return fmt.Errorf("%w %q (see `tally category list`)", model.ErrUnknownCategory, key)
	}

	amount := pipeline.ParseAmount(args[1])
	if flagSpendAdd {
		amount = rec.Spending.Of(key).Add(amount)
	}

	rec, err = s.book.Update(cmd.Context(), month, model.Patch{Spending: rec.Spending.With(key, amount)})
	if err != nil {
		return err
	}

	report := pipeline.BuildReport(month, rec)
	if flagJSON {
		return printJSON(report.Lines)
	}

	for _, l := range report.Lines {
		if l.Key != key {
			continue
		}
		fmt.Printf("  %s: spent %s of %s  %s\n", l.Name,
			cli.FormatMoney(l.Spent, s.currency()), cli.FormatMoney(l.Budgeted, s.currency()),
			cli.RenderUsageBar(l.Spent, l.Budgeted, 20))
		if l.Over {
			fmt.Println("  " + cli.RenderWarning(fmt.Sprintf("Over budget by %s.", cli.FormatMoney(l.Remaining.Neg(), s.currency()))))
		} else {
			fmt.Printf("  %s left this month\n", cli.FormatMoney(l.Remaining, s.currency()))
		}
	}
	return nil
}
