package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagIncomeType      string
	flagIncomeFrequency string
)

var incomeCmd = &cobra.Command{
	Use:   "income <amount>",
	Short: "Set the income for a month",
	Long: `Set the income amount for a month. Weekly income counts as four weeks
a month and yearly income as a twelfth. Type and frequency are kept from
the month's current record unless given.`,
	Example: `  tally income 2500
  tally income 600 --frequency weekly --type job
  tally income 36000 -f yearly -m 2024-05`,
	Args: cobra.ExactArgs(1),
	RunE: runIncome,
}

func init() {
	incomeCmd.Flags().StringVarP(&flagIncomeType, "type", "t", "", "Income type: allowance, salary, job or other")
	incomeCmd.Flags().StringVarP(&flagIncomeFrequency, "frequency", "f", "", "How often it is paid: weekly, monthly or yearly")
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(cmd *cobra.Command, args []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	in := s.book.Month(month).Income

	in.Amount = pipeline.ParseAmount(args[0])
	if flagIncomeType != "" {
		if in.Type, err = parseChoice(flagIncomeType, model.IncomeTypes); err != nil {
			return fmt.Errorf("--type: %w", err)
		}
	}
	if flagIncomeFrequency != "" {
		if in.Frequency, err = parseChoice(flagIncomeFrequency, model.Frequencies); err != nil {
			return fmt.Errorf("--frequency: %w", err)
		}
	}

	rec, err := s.book.Update(cmd.Context(), month, model.Patch{Income: &in})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(pipeline.BuildReport(month, rec))
	}
	fmt.Printf("  %s income: %s %s (%s)\n", month.Label(),
		cli.FormatMoney(in.Amount, s.currency()), strings.ToLower(string(in.Frequency)), in.Type)
	fmt.Printf("  Monthly income: %s\n", cli.FormatMoney(pipeline.MonthlyIncome(in), s.currency()))
	return nil
}

// parseChoice matches s case-insensitively against the allowed values.
func parseChoice[T ~string](s string, allowed []T) (T, error) {
	i := slices.IndexFunc(allowed, func(v T) bool { return strings.EqualFold(string(v), s) })
	if i < 0 {
		var zero T
		names := make([]string, len(allowed))
		for j, v := range allowed {
			names[j] = strings.ToLower(string(v))
		}
		return zero, fmt.Errorf("%q is not one of %s", s, strings.Join(names, ", "))
	}
	return allowed[i], nil
}
