package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagGoalClear bool

var goalCmd = &cobra.Command{
	Use:   "goal [<target> <months>]",
	Short: "Set, show or clear a savings goal",
	Long: `Plan saving a target amount over a number of months. tally compares the
amount needed each month with the budget of the savings category.`,
	Example: `  tally goal 1200 6
  tally goal
  tally goal --clear`,
	RunE: runGoal,
}

func init() {
	goalCmd.Flags().BoolVar(&flagGoalClear, "clear", false, "Remove the month's goal")
	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return errors.New("expected a target and a number of months, or no arguments")
	}
	if flagGoalClear && len(args) > 0 {
		return errors.New("--clear takes no arguments")
	}

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
	switch {
	case flagGoalClear:
		if rec, err = s.book.Update(cmd.Context(), month, model.Patch{Goal: &model.Goal{}}); err != nil {
			return err
		}
	case len(args) == 2:
		g := model.Goal{
			Target: pipeline.ParseAmount(args[0]),
			Months: pipeline.ParseCount(args[1]),
		}
		if rec, err = s.book.Update(cmd.Context(), month, model.Patch{Goal: &g}); err != nil {
			return err
		}
	}

	report := pipeline.BuildReport(month, rec)
	if flagJSON {
		return printJSON(report.Goal)
	}
	if !report.Goal.Active {
		if rec.Goal.IsEmpty() {
			fmt.Println("  No savings goal. Set one with `tally goal <target> <months>`.")
		} else {
			fmt.Println("  The savings goal needs both a target and a number of months above zero.")
		}
		return nil
	}
	fmt.Println()
	printGoal(report.Goal, s.currency())
	return nil
}
