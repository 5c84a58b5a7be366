package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"summary"},
	Short:   "Show the budget, goal and spending for a month",
	Args:    cobra.NoArgs,
	RunE:    runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	report := pipeline.BuildReport(month, s.book.Month(month))
	if flagJSON {
		return printJSON(report)
	}

	noticeUnsaved(s, month)

	printReport(report, s.currency())
	return nil
}

// noticeUnsaved explains where an unsaved month's values come from.
func noticeUnsaved(s *session, month model.MonthKey) {
	m := s.book.Months()
	if m.Has(month) {
		return
	}
	latest, ok := m.Latest()
	if !ok {
		notice("No budget saved yet; showing defaults. Start with `tally income <amount>`.")
		return
	}
	notice("%s isn't saved yet; showing settings carried forward from %s.", month.Label(), latest.Label())
}

// printReport renders a month's report as tables.
func printReport(r model.Report, currency string) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TALLY  %s", r.Month.Label())))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Income",
		Rows: [][]string{
			{"Amount", cli.FormatMoney(r.Income.Amount, currency)},
			{"Frequency", string(r.Income.Frequency)},
			{"Type", string(r.Income.Type)},
			cli.SeparatorRow,
			{"Monthly income", cli.FormatMoney(r.MonthlyIncome, currency)},
			{"Days in month", fmt.Sprint(r.Days)},
		},
	}))
	fmt.Println()

	printAllocation(r, currency)
	printGoal(r.Goal, currency)
	printSpending(r, currency)
}

func printAllocation(r model.Report, currency string) {
	rows := make([][]string, 0, len(r.Budgets)+2)
	for _, b := range r.Budgets {
		rows = append(rows, []string{
			b.Name,
			cli.FormatPercent(b.Percent),
			cli.FormatMoney(b.Monthly, currency),
			cli.FormatMoney(b.Daily, currency),
			cli.RenderShareBar(b.Percent, 20),
		})
	}
	rows = append(rows, cli.SeparatorRow, []string{"Total", cli.FormatPercent(r.TotalPercent), cli.FormatMoney(r.TotalBudgeted, currency), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Allocation",
		Headers: []string{"Category", "Percent", "Monthly", "Daily", ""},
		Rows:    rows,
	}))
	if !r.Balanced {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Allocations total %s, not 100%%.", cli.FormatPercent(r.TotalPercent))))
	}
	fmt.Println()
}

func printGoal(g model.GoalPlan, currency string) {
	if !g.Active {
		return
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Savings goal",
		Rows: [][]string{
			{"Target", cli.FormatMoney(g.Target, currency)},
			{"Months", cli.FormatMonths(g.Months)},
			{"Save per month", cli.FormatMoney(g.PerMonth, currency)},
			{"Savings budget", cli.FormatMoney(g.SavingsBudget, currency)},
		},
	}))
	if g.Tight {
		fmt.Println(cli.RenderWarning("This goal needs more than your savings budget each month."))
	} else {
		fmt.Println(cli.RenderOK("Your savings budget covers this goal."))
	}
	fmt.Println()
}

func printSpending(r model.Report, currency string) {
	rows := make([][]string, 0, len(r.Lines)+2)
	flagged := make(map[int]bool)
	for i, l := range r.Lines {
		rows = append(rows, []string{
			l.Name,
			cli.FormatMoney(l.Spent, currency),
			cli.FormatMoney(l.Budgeted, currency),
			cli.FormatSigned(l.Remaining, currency),
			cli.RenderUsageBar(l.Spent, l.Budgeted, 16),
		})
		if l.Over {
			flagged[i] = true
		}
	}
	rows = append(rows, cli.SeparatorRow, []string{
		"Total",
		cli.FormatMoney(r.TotalSpent, currency),
		cli.FormatMoney(r.TotalBudgeted, currency),
		cli.FormatSigned(r.TotalRemaining, currency),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Spending",
		Headers: []string{"Category", "Spent", "Budget", "Remaining", ""},
		Rows:    rows,
		Flagged: flagged,
	}))
	if r.OverCount > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Over budget in %d %s.", r.OverCount, plural(r.OverCount, "category", "categories"))))
	}
	fmt.Println()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
