package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagCategoryKey string

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Add, rename, remove or list budget categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a month's categories and their keys",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name> [percent]",
	Short: "Add a category",
	Example: `  tally category add "Pets" 5
  tally category add Transport --key bus`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCategoryAdd,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <key> <name>",
	Short: "Change a category's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryRemoveCmd = &cobra.Command{
	Use:     "remove <key>",
	Aliases: []string{"rm"},
	Short:   "Remove a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryRemove,
}

func init() {
	categoryAddCmd.Flags().StringVar(&flagCategoryKey, "key", "", "Key to use instead of one derived from the name")
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd, categoryRemoveCmd)
	rootCmd.AddCommand(categoryCmd)
}

// editCategories applies fn to the selected month's categories and saves.
func editCategories(cmd *cobra.Command, fn func(model.Categories) (model.Categories, string, error)) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cats, msg, err := fn(s.book.Month(month).Categories)
	if err != nil {
		return err
	}
	rec, err := s.book.Update(cmd.Context(), month, model.Patch{Categories: cats})
	if err != nil {
		return err
	}

	report := pipeline.BuildReport(month, rec)
	if flagJSON {
		return printJSON(report)
	}
	fmt.Println("  " + msg)
	printBalance(report)
	return nil
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cats := s.book.Month(month).Categories
	if flagJSON {
		return printJSON(cats)
	}

	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = []string{c.Key, c.Name, cli.FormatPercent(c.Percent)}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Categories  " + month.Label(),
		Headers: []string{"Key", "Name", "Percent"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("category name is empty")
	}
	pct := decimal.Zero
	if len(args) == 2 {
		pct = pipeline.ParseAmount(args[1])
	}

	return editCategories(cmd, func(cats model.Categories) (model.Categories, string, error) {
		key := flagCategoryKey
		if key == "" {
			key = cats.NewCategoryKey(name)
		} else if _, taken := cats.Lookup(key); taken {
			return nil, "", fmt.Errorf("category %q already exists", key)
		}
		c := model.Category{Key: key, Name: name, Percent: pct}
		return cats.With(c), fmt.Sprintf("Added %s (%s) at %s", name, key, cli.FormatPercent(pct)), nil
	})
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[1])
	if name == "" {
		return errors.New("category name is empty")
	}
	return editCategories(cmd, func(cats model.Categories) (model.Categories, string, error) {
		c, ok := cats.Lookup(args[0])
		if !ok {
			return nil, "", fmt.Errorf("%w %q", model.ErrUnknownCategory, args[0])
		}
		old := c.Name
		c.Name = name
		return cats.With(c), fmt.Sprintf("Renamed %s to %s", old, name), nil
	})
}

func runCategoryRemove(cmd *cobra.Command, args []string) error {
	return editCategories(cmd, func(cats model.Categories) (model.Categories, string, error) {
		c, ok := cats.Lookup(args[0])
		if !ok {
			return nil, "", fmt.Errorf("%w %q", model.ErrUnknownCategory, args[0])
		}
		out, err := cats.Without(c.Key)
		if err != nil {
			return nil, "", err
		}
		return out, "Removed " + c.Name, nil
	})
}
