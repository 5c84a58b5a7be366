package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <YYYY-MM>",
	Short: "Delete a saved month",
	Long: `Delete a month's saved record. Viewing the month afterwards carries
settings forward from the latest remaining month again.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	month, err := model.ParseMonthKey(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	deleted, err := s.book.Delete(cmd.Context(), month)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("  %s is not saved; nothing to delete.\n", month.Label())
		return nil
	}
	fmt.Printf("  Deleted %s.\n", month.Label())
	return nil
}
