package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/tally/internal/store"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every saved month as JSON",
	Long:  "Write every saved month as one JSON document, to a file or stdout. `tally import --format json` reads it back.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var w io.Writer = os.Stdout
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := store.EncodeJSON(w, s.book.Months()); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if len(args) == 1 && args[0] != "-" {
		notice("Exported %d months to %s", s.book.Months().Len(), args[0])
	}
	return nil
}
