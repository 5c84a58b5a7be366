package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagImportFormat string
	flagImportMerge  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import budgets from a JSON export or the browser app",
	Long: `Import months from a file ("-" reads stdin).

The legacy format is the browser app's saved "finance_store" value: either
the raw JSON, a quoted JSON string or an object wrapping it. A tally export
is read by the same path. By default the imported months replace everything
saved; --merge keeps months the file doesn't mention.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportFormat, "format", "legacy", "Input format: legacy or json")
	importCmd.Flags().BoolVar(&flagImportMerge, "merge", false, "Merge into saved months instead of replacing them")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var (
		imported store.Months
		err      error
	)
	switch flagImportFormat {
	case "legacy":
		imported, err = store.ImportLegacy(r)
	case "json":
		imported, err = store.DecodeJSON(r)
	default:
		return fmt.Errorf("unknown import format %q (want legacy or json)", flagImportFormat)
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	result := imported
	if flagImportMerge {
		result = mergeMonths(s.book.Months(), imported)
	}
	if err := s.book.Replace(cmd.Context(), result); err != nil {
		return err
	}

	notice("Saved to %s", s.location)
	fmt.Printf("  Imported %d %s; %d saved in total.\n",
		imported.Len(), plural(imported.Len(), "month", "months"), result.Len())
	return nil
}

// mergeMonths overlays every month stored in src onto dst.
func mergeMonths(dst, src store.Months) store.Months {
	for _, k := range src.Keys() {
		rec, _ := src.Stored(k)
		if rec.Categories == nil {
			rec.Categories = model.Categories{}
		}
		dst = dst.Update(k, model.Patch{
			Income:     &rec.Income,
			Categories: rec.Categories,
			Goal:       &rec.Goal,
			Spending:   rec.Spending,
		})
	}
	return dst
}
