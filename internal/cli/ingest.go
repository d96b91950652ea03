package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/obras/internal/core/cleanse"
	"github.com/example/obras/internal/csvio"
	"github.com/example/obras/internal/wire"
)

// CleanCmd returns the clean command
func CleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the raw works CSV",
		Long:  `Read the raw semicolon-delimited export, normalize every field and write the cleaned UTF-8 CSV checkpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("csv")
			output, _ := cmd.Flags().GetString("out")

			cfg := wire.Config()
			if source == "" {
				source = cfg.SourceCSV
			}
			if output == "" {
				output = cfg.CleanCSV
			}

			result, err := cleanFile(source)
			if err != nil {
				return err
			}
			if err := writeCleanCSV(output, result); err != nil {
				return err
			}

			fmt.Printf("✓ Cleaned %s\n", source)
			printCleanSummary(result)
			fmt.Printf("  Output: %s\n", output)
			return nil
		},
	}
	cmd.Flags().String("csv", "", "raw CSV to clean (default from config)")
	cmd.Flags().String("out", "", "cleaned CSV destination (default from config)")
	return cmd
}

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Clean and load the works CSV into the database",
		Long:  `Run the cleaning pipeline over the raw export and load every record into the relational schema. Rows that fail validation are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("csv")
			exportClean, _ := cmd.Flags().GetString("export-clean")

			cfg := wire.Config()
			if source == "" {
				source = cfg.SourceCSV
			}

			result, err := cleanFile(source)
			if err != nil {
				return err
			}
			printCleanSummary(result)

			if exportClean != "" {
				if err := writeCleanCSV(exportClean, result); err != nil {
					return err
				}
				fmt.Printf("  Clean checkpoint: %s\n", exportClean)
			}

			report, err := wire.IngestService().LoadRecords(cmd.Context(), result.Records)
			if err != nil {
				return fmt.Errorf("failed to load records: %w", err)
			}

			fmt.Printf("✓ Loaded %d works\n", report.Processed)
			if report.Skipped > 0 {
				warn := color.New(color.FgYellow)
				warn.Printf("! Skipped %d rows:\n", report.Skipped)
				for _, failure := range report.Failures {
					fmt.Printf("  row %d: %s\n", failure.Index, failure.Cause)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("csv", "", "raw CSV to ingest (default from config)")
	cmd.Flags().String("export-clean", "", "also write the cleaned CSV checkpoint here")
	return cmd
}

func cleanFile(source string) (cleanse.Result, error) {
	table, err := csvio.ReadFile(source)
	if err != nil {
		return cleanse.Result{}, err
	}
	return cleanse.Clean(table, cleanse.DefaultConfig()), nil
}

func writeCleanCSV(path string, result cleanse.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return csvio.WriteFile(path, result.Records)
}

func printCleanSummary(result cleanse.Result) {
	fmt.Printf("  Rows in: %d\n", result.RowsIn)
	fmt.Printf("  Duplicates dropped: %d\n", result.DuplicatesDropped)
	fmt.Printf("  Corrupt dropped: %d\n", result.CorruptDropped)
	fmt.Printf("  Records out: %d\n", len(result.Records))
}
