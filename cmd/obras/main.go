package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/obras/internal/cli"
	"github.com/example/obras/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "obras",
		Short:   "obras - urban works observatory loader",
		Version: version.String(),
		Long: `obras cleans the public works observatory CSV export and loads it
into a normalized relational database, then tracks each work through
its contracting lifecycle and reports aggregate indicators.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.CleanCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.WorkCmd())
	rootCmd.AddCommand(cli.ReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
