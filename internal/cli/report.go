package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show aggregate indicators over the loaded works",
		RunE: func(cmd *cobra.Command, args []string) error {
			districts, _ := cmd.Flags().GetStringSlice("district")
			threshold, _ := cmd.Flags().GetInt("term-threshold")

			indicators, err := wire.ReportService().Indicators(cmd.Context(), primary.IndicatorsRequest{
				Districts:           districts,
				TermThresholdMonths: threshold,
			})
			if err != nil {
				return fmt.Errorf("failed to compute indicators: %w", err)
			}

			printIndicators(indicators)
			return nil
		},
	}
	cmd.Flags().StringSlice("district", nil, "list neighborhoods in these districts (repeatable)")
	cmd.Flags().Int("term-threshold", 0, "list finished works with terms over this many months")
	return cmd
}

func printIndicators(ind *primary.Indicators) {
	header := color.New(color.Bold)

	fmt.Println()
	header.Println("Works overview")
	fmt.Printf("  Total works: %d\n", ind.TotalWorks)
	fmt.Printf("  Total contract amount: $%s\n", ind.TotalContractAmount)

	if len(ind.ByType) > 0 {
		fmt.Println()
		header.Println("By work type")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  TYPE\tCOUNT\tTOTAL AMOUNT")
		for _, t := range ind.ByType {
			fmt.Fprintf(w, "  %s\t%d\t$%s\n", t.WorkType, t.Count, t.TotalAmount)
		}
		w.Flush()
	}

	if len(ind.ByStage) > 0 {
		fmt.Println()
		header.Println("By stage")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  STAGE\tCOUNT")
		for _, s := range ind.ByStage {
			fmt.Fprintf(w, "  %s\t%d\n", s.Stage, s.Count)
		}
		w.Flush()
	}

	if len(ind.Neighborhoods) > 0 {
		fmt.Println()
		header.Println("Neighborhoods")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  NEIGHBORHOOD\tDISTRICT")
		for _, n := range ind.Neighborhoods {
			fmt.Fprintf(w, "  %s\t%s\n", n.Name, n.District)
		}
		w.Flush()
	}

	if len(ind.LongFinishedWorks) > 0 {
		fmt.Println()
		header.Println("Finished works over term threshold")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tTERM\tNAME")
		for _, f := range ind.LongFinishedWorks {
			fmt.Fprintf(w, "  %d\t%d months\t%s\n", f.ID, f.TermMonths, f.Name)
		}
		w.Flush()
	}
	fmt.Println()
}
