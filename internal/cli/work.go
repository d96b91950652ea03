package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/wire"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage public works and their lifecycle",
	Long:  "Create, inspect and move works through their contracting lifecycle",
}

var workCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new work in the project stage",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		environment, _ := cmd.Flags().GetString("environment")
		workType, _ := cmd.Flags().GetString("type")
		contracting, _ := cmd.Flags().GetString("contracting")
		area, _ := cmd.Flags().GetString("area")
		amount, _ := cmd.Flags().GetString("amount")
		bidYear, _ := cmd.Flags().GetInt("bid-year")

		work, err := wire.WorkService().CreateWork(cmd.Context(), primary.CreateWorkRequest{
			Name:            args[0],
			Description:     description,
			Environment:     environment,
			WorkType:        workType,
			ContractingType: contracting,
			ResponsibleArea: area,
			ContractAmount:  amount,
			BidYear:         bidYear,
		})
		if err != nil {
			return fmt.Errorf("failed to create work: %w", err)
		}

		fmt.Printf("✓ Created work %d: %s\n", work.ID, work.Name)
		fmt.Printf("  Stage: %s\n", work.Stage)
		return nil
	},
}

var workShowCmd = &cobra.Command{
	Use:   "show [work-id]",
	Short: "Show work details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}

		work, err := wire.WorkService().GetWork(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get work: %w", err)
		}

		printWork(work)
		return nil
	},
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List works",
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, _ := cmd.Flags().GetString("stage")
		workType, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")

		works, err := wire.WorkService().ListWorks(cmd.Context(), primary.ListWorksRequest{
			Stage:    stage,
			WorkType: workType,
			Limit:    limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list works: %w", err)
		}

		if len(works) == 0 {
			fmt.Println("No works found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTAGE\tTYPE\tPROGRESS\tNAME")
		for _, work := range works {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.0f%%\t%s\n",
				work.ID, work.Stage, work.WorkType, work.ProgressPercent, work.Name)
		}
		return w.Flush()
	},
}

var workStartProjectCmd = &cobra.Command{
	Use:   "start-project [work-id]",
	Short: "Move the work back to the project stage",
	Args:  cobra.ExactArgs(1),
	RunE: transitionRunE("moved to project stage", func(cmd *cobra.Command, id int64) (*primary.Work, error) {
		return wire.WorkService().StartProject(cmd.Context(), id)
	}),
}

var workStartContractingCmd = &cobra.Command{
	Use:   "start-contracting [work-id]",
	Short: "Move the work to the contracting stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		contracting, _ := cmd.Flags().GetString("type")
		contractNumber, _ := cmd.Flags().GetString("contract-number")

		work, err := wire.WorkService().StartContracting(cmd.Context(), id, primary.StartContractingRequest{
			ContractingType: contracting,
			ContractNumber:  contractNumber,
		})
		if err != nil {
			return fmt.Errorf("failed to start contracting: %w", err)
		}
		fmt.Printf("✓ Work %d moved to contracting stage\n", work.ID)
		return nil
	},
}

var workAwardCmd = &cobra.Command{
	Use:   "award [work-id]",
	Short: "Award the work to a contractor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		company, _ := cmd.Flags().GetString("company")
		taxID, _ := cmd.Flags().GetString("tax-id")
		fileNumber, _ := cmd.Flags().GetString("file-number")

		work, err := wire.WorkService().Award(cmd.Context(), id, primary.AwardRequest{
			CompanyName: company,
			TaxID:       taxID,
			FileNumber:  fileNumber,
		})
		if err != nil {
			return fmt.Errorf("failed to award work: %w", err)
		}
		fmt.Printf("✓ Work %d awarded to %s\n", work.ID, company)
		return nil
	},
}

var workBeginExecutionCmd = &cobra.Command{
	Use:   "begin-execution [work-id]",
	Short: "Move the work to the in-execution stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		featured, _ := cmd.Flags().GetBool("featured")
		startDate, _ := cmd.Flags().GetString("start")
		endDate, _ := cmd.Flags().GetString("end")
		funding, _ := cmd.Flags().GetString("funding")
		workforce, _ := cmd.Flags().GetInt("workforce")

		req := primary.BeginExecutionRequest{
			Featured:       featured,
			FundingSource:  funding,
			WorkforceCount: workforce,
		}
		if startDate != "" {
			parsed, err := time.Parse("2006-01-02", startDate)
			if err != nil {
				return fmt.Errorf("invalid start date %q, want YYYY-MM-DD", startDate)
			}
			req.StartDate = &parsed
		}
		if endDate != "" {
			parsed, err := time.Parse("2006-01-02", endDate)
			if err != nil {
				return fmt.Errorf("invalid end date %q, want YYYY-MM-DD", endDate)
			}
			req.InitialEndDate = &parsed
		}

		work, err := wire.WorkService().BeginExecution(cmd.Context(), id, req)
		if err != nil {
			return fmt.Errorf("failed to begin execution: %w", err)
		}
		fmt.Printf("✓ Work %d is now in execution\n", work.ID)
		return nil
	},
}

var workProgressCmd = &cobra.Command{
	Use:   "update-progress [work-id] [percent]",
	Short: "Update the physical progress percentage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		percent, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid percentage: %s", args[1])
		}

		work, err := wire.WorkService().UpdateProgress(cmd.Context(), id, percent)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		fmt.Printf("✓ Work %d progress set to %.1f%%\n", work.ID, work.ProgressPercent)
		return nil
	},
}

var workExtendTermCmd = &cobra.Command{
	Use:   "extend-term [work-id] [months]",
	Short: "Extend the contractual term",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		months, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid month count: %s", args[1])
		}

		work, err := wire.WorkService().ExtendTerm(cmd.Context(), id, months)
		if err != nil {
			return fmt.Errorf("failed to extend term: %w", err)
		}
		fmt.Printf("✓ Work %d term is now %d months\n", work.ID, work.TermMonths)
		return nil
	},
}

var workAddWorkforceCmd = &cobra.Command{
	Use:   "add-workforce [work-id] [count]",
	Short: "Add workers to the workforce count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid worker count: %s", args[1])
		}

		work, err := wire.WorkService().AddWorkforce(cmd.Context(), id, count)
		if err != nil {
			return fmt.Errorf("failed to add workforce: %w", err)
		}
		total := 0
		if work.WorkforceCount != nil {
			total = *work.WorkforceCount
		}
		fmt.Printf("✓ Work %d workforce is now %d\n", work.ID, total)
		return nil
	},
}

var workFinishCmd = &cobra.Command{
	Use:   "finish [work-id]",
	Short: "Mark the work as finished",
	Args:  cobra.ExactArgs(1),
	RunE: transitionRunE("finished", func(cmd *cobra.Command, id int64) (*primary.Work, error) {
		return wire.WorkService().Finish(cmd.Context(), id)
	}),
}

var workRescindCmd = &cobra.Command{
	Use:   "rescind [work-id]",
	Short: "Mark the work contract as rescinded",
	Args:  cobra.ExactArgs(1),
	RunE: transitionRunE("rescinded", func(cmd *cobra.Command, id int64) (*primary.Work, error) {
		return wire.WorkService().Rescind(cmd.Context(), id)
	}),
}

func transitionRunE(pastTense string, fn func(*cobra.Command, int64) (*primary.Work, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkID(args[0])
		if err != nil {
			return err
		}
		work, err := fn(cmd, id)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Work %d %s\n", work.ID, pastTense)
		return nil
	}
}

func parseWorkID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid work id: %s", arg)
	}
	return id, nil
}

func printWork(work *primary.Work) {
	fmt.Printf("\nWork: %d\n", work.ID)
	fmt.Printf("Name:        %s\n", work.Name)
	fmt.Printf("Stage:       %s", work.Stage)
	if work.IsFinished {
		fmt.Printf(" %s", color.New(color.FgGreen).Sprint("[finished]"))
	}
	if work.IsRescinded {
		fmt.Printf(" %s", color.New(color.FgRed).Sprint("[rescinded]"))
	}
	fmt.Println()
	fmt.Printf("Type:        %s\n", work.WorkType)
	fmt.Printf("Environment: %s\n", work.Environment)
	fmt.Printf("Amount:      $%s\n", work.ContractAmount)
	fmt.Printf("Progress:    %.1f%%\n", work.ProgressPercent)
	fmt.Printf("Term:        %d months\n", work.TermMonths)
	if work.BidYear > 0 {
		fmt.Printf("Bid year:    %d\n", work.BidYear)
	}
	if work.StartDate != "" {
		fmt.Printf("Start:       %s\n", work.StartDate)
	}
	if work.InitialEndDate != "" {
		fmt.Printf("End (plan):  %s\n", work.InitialEndDate)
	}
	if work.WorkforceCount != nil {
		fmt.Printf("Workforce:   %d\n", *work.WorkforceCount)
	}
	if work.FundingSource != "" {
		fmt.Printf("Funding:     %s\n", work.FundingSource)
	}
	if work.Description != "" {
		fmt.Printf("Description: %s\n", work.Description)
	}
	fmt.Println()
}

// WorkCmd returns the work command with all subcommands
func WorkCmd() *cobra.Command {
	workCreateCmd.Flags().String("description", "", "work description")
	workCreateCmd.Flags().String("environment", "", "urban environment")
	workCreateCmd.Flags().String("type", "", "work type")
	workCreateCmd.Flags().String("contracting", "", "contracting type")
	workCreateCmd.Flags().String("area", "", "responsible government area")
	workCreateCmd.Flags().String("amount", "", "contract amount")
	workCreateCmd.Flags().Int("bid-year", 0, "bidding year")

	workListCmd.Flags().String("stage", "", "filter by stage name")
	workListCmd.Flags().String("type", "", "filter by work type")
	workListCmd.Flags().Int("limit", 0, "maximum rows")

	workStartContractingCmd.Flags().String("type", "", "contracting type")
	workStartContractingCmd.Flags().String("contract-number", "", "contract number for the linked contractor")

	workAwardCmd.Flags().String("company", "", "awarded company name")
	workAwardCmd.Flags().String("tax-id", "", "company tax id (CUIT)")
	workAwardCmd.Flags().String("file-number", "", "award file number")
	workAwardCmd.MarkFlagRequired("company")

	workBeginExecutionCmd.Flags().Bool("featured", false, "mark as featured work")
	workBeginExecutionCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	workBeginExecutionCmd.Flags().String("end", "", "planned end date (YYYY-MM-DD)")
	workBeginExecutionCmd.Flags().String("funding", "", "funding source")
	workBeginExecutionCmd.Flags().Int("workforce", 0, "initial workforce count")

	workCmd.AddCommand(workCreateCmd)
	workCmd.AddCommand(workShowCmd)
	workCmd.AddCommand(workListCmd)
	workCmd.AddCommand(workStartProjectCmd)
	workCmd.AddCommand(workStartContractingCmd)
	workCmd.AddCommand(workAwardCmd)
	workCmd.AddCommand(workBeginExecutionCmd)
	workCmd.AddCommand(workProgressCmd)
	workCmd.AddCommand(workExtendTermCmd)
	workCmd.AddCommand(workAddWorkforceCmd)
	workCmd.AddCommand(workFinishCmd)
	workCmd.AddCommand(workRescindCmd)
	return workCmd
}
