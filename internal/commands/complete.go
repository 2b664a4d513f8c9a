package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/costmn/costmn-go/pkg/costmn"
)

func costmnTracker(client *costmn.Client) *costmn.CompletionTracker {
	return costmn.NewCompletionTracker(client.Budgets)
}

func newCompleteCommand(opts *rootOptions) *cobra.Command {
	var gapAction string

	cmd := &cobra.Command{
		Use:   "complete <month> <year>",
		Short: "Finalize a budget month, rolling unspent amounts forward",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			tracker := costmnTracker(client)
			out := cmd.OutOrStdout()

			outcome, err := tracker.CompleteMonth(cmd.Context(), month)
			if err != nil {
				return err
			}

			if outcome.Gap == nil {
				printOutcome(out, month, outcome)
				return nil
			}

			prompt := outcome.Gap
			if gapAction == "" {
				fmt.Fprintf(out, "Budget %s is %d months behind %s. Re-run with --gap-action:\n",
					month, prompt.MonthsDiff, prompt.Current)
				fmt.Fprintf(out, "  create_current  create a budget for %s\n", prompt.CurrentOption())
				fmt.Fprintf(out, "  create_next     create a budget for %s\n", prompt.NextOption())
				fmt.Fprintln(out, "  skip            complete without creating one")
				return nil
			}

			resolution, err := prompt.Resolution(costmn.GapAction(gapAction))
			if err != nil {
				return err
			}
			outcome, err = tracker.ResolveGap(cmd.Context(), month, resolution)
			if err != nil {
				return err
			}
			printOutcome(out, month, outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&gapAction, "gap-action", "", "gap resolution: create_current, create_next or skip")

	return cmd
}

func printOutcome(out io.Writer, month costmn.YearMonth, outcome *costmn.CompletionOutcome) {
	fmt.Fprintf(out, "Completed budget %s\n", month)
	if outcome.Next != nil {
		fmt.Fprintf(out, "Created budget %s with carried-over amounts\n", outcome.Next.YearMonth())
	}
	if outcome.Message != "" {
		fmt.Fprintln(out, outcome.Message)
	}
}
