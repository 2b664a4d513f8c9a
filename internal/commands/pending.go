package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPendingCommand(opts *rootOptions) *cobra.Command {
	var completeAll bool
	var parallel int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List past months still awaiting completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			pending, err := client.Budgets.Pending(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, "Nothing pending.")
				return nil
			}
			renderPending(out, pending)

			if !completeAll {
				return nil
			}

			tracker := costmnTracker(client)
			results := tracker.CompleteAllPending(cmd.Context(), pending, parallel)
			for _, r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(out, "  %s: failed: %v\n", r.Budget.YearMonth(), r.Err)
				case r.Outcome.Gap != nil:
					fmt.Fprintf(out, "  %s: gap of %d months, resolve with `costmn complete %d %d --gap-action ...`\n",
						r.Budget.YearMonth(), r.Outcome.Gap.MonthsDiff, r.Budget.Month, r.Budget.Year)
				default:
					fmt.Fprintf(out, "  %s: completed\n", r.Budget.YearMonth())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&completeAll, "complete-all", false, "complete every pending month")
	cmd.Flags().IntVar(&parallel, "parallel", 2, "max completions in flight with --complete-all")

	return cmd
}
