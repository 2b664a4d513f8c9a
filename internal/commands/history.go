package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [year]",
		Short: "List budgets for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := 0
			if len(args) == 1 {
				var err error
				year, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			budgets, err := client.Budgets.History(cmd.Context(), year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				fmt.Fprintln(out, "No budgets found.")
				return nil
			}
			for _, b := range budgets {
				status := "open"
				if b.IsCompleted {
					status = "completed"
				}
				fmt.Fprintf(out, "%-8s %-10s total %s, %d jars\n",
					b.YearMonth(), status, formatVND(b.TotalBudget), len(b.Jars))
			}
			return nil
		},
	}

	return cmd
}
