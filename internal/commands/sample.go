package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costmn/costmn-go/pkg/costmn"
)

func newSampleCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [month year]",
		Short: "Create the six-jar starter budget for a month",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := costmn.CurrentYearMonth(nil)
			if len(args) == 2 {
				var err error
				month, err = parseMonthArgs(args)
				if err != nil {
					return err
				}
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			budget, err := client.Budgets.Upsert(cmd.Context(), costmn.SampleBudgetParams(month))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created sample budget %s with %d jars, total %s\n",
				budget.YearMonth(), len(budget.Jars), formatVND(budget.TotalBudget))
			return nil
		},
	}

	return cmd
}
