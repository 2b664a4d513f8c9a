package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/costmn/costmn-go/pkg/costmn"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [month year]",
		Short: "Show the budget the resolver picks, or an explicit month",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			page := costmn.NewPage(client.Budgets)

			if len(args) == 2 {
				month, err := parseMonthArgs(args)
				if err != nil {
					return err
				}
				if err := page.GoToMonth(cmd.Context(), month); err != nil {
					return err
				}
			} else if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if page.Stats() == nil {
				fmt.Fprintf(out, "No budget for %s yet. Run `costmn sample` to create one.\n", page.Active())
			} else {
				renderStats(out, page.Active(), page.Stats())
			}
			renderPending(out, page.Pending())
			return nil
		},
	}

	return cmd
}

func parseMonthArgs(args []string) (costmn.YearMonth, error) {
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return costmn.YearMonth{}, fmt.Errorf("invalid month %q", args[0])
	}
	year, err := strconv.Atoi(args[1])
	if err != nil {
		return costmn.YearMonth{}, fmt.Errorf("invalid year %q", args[1])
	}
	return costmn.NewYearMonth(month, year)
}
