package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/costmn/costmn-go/pkg/costmn"
)

func newSetCommand(opts *rootOptions) *cobra.Command {
	var total string
	var jarSpecs []string

	cmd := &cobra.Command{
		Use:   "set <month> <year>",
		Short: "Edit a month's total budget and jar allocations",
		Long: `Edit a month's budget. Jar allocations are given as category=amount
pairs; categories not mentioned keep their current allocation, unknown
categories get a new jar.

  costmn set 6 2025 --total 12000000 --jar "Ăn uống=3500000" --jar "Đi lại=1000000"`,
		Args: cobra.ExactArgs(2),
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

			// Seed the draft from current stats so spent and carry-over
			// survive the upsert
			stats, err := client.Budgets.Stats(cmd.Context(), &month)
			if err != nil && !costmn.IsConnectionError(err) {
				stats = nil
			} else if err != nil {
				return err
			}

			editor := costmn.NewEditorFromStats(month, stats)

			if total != "" {
				amount, err := decimal.NewFromString(total)
				if err != nil {
					return fmt.Errorf("invalid total %q", total)
				}
				editor.SetTotal(amount)
			}

			for _, spec := range jarSpecs {
				if err := applyJarSpec(editor, spec); err != nil {
					return err
				}
			}

			budget, err := editor.Save(cmd.Context(), client.Budgets)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved budget %s: total %s, %d jars\n",
				budget.YearMonth(), formatVND(budget.TotalBudget), len(budget.Jars))
			return nil
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "total budget for the month")
	cmd.Flags().StringArrayVar(&jarSpecs, "jar", nil, "jar allocation as category=amount (repeatable)")

	return cmd
}

func applyJarSpec(editor *costmn.Editor, spec string) error {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid jar spec %q, want category=amount", spec)
	}
	category := costmn.Category(strings.TrimSpace(parts[0]))
	amount, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("invalid amount in jar spec %q", spec)
	}
	if !costmn.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}

	for i, jar := range editor.Jars() {
		if jar.Category == category {
			return editor.SetJarAmount(i, amount)
		}
	}

	jar, err := editor.AddJar()
	if err != nil {
		return err
	}
	jars := editor.Jars()
	idx := len(jars) - 1
	if jar.Category != category {
		if err := editor.SetJarCategory(idx, category); err != nil {
			return err
		}
		if err := editor.SetJarName(idx, string(category)); err != nil {
			return err
		}
	}
	return editor.SetJarAmount(idx, amount)
}
