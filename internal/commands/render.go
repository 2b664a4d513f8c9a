package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/costmn/costmn-go/pkg/costmn"
)

// formatVND renders an amount with thousands separators, the way the
// dashboard displays Vietnamese đồng.
func formatVND(amount decimal.Decimal) string {
	s := amount.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + " ₫"
	if neg {
		out = "-" + out
	}
	return out
}

func renderStats(w io.Writer, month costmn.YearMonth, stats *costmn.BudgetStats) {
	fmt.Fprintf(w, "Budget %s\n", month)
	fmt.Fprintf(w, "  Total:     %s\n", formatVND(stats.TotalBudget))
	fmt.Fprintf(w, "  Spent:     %s\n", formatVND(stats.TotalSpent))
	fmt.Fprintf(w, "  Remaining: %s\n", formatVND(stats.TotalRemaining))
	if !stats.TotalCarryOver.IsZero() {
		fmt.Fprintf(w, "  Carry-over: %s\n", formatVND(stats.TotalCarryOver))
	}

	if len(stats.Jars) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, jar := range stats.Jars {
		marker := " "
		if !jar.IsActive {
			marker = "-"
		}
		fmt.Fprintf(w, "  %s %-22s %10s / %-10s (%.0f%%)\n",
			marker, jar.Name, formatVND(jar.Spent), formatVND(jar.Available()), jar.Percentage)
	}
}

func renderPending(w io.Writer, pending []*costmn.Budget) {
	if len(pending) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d month(s) awaiting completion:\n", len(pending))
	for _, b := range pending {
		fmt.Fprintf(w, "  %-8s unspent %s\n", b.YearMonth(), formatVND(b.UnspentRemainder()))
	}
	fmt.Fprintln(w, "Run `costmn complete <month> <year>` to finalize one.")
}
