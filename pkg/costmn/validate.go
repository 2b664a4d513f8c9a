package costmn

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidateJarInputs enforces the editor invariants on a jar set about to
// be saved:
//
//   - every jar carries a known category, and no category appears twice
//   - budget amounts are non-negative
//   - sum(jar.budgetAmount) <= totalBudget
//
// A violation is reported as a *ValidationError and blocks the save; no
// partial set is ever sent to the server.
func ValidateJarInputs(totalBudget decimal.Decimal, jars []*JarInput) error {
	if totalBudget.IsNegative() {
		return &ValidationError{Field: "totalBudget", Message: "total budget cannot be negative"}
	}

	seen := make(map[Category]bool, len(jars))
	allocated := decimal.Zero

	for i, jar := range jars {
		if jar == nil {
			return &ValidationError{Field: fmt.Sprintf("jars[%d]", i), Message: "missing jar"}
		}
		if !ValidCategory(jar.Category) {
			return &ValidationError{
				Field:   fmt.Sprintf("jars[%d].category", i),
				Message: fmt.Sprintf("unknown category %q", jar.Category),
			}
		}
		if seen[jar.Category] {
			return &ValidationError{
				Field:   fmt.Sprintf("jars[%d].category", i),
				Message: fmt.Sprintf("category %q is used by another jar", jar.Category),
			}
		}
		seen[jar.Category] = true

		if jar.BudgetAmount.IsNegative() {
			return &ValidationError{
				Field:   fmt.Sprintf("jars[%d].budgetAmount", i),
				Message: "budget amount cannot be negative",
			}
		}
		allocated = allocated.Add(jar.BudgetAmount)
	}

	if allocated.GreaterThan(totalBudget) {
		return &ValidationError{
			Field: "totalBudget",
			Message: fmt.Sprintf("jar allocations (%s) exceed total budget (%s)",
				allocated.StringFixed(0), totalBudget.StringFixed(0)),
		}
	}

	return nil
}
