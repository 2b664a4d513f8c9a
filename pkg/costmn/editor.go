package costmn

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Editor is the draft model behind the budget edit form. It builds or
// modifies the jar list for one (month, year) and persists it atomically:
// a save replaces the full jar set server-side, never a partial patch.
type Editor struct {
	month YearMonth
	total decimal.Decimal
	jars  []*JarInput
}

// NewEditor opens an empty draft for a month with no budget yet
func NewEditor(month YearMonth) *Editor {
	return &Editor{month: month}
}

// NewEditorFromStats seeds the draft from the month's current stats,
// keeping spent and carry-over so the server does not lose them on upsert
func NewEditorFromStats(month YearMonth, stats *BudgetStats) *Editor {
	e := &Editor{month: month}
	if stats == nil {
		return e
	}
	e.total = stats.TotalBudget
	for _, jar := range stats.Jars {
		e.jars = append(e.jars, &JarInput{
			Name:         jar.Name,
			Category:     jar.Category,
			BudgetAmount: jar.BudgetAmount,
			Spent:        jar.Spent,
			CarryOver:    jar.CarryOver,
			Color:        jar.Color,
			IsActive:     jar.IsActive,
		})
	}
	return e
}

// Month returns the (month, year) the draft edits
func (e *Editor) Month() YearMonth {
	return e.month
}

// Total returns the draft's total budget
func (e *Editor) Total() decimal.Decimal {
	return e.total
}

// SetTotal updates the draft's total budget
func (e *Editor) SetTotal(total decimal.Decimal) {
	e.total = total
}

// Jars returns the draft jars in order
func (e *Editor) Jars() []*JarInput {
	return e.jars
}

// usedCategories collects categories already assigned, optionally
// ignoring one jar index (the jar being re-categorized)
func (e *Editor) usedCategories(ignore int) map[Category]bool {
	used := make(map[Category]bool, len(e.jars))
	for i, jar := range e.jars {
		if i == ignore {
			continue
		}
		used[jar.Category] = true
	}
	return used
}

// AvailableCategories lists categories not yet assigned to any jar
func (e *Editor) AvailableCategories() []Category {
	used := e.usedCategories(-1)
	var available []Category
	for _, c := range Categories() {
		if !used[c] {
			available = append(available, c)
		}
	}
	return available
}

// AddJar appends a jar for the first unused category, cycling the color
// palette. Fails once every category is represented.
func (e *Editor) AddJar() (*JarInput, error) {
	available := e.AvailableCategories()
	if len(available) == 0 {
		return nil, &ValidationError{Field: "jars", Message: "all categories are already in use"}
	}

	jar := &JarInput{
		Name:         string(available[0]),
		Category:     available[0],
		BudgetAmount: decimal.Zero,
		Spent:        decimal.Zero,
		CarryOver:    decimal.Zero,
		Color:        JarColors[len(e.jars)%len(JarColors)],
		IsActive:     true,
	}
	e.jars = append(e.jars, jar)
	return jar, nil
}

// RemoveJar deletes the jar at index i
func (e *Editor) RemoveJar(i int) error {
	if i < 0 || i >= len(e.jars) {
		return &ValidationError{Field: "jars", Message: fmt.Sprintf("no jar at index %d", i)}
	}
	e.jars = append(e.jars[:i], e.jars[i+1:]...)
	return nil
}

// SetJarName renames the jar at index i
func (e *Editor) SetJarName(i int, name string) error {
	jar, err := e.jar(i)
	if err != nil {
		return err
	}
	jar.Name = name
	return nil
}

// SetJarCategory re-binds the jar at index i to a category, rejecting
// categories already held by another jar
func (e *Editor) SetJarCategory(i int, category Category) error {
	jar, err := e.jar(i)
	if err != nil {
		return err
	}
	if !ValidCategory(category) {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", category)}
	}
	if e.usedCategories(i)[category] {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("category %q is used by another jar", category)}
	}
	jar.Category = category
	return nil
}

// SetJarAmount updates the jar's monthly allocation
func (e *Editor) SetJarAmount(i int, amount decimal.Decimal) error {
	jar, err := e.jar(i)
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		return &ValidationError{Field: "budgetAmount", Message: "budget amount cannot be negative"}
	}
	jar.BudgetAmount = amount
	return nil
}

// SetJarColor updates the jar's display color
func (e *Editor) SetJarColor(i int, color string) error {
	jar, err := e.jar(i)
	if err != nil {
		return err
	}
	jar.Color = color
	return nil
}

// SetJarActive toggles spend tracking for the jar
func (e *Editor) SetJarActive(i int, active bool) error {
	jar, err := e.jar(i)
	if err != nil {
		return err
	}
	jar.IsActive = active
	return nil
}

func (e *Editor) jar(i int) (*JarInput, error) {
	if i < 0 || i >= len(e.jars) {
		return nil, &ValidationError{Field: "jars", Message: fmt.Sprintf("no jar at index %d", i)}
	}
	return e.jars[i], nil
}

// Allocated sums the draft jars' budget amounts
func (e *Editor) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, jar := range e.jars {
		sum = sum.Add(jar.BudgetAmount)
	}
	return sum
}

// Validate checks the draft against the save invariants
func (e *Editor) Validate() error {
	return ValidateJarInputs(e.total, e.jars)
}

// Params builds the upsert request for the draft
func (e *Editor) Params() *UpsertBudgetParams {
	return &UpsertBudgetParams{
		Month:       e.month.Month,
		Year:        e.month.Year,
		TotalBudget: e.total,
		Jars:        e.jars,
	}
}

// Save validates the draft and persists it. A validation failure blocks
// the save before any network call.
func (e *Editor) Save(ctx context.Context, budgets BudgetService) (*Budget, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return budgets.Upsert(ctx, e.Params())
}
