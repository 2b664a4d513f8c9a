package costmn

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/costmn/costmn-go/internal/types"
)

// Session represents an authenticated session
type Session = types.Session

// Logger interface for logging
type Logger = types.Logger

// Category is one of the fixed spending categories the backend tracks.
// The strings are the backend's canonical labels; `spent` accumulation is
// keyed by them, so they must match byte for byte.
type Category string

const (
	CategoryFood          Category = "Ăn uống"
	CategoryTransport     Category = "Đi lại"
	CategoryEntertainment Category = "Giải trí"
	CategoryBills         Category = "Hóa đơn"
	CategoryShopping      Category = "Mua sắm"
	CategoryHealthcare    Category = "Y tế"
	CategoryEducation     Category = "Giáo dục"
	CategoryOther         Category = "Khác"
)

// Categories returns the full category set in display order
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryShopping,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// ValidCategory reports whether c belongs to the fixed category set
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// JarColors is the fixed display palette; new jars cycle through it
var JarColors = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#F97316", "#06B6D4", "#84CC16",
	"#EC4899", "#6366F1", "#14B8A6", "#F43F5E",
}

// BudgetJar is one allocation bucket within a month's budget
type BudgetJar struct {
	ID           string          `json:"_id,omitempty"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	CarryOver    decimal.Decimal `json:"carryOver"`

	// Remaining and Percentage are derived server-side and only populated
	// on stats responses
	Remaining  decimal.Decimal `json:"remaining,omitempty"`
	Percentage float64         `json:"percentage,omitempty"`

	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}

// Available is the full amount the jar can spend this month
func (j *BudgetJar) Available() decimal.Decimal {
	return j.BudgetAmount.Add(j.CarryOver)
}

// DerivedRemaining recomputes remaining from the raw fields:
// budgetAmount + carryOver - spent
func (j *BudgetJar) DerivedRemaining() decimal.Decimal {
	return j.Available().Sub(j.Spent)
}

// DerivedPercentage recomputes the spend percentage from the raw fields,
// reporting 0 when nothing is allocated
func (j *BudgetJar) DerivedPercentage() float64 {
	available := j.Available()
	if available.IsZero() {
		return 0
	}
	pct, _ := j.Spent.Div(available).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// Budget is one calendar month's allocation set for one user
type Budget struct {
	ID          string          `json:"_id,omitempty"`
	UserID      string          `json:"userId,omitempty"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	Jars        []*BudgetJar    `json:"jars"`
	IsCompleted bool            `json:"isCompleted"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// YearMonth returns the budget's natural key
func (b *Budget) YearMonth() YearMonth {
	return YearMonth{Month: b.Month, Year: b.Year}
}

// UnspentRemainder sums budgetAmount - spent across jars; the pending
// banner shows it as the amount a completion would roll forward
func (b *Budget) UnspentRemainder() decimal.Decimal {
	total := decimal.Zero
	for _, jar := range b.Jars {
		total = total.Add(jar.BudgetAmount.Sub(jar.Spent))
	}
	return total
}

// BudgetStats is the aggregated view for one month
type BudgetStats struct {
	TotalBudget    decimal.Decimal `json:"totalBudget"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	TotalCarryOver decimal.Decimal `json:"totalCarryOver"`
	Jars           []*BudgetJar    `json:"jars"`
}

// SmartBudget pairs the budget the user should be looking at with the
// set of past months still awaiting completion
type SmartBudget struct {
	Budget         *Budget   `json:"budget"`
	PendingBudgets []*Budget `json:"pendingBudgets"`
}

// User is an account profile
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}
