package costmn

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Gap describes a multi-month discontinuity reported by the completion
// endpoint: the month being completed is more than one calendar month
// behind the present, so the server wants an explicit choice about how to
// seed the next budget instead of auto-creating it.
type Gap struct {
	MonthsDiff int           `json:"monthsDiff"`
	Suggestion GapSuggestion `json:"suggestion"`
}

// GapSuggestion carries the two candidate months the user may pick
type GapSuggestion struct {
	Current YearMonth `json:"current"`
	Next    YearMonth `json:"next"`
}

// CompletionResult is the response of both completion endpoints
type CompletionResult struct {
	Message         string  `json:"message"`
	CompletedBudget *Budget `json:"completedBudget"`
	NextBudget      *Budget `json:"nextBudget,omitempty"`
	Gap             *Gap    `json:"gap,omitempty"`
}

// GapAction selects how a gap is resolved
type GapAction string

const (
	// GapActionCreateCurrent seeds a budget for the present calendar month
	GapActionCreateCurrent GapAction = "create_current"

	// GapActionCreateNext seeds a budget for the month immediately
	// following the one just completed
	GapActionCreateNext GapAction = "create_next"

	// GapActionSkip completes the month without creating a successor
	GapActionSkip GapAction = "skip"
)

// GapResolution is the user's closed choice for resolving a gap. Target
// is required for the create actions and must be nil for skip.
type GapResolution struct {
	Action GapAction
	Target *YearMonth
}

// ResolveCreateCurrent builds a resolution seeding the present month
func ResolveCreateCurrent(target YearMonth) GapResolution {
	return GapResolution{Action: GapActionCreateCurrent, Target: &target}
}

// ResolveCreateNext builds a resolution seeding the chronological successor
func ResolveCreateNext(target YearMonth) GapResolution {
	return GapResolution{Action: GapActionCreateNext, Target: &target}
}

// ResolveSkip builds a resolution that creates nothing
func ResolveSkip() GapResolution {
	return GapResolution{Action: GapActionSkip}
}

// Validate rejects malformed resolutions before any network call
func (r GapResolution) Validate() error {
	switch r.Action {
	case GapActionCreateCurrent, GapActionCreateNext:
		if r.Target == nil {
			return &ValidationError{Field: "target", Message: fmt.Sprintf("action %q requires a target month", r.Action)}
		}
		if !r.Target.Valid() {
			return &ValidationError{Field: "target", Message: fmt.Sprintf("invalid target month %s", r.Target)}
		}
	case GapActionSkip:
		if r.Target != nil {
			return &ValidationError{Field: "target", Message: "skip takes no target month"}
		}
	default:
		return &ValidationError{Field: "action", Message: fmt.Sprintf("unknown gap action %q", r.Action)}
	}
	return nil
}

// JarInput is one jar in an upsert request. Server-derived fields are
// deliberately absent: the backend recomputes spent and carry-over.
type JarInput struct {
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	CarryOver    decimal.Decimal `json:"carryOver"`
	Color        string          `json:"color"`
	IsActive     bool            `json:"isActive"`
}

// UpsertBudgetParams replaces the full jar set for one (month, year)
type UpsertBudgetParams struct {
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	Jars        []*JarInput     `json:"jars"`
}
