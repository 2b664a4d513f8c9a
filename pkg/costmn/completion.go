package costmn

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// GapPrompt is the context the gap dialog needs: which month is being
// completed, the server's notion of the present month, and how far apart
// they are.
type GapPrompt struct {
	Completing YearMonth
	Current    YearMonth
	MonthsDiff int
}

func newGapPrompt(completing YearMonth, gap *Gap) GapPrompt {
	return GapPrompt{
		Completing: completing,
		Current:    gap.Suggestion.Current,
		MonthsDiff: gap.MonthsDiff,
	}
}

// CurrentOption is the "seed the present month" choice
func (p GapPrompt) CurrentOption() YearMonth {
	return p.Current
}

// NextOption is the "seed the chronological successor" choice: the month
// immediately after the one being completed, with year rollover
func (p GapPrompt) NextOption() YearMonth {
	return p.Completing.Next()
}

// Resolution maps a chosen action to the full resolution payload,
// filling in the target month the action implies
func (p GapPrompt) Resolution(action GapAction) (GapResolution, error) {
	switch action {
	case GapActionCreateCurrent:
		return ResolveCreateCurrent(p.CurrentOption()), nil
	case GapActionCreateNext:
		return ResolveCreateNext(p.NextOption()), nil
	case GapActionSkip:
		return ResolveSkip(), nil
	default:
		return GapResolution{}, &ValidationError{Field: "action", Message: "unknown gap action " + string(action)}
	}
}

// CompletionOutcome is the result of one completion attempt. When Gap is
// non-nil the budget is NOT completed yet: the server wants a gap
// resolution first.
type CompletionOutcome struct {
	Completed *Budget
	Next      *Budget
	Gap       *GapPrompt
	Message   string
}

// CompletionTracker runs budget completions while tracking an in-flight
// set keyed by budget id: re-submitting one budget's completion is
// rejected, but completions of distinct budgets may overlap freely since
// they are independent server-side keys.
type CompletionTracker struct {
	budgets BudgetService

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCompletionTracker creates a tracker over the budget service
func NewCompletionTracker(budgets BudgetService) *CompletionTracker {
	return &CompletionTracker{
		budgets:  budgets,
		inFlight: make(map[string]struct{}),
	}
}

// InFlight reports whether a completion for the budget id is running,
// so its control can render a busy state without blocking others
func (t *CompletionTracker) InFlight(budgetID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inFlight[budgetID]
	return ok
}

func (t *CompletionTracker) begin(budgetID string) bool {
	if budgetID == "" {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inFlight[budgetID]; ok {
		return false
	}
	t.inFlight[budgetID] = struct{}{}
	return true
}

func (t *CompletionTracker) end(budgetID string) {
	if budgetID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, budgetID)
}

// Complete finalizes one budget. On error the budget stays open; the
// server is the source of truth for whether completion happened.
func (t *CompletionTracker) Complete(ctx context.Context, budget *Budget) (*CompletionOutcome, error) {
	if budget == nil {
		return nil, &ValidationError{Field: "budget", Message: "missing budget"}
	}
	if !t.begin(budget.ID) {
		return nil, ErrCompletionInFlight
	}
	defer t.end(budget.ID)

	return t.completeMonth(ctx, budget.YearMonth())
}

// CompleteMonth finalizes a month directly, for callers holding only a
// (month, year) and no budget handle
func (t *CompletionTracker) CompleteMonth(ctx context.Context, month YearMonth) (*CompletionOutcome, error) {
	return t.completeMonth(ctx, month)
}

func (t *CompletionTracker) completeMonth(ctx context.Context, month YearMonth) (*CompletionOutcome, error) {
	result, err := t.budgets.Complete(ctx, month)
	if err != nil {
		return nil, err
	}

	outcome := &CompletionOutcome{
		Completed: result.CompletedBudget,
		Next:      result.NextBudget,
		Message:   result.Message,
	}
	if result.Gap != nil {
		prompt := newGapPrompt(month, result.Gap)
		outcome.Gap = &prompt
	}
	return outcome, nil
}

// ResolveGap sends the user's choice for a previously detected gap
func (t *CompletionTracker) ResolveGap(ctx context.Context, completing YearMonth, resolution GapResolution) (*CompletionOutcome, error) {
	result, err := t.budgets.CompleteWithGap(ctx, completing, resolution)
	if err != nil {
		return nil, err
	}

	return &CompletionOutcome{
		Completed: result.CompletedBudget,
		Next:      result.NextBudget,
		Message:   result.Message,
	}, nil
}

// PendingCompletion pairs one pending budget with its completion outcome
// or error
type PendingCompletion struct {
	Budget  *Budget
	Outcome *CompletionOutcome
	Err     error
}

// CompleteAllPending completes every pending budget, at most limit at a
// time (0 means unbounded). Budgets whose completion reports a gap are
// returned with the gap outcome for the caller to resolve one by one.
// Individual failures don't abort the rest.
func (t *CompletionTracker) CompleteAllPending(ctx context.Context, pending []*Budget, limit int) []*PendingCompletion {
	results := make([]*PendingCompletion, len(pending))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, budget := range pending {
		i, budget := i, budget
		g.Go(func() error {
			outcome, err := t.Complete(ctx, budget)
			results[i] = &PendingCompletion{Budget: budget, Outcome: outcome, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
