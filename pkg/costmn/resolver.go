package costmn

import (
	"context"

	"github.com/pkg/errors"
)

// Resolution is what the smart resolver decided the budget view should
// show. Budget is nil when no budgets exist at all; Pending is always
// populated so the completion banner can render regardless.
type Resolution struct {
	Budget  *Budget
	Stats   *BudgetStats
	Active  *YearMonth
	Pending []*Budget
}

// Empty reports whether there is nothing to show and the view should
// offer budget creation instead
func (r *Resolution) Empty() bool {
	return r.Budget == nil
}

// SmartResolver decides which (month, year) the budget view displays on
// entry, without the user navigating manually: the latest incomplete
// budget when one exists, else the server's default for the current month.
type SmartResolver struct {
	budgets BudgetService
}

// NewSmartResolver creates a resolver over the budget service
func NewSmartResolver(budgets BudgetService) *SmartResolver {
	return &SmartResolver{budgets: budgets}
}

// Resolve asks the server for the smart budget and pending set in one
// round trip, then fetches stats for the adopted month
func (r *SmartResolver) Resolve(ctx context.Context) (*Resolution, error) {
	smart, err := r.budgets.Smart(ctx)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Pending: smart.PendingBudgets}
	if res.Pending == nil {
		res.Pending = []*Budget{}
	}

	if smart.Budget == nil {
		return res, nil
	}

	active := smart.Budget.YearMonth()
	stats, err := r.budgets.Stats(ctx, &active)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stats for resolved budget")
	}

	res.Budget = smart.Budget
	res.Stats = stats
	res.Active = &active
	return res, nil
}
