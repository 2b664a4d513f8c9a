package costmn

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// monthQuery encodes an optional (month, year) pair
func monthQuery(month *YearMonth) url.Values {
	query := url.Values{}
	if month != nil {
		query.Set("month", strconv.Itoa(month.Month))
		query.Set("year", strconv.Itoa(month.Year))
	}
	return query
}

// Current retrieves one month's budget
func (s *budgetService) Current(ctx context.Context, month *YearMonth) (*Budget, error) {
	var result struct {
		Budget *Budget `json:"budget"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/budget/current", monthQuery(month), nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get current budget")
	}

	return result.Budget, nil
}

// Upsert creates or replaces the budget for (month, year)
func (s *budgetService) Upsert(ctx context.Context, params *UpsertBudgetParams) (*Budget, error) {
	if params == nil {
		return nil, &ValidationError{Field: "params", Message: "missing budget parameters"}
	}
	if _, err := NewYearMonth(params.Month, params.Year); err != nil {
		return nil, &ValidationError{Field: "month", Message: err.Error()}
	}
	// The jar invariants are enforced here, before any network call; the
	// server re-validates on its side.
	if err := ValidateJarInputs(params.TotalBudget, params.Jars); err != nil {
		return nil, err
	}

	var result struct {
		Budget *Budget `json:"budget"`
	}

	if err := s.client.do(ctx, http.MethodPost, "/budget", nil, params, &result); err != nil {
		return nil, errors.Wrap(err, "failed to save budget")
	}

	return result.Budget, nil
}

// Stats retrieves aggregated totals for one month
func (s *budgetService) Stats(ctx context.Context, month *YearMonth) (*BudgetStats, error) {
	var result struct {
		Stats *BudgetStats `json:"stats"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/budget/stats", monthQuery(month), nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budget stats")
	}

	return result.Stats, nil
}

// History retrieves all budgets for a year
func (s *budgetService) History(ctx context.Context, year int) ([]*Budget, error) {
	query := url.Values{}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var result struct {
		Budgets []*Budget `json:"budgets"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/budget/history", query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budget history")
	}

	return result.Budgets, nil
}

// Pending retrieves incomplete budgets for past months
func (s *budgetService) Pending(ctx context.Context) ([]*Budget, error) {
	var result struct {
		Budgets []*Budget `json:"budgets"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/budget/pending", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get pending budgets")
	}

	return result.Budgets, nil
}

// Smart retrieves the budget the user should be looking at plus the
// pending set in one round trip
func (s *budgetService) Smart(ctx context.Context) (*SmartBudget, error) {
	var result SmartBudget

	if err := s.client.do(ctx, http.MethodGet, "/budget/smart", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get smart budget")
	}

	if result.PendingBudgets == nil {
		result.PendingBudgets = []*Budget{}
	}

	return &result, nil
}

// Complete finalizes a budget month
func (s *budgetService) Complete(ctx context.Context, month YearMonth) (*CompletionResult, error) {
	if !month.Valid() {
		return nil, &ValidationError{Field: "month", Message: "invalid month " + month.String()}
	}

	body := map[string]int{
		"month": month.Month,
		"year":  month.Year,
	}

	var result CompletionResult
	if err := s.client.do(ctx, http.MethodPost, "/budget/complete", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to complete budget month")
	}

	return &result, nil
}

// CompleteWithGap resolves a previously returned gap
func (s *budgetService) CompleteWithGap(ctx context.Context, month YearMonth, resolution GapResolution) (*CompletionResult, error) {
	if !month.Valid() {
		return nil, &ValidationError{Field: "month", Message: "invalid month " + month.String()}
	}
	if err := resolution.Validate(); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"month":  month.Month,
		"year":   month.Year,
		"action": resolution.Action,
	}
	if resolution.Target != nil {
		body["targetMonth"] = resolution.Target.Month
		body["targetYear"] = resolution.Target.Year
	}

	var result CompletionResult
	if err := s.client.do(ctx, http.MethodPost, "/budget/complete-gap", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to complete budget with gap")
	}

	return &result, nil
}

// SampleBudgetParams builds the six-jar starter budget offered when a
// user has no budget for the month yet (10,000,000 VND total)
func SampleBudgetParams(month YearMonth) *UpsertBudgetParams {
	jar := func(name string, category Category, amount int64, color string) *JarInput {
		return &JarInput{
			Name:         name,
			Category:     category,
			BudgetAmount: decimal.NewFromInt(amount),
			Spent:        decimal.Zero,
			CarryOver:    decimal.Zero,
			Color:        color,
			IsActive:     true,
		}
	}

	return &UpsertBudgetParams{
		Month:       month.Month,
		Year:        month.Year,
		TotalBudget: decimal.NewFromInt(10_000_000),
		Jars: []*JarInput{
			jar("Ăn uống hàng ngày", CategoryFood, 3_000_000, "#3B82F6"),
			jar("Chi phí đi lại", CategoryTransport, 1_500_000, "#EF4444"),
			jar("Hóa đơn điện nước", CategoryBills, 2_000_000, "#10B981"),
			jar("Mua sắm cá nhân", CategoryShopping, 1_500_000, "#F59E0B"),
			jar("Giải trí & Thư giãn", CategoryEntertainment, 1_000_000, "#8B5CF6"),
			jar("Dự phòng khẩn cấp", CategoryOther, 1_000_000, "#06B6D4"),
		},
	}
}
