package costmn

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money in from money out
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single income or expense record
type Transaction struct {
	ID          string          `json:"_id,omitempty"`
	Date        Date            `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
}

// CreateTransactionParams creates a new transaction
type CreateTransactionParams struct {
	Date        Date            `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
}

// UpdateTransactionParams patches an existing transaction; nil fields
// are left unchanged
type UpdateTransactionParams struct {
	Date        *Date            `json:"date,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// TransactionFilter narrows a transaction listing. Zero values and the
// literal "all" are treated as unset, matching the dashboard's filter
// dropdowns.
type TransactionFilter struct {
	Type      string
	Category  string
	Keyword   string
	StartDate Date
	EndDate   Date
}

func (f *TransactionFilter) values() url.Values {
	query := url.Values{}
	if f == nil {
		return query
	}
	set := func(key, value string) {
		if value != "" && value != "all" {
			query.Set(key, value)
		}
	}
	set("type", f.Type)
	set("category", f.Category)
	set("keyword", f.Keyword)
	set("startDate", f.StartDate.String())
	set("endDate", f.EndDate.String())
	return query
}

// OverviewStats holds dashboard-level totals
type OverviewStats struct {
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	AverageDaily         decimal.Decimal `json:"averageDaily"`
	ComparisonPercentage float64         `json:"comparisonPercentage"`
}

// CategoryTotal is one slice of the per-category expense breakdown
type CategoryTotal struct {
	Category string          `json:"_id"`
	Total    decimal.Decimal `json:"total"`
}

// DailyTotal is one day's total in the day-of-month heatmap
type DailyTotal struct {
	Day   int             `json:"_id"`
	Total decimal.Decimal `json:"total"`
}

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// Query returns a transaction query builder
func (s *transactionService) Query() TransactionQueryBuilder {
	return &transactionQuery{service: s}
}

// List retrieves transactions matching the filter
func (s *transactionService) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	var result struct {
		Data []*Transaction `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/transactions", filter.values(), nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return result.Data, nil
}

// Create creates a new transaction
func (s *transactionService) Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error) {
	var result struct {
		Data *Transaction `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodPost, "/transactions", nil, params, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	return result.Data, nil
}

// Update updates an existing transaction
func (s *transactionService) Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error) {
	var result struct {
		Data *Transaction `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodPut, "/transactions/"+transactionID, nil, params, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update transaction")
	}

	return result.Data, nil
}

// Delete deletes a transaction
func (s *transactionService) Delete(ctx context.Context, transactionID string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/transactions/"+transactionID, nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete transaction")
	}
	return nil
}

// OverviewStats retrieves income/expense totals and daily average
func (s *transactionService) OverviewStats(ctx context.Context) (*OverviewStats, error) {
	var result struct {
		Data *OverviewStats `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/transactions/stats/overview", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get overview stats")
	}

	return result.Data, nil
}

// CategoryStats retrieves per-category expense totals
func (s *transactionService) CategoryStats(ctx context.Context) ([]*CategoryTotal, error) {
	var result struct {
		Data []*CategoryTotal `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/transactions/stats/category", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get category stats")
	}

	return result.Data, nil
}

// DailyStats retrieves per-day-of-month expense totals
func (s *transactionService) DailyStats(ctx context.Context) ([]*DailyTotal, error) {
	var result struct {
		Data []*DailyTotal `json:"data"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/transactions/stats/daily", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get daily stats")
	}

	return result.Data, nil
}

// transactionQuery implements TransactionQueryBuilder
type transactionQuery struct {
	service *transactionService
	filter  TransactionFilter
}

func (q *transactionQuery) OfType(t TransactionType) TransactionQueryBuilder {
	q.filter.Type = string(t)
	return q
}

func (q *transactionQuery) InCategory(category string) TransactionQueryBuilder {
	q.filter.Category = category
	return q
}

func (q *transactionQuery) Search(keyword string) TransactionQueryBuilder {
	q.filter.Keyword = keyword
	return q
}

func (q *transactionQuery) Between(start, end Date) TransactionQueryBuilder {
	q.filter.StartDate = start
	q.filter.EndDate = end
	return q
}

func (q *transactionQuery) Execute(ctx context.Context) ([]*Transaction, error) {
	return q.service.List(ctx, &q.filter)
}
