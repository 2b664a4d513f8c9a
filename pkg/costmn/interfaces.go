package costmn

import (
	"context"
	"net/url"

	internalTypes "github.com/costmn/costmn-go/internal/types"
)

// Transport handles HTTP/JSON communication with the backend
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// BudgetService handles the monthly budget lifecycle
type BudgetService interface {
	// Current fetches one month's budget; a nil month lets the server
	// pick its default
	Current(ctx context.Context, month *YearMonth) (*Budget, error)

	// Upsert creates or replaces the budget for (month, year). The jar
	// invariants are validated client-side before any network call.
	Upsert(ctx context.Context, params *UpsertBudgetParams) (*Budget, error)

	// Stats fetches aggregated totals plus jars with derived fields
	Stats(ctx context.Context, month *YearMonth) (*BudgetStats, error)

	// History fetches all budgets for a year; year 0 means server default
	History(ctx context.Context, year int) ([]*Budget, error)

	// Pending fetches incomplete budgets for months strictly before now
	Pending(ctx context.Context) ([]*Budget, error)

	// Smart combines "which budget should I show" with "what's outstanding"
	Smart(ctx context.Context) (*SmartBudget, error)

	// Complete finalizes a month. When the month is not adjacent to the
	// present the result carries a Gap instead of an auto-created successor.
	Complete(ctx context.Context, month YearMonth) (*CompletionResult, error)

	// CompleteWithGap resolves a previously returned gap
	CompleteWithGap(ctx context.Context, month YearMonth, resolution GapResolution) (*CompletionResult, error)
}

// TransactionService handles transaction CRUD and statistics
type TransactionService interface {
	// Query returns a transaction query builder
	Query() TransactionQueryBuilder

	// List retrieves transactions matching the filter; nil means all
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error)

	// Update updates an existing transaction
	Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error)

	// Delete deletes a transaction
	Delete(ctx context.Context, transactionID string) error

	// OverviewStats retrieves income/expense totals and daily average
	OverviewStats(ctx context.Context) (*OverviewStats, error)

	// CategoryStats retrieves per-category expense totals
	CategoryStats(ctx context.Context) ([]*CategoryTotal, error)

	// DailyStats retrieves per-day-of-month expense totals
	DailyStats(ctx context.Context) ([]*DailyTotal, error)
}

// TransactionQueryBuilder builds transaction list queries
type TransactionQueryBuilder interface {
	OfType(t TransactionType) TransactionQueryBuilder
	InCategory(category string) TransactionQueryBuilder
	Search(keyword string) TransactionQueryBuilder
	Between(start, end Date) TransactionQueryBuilder

	// Execute runs the query
	Execute(ctx context.Context) ([]*Transaction, error)
}

// AuthService handles login and session persistence
type AuthService interface {
	// Login authenticates with email and password
	Login(ctx context.Context, email, password string) (*User, error)

	// Register creates an account and logs it in
	Register(ctx context.Context, username, email, password, fullName string) (*User, error)

	// Profile verifies the current token and returns the account
	Profile(ctx context.Context) (*User, error)

	// SaveSession persists the session to a file
	SaveSession(path string) error

	// LoadSession restores a previously saved session
	LoadSession(path string) error

	// Logout drops the session locally
	Logout()
}

// Notifier receives user-facing notices from the page orchestrator.
// Every error stays local to the triggering action; nothing escalates.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}
