package costmn

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	internalTypes "github.com/costmn/costmn-go/internal/types"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	args := m.Called(ctx, method, path, query, body, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil && result != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func (m *MockTransport) SetSession(session *internalTypes.Session) {
	m.Called(session)
}

func newTestClient(t *MockTransport) *Client {
	c := &Client{
		transport: t,
		options:   &ClientOptions{},
		baseURL:   "https://api.test.com",
	}
	c.initServices()
	return c
}

func TestBudgetService_Current(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"budget": {
			"_id": "budget-1",
			"userId": "u-1",
			"month": 3,
			"year": 2025,
			"totalBudget": 10000000,
			"isCompleted": false,
			"jars": [
				{"_id": "jar-1", "name": "Ăn uống hàng ngày", "category": "Ăn uống", "budgetAmount": 3000000, "spent": 1250000, "carryOver": 200000, "color": "#3B82F6", "isActive": true}
			]
		}
	}`

	mockTransport.On("Do",
		mock.Anything, "GET", "/budget/current",
		mock.MatchedBy(func(q url.Values) bool {
			return q.Get("month") == "3" && q.Get("year") == "2025"
		}),
		nil, mock.Anything,
	).Return(mockResponse, nil)

	month := YearMonth{Month: 3, Year: 2025}
	budget, err := client.Budgets.Current(context.Background(), &month)

	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, "budget-1", budget.ID)
	assert.Equal(t, YearMonth{Month: 3, Year: 2025}, budget.YearMonth())
	require.Len(t, budget.Jars, 1)
	assert.Equal(t, CategoryFood, budget.Jars[0].Category)
	assert.True(t, budget.Jars[0].BudgetAmount.Equal(decimal.NewFromInt(3000000)))
	mockTransport.AssertExpectations(t)
}

func TestBudgetService_Upsert_RejectsOverAllocationWithoutNetworkCall(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	params := &UpsertBudgetParams{
		Month:       4,
		Year:        2025,
		TotalBudget: decimal.NewFromInt(1000),
		Jars: []*JarInput{
			{Name: "Ăn uống", Category: CategoryFood, BudgetAmount: decimal.NewFromInt(700), Color: "#3B82F6", IsActive: true},
			{Name: "Đi lại", Category: CategoryTransport, BudgetAmount: decimal.NewFromInt(500), Color: "#EF4444", IsActive: true},
		},
	}

	_, err := client.Budgets.Upsert(context.Background(), params)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "exceed total budget")
	mockTransport.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetService_Upsert_RejectsDuplicateCategory(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	params := &UpsertBudgetParams{
		Month:       4,
		Year:        2025,
		TotalBudget: decimal.NewFromInt(1000),
		Jars: []*JarInput{
			{Name: "A", Category: CategoryFood, BudgetAmount: decimal.NewFromInt(100), Color: "#3B82F6", IsActive: true},
			{Name: "B", Category: CategoryFood, BudgetAmount: decimal.NewFromInt(100), Color: "#EF4444", IsActive: true},
		},
	}

	_, err := client.Budgets.Upsert(context.Background(), params)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	mockTransport.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetService_Upsert_Valid(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "POST", "/budget", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			params, ok := body.(*UpsertBudgetParams)
			return ok && params.Month == 4 && params.Year == 2025
		}),
		mock.Anything,
	).Return(`{"budget": {"_id": "budget-2", "month": 4, "year": 2025}}`, nil)

	params := SampleBudgetParams(YearMonth{Month: 4, Year: 2025})
	budget, err := client.Budgets.Upsert(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, "budget-2", budget.ID)
	mockTransport.AssertExpectations(t)
}

func TestBudgetService_Stats(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"stats": {
			"totalBudget": 10000000,
			"totalSpent": 4200000,
			"totalRemaining": 6000000,
			"totalCarryOver": 200000,
			"jars": [
				{"name": "Ăn uống", "category": "Ăn uống", "budgetAmount": 3000000, "spent": 1500000, "carryOver": 0, "remaining": 1500000, "percentage": 50, "color": "#3B82F6", "isActive": true}
			]
		}
	}`

	mockTransport.On("Do",
		mock.Anything, "GET", "/budget/stats", mock.Anything, nil, mock.Anything,
	).Return(mockResponse, nil)

	month := YearMonth{Month: 6, Year: 2025}
	stats, err := client.Budgets.Stats(context.Background(), &month)

	require.NoError(t, err)
	assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(4200000)))
	require.Len(t, stats.Jars, 1)

	// Server-derived fields must agree with the raw ones
	jar := stats.Jars[0]
	assert.True(t, jar.Remaining.Equal(jar.DerivedRemaining()))
	assert.InDelta(t, jar.Percentage, jar.DerivedPercentage(), 0.001)
}

func TestBudgetService_Smart(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"budget": {"_id": "budget-5", "month": 5, "year": 2025, "isCompleted": false},
		"pendingBudgets": [
			{"_id": "budget-3", "month": 3, "year": 2025, "isCompleted": false}
		]
	}`

	mockTransport.On("Do",
		mock.Anything, "GET", "/budget/smart", mock.Anything, nil, mock.Anything,
	).Return(mockResponse, nil)

	smart, err := client.Budgets.Smart(context.Background())

	require.NoError(t, err)
	require.NotNil(t, smart.Budget)
	assert.Equal(t, 5, smart.Budget.Month)
	require.Len(t, smart.PendingBudgets, 1)
	assert.Equal(t, 3, smart.PendingBudgets[0].Month)
}

func TestBudgetService_Smart_NoBudgets(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "GET", "/budget/smart", mock.Anything, nil, mock.Anything,
	).Return(`{"budget": null}`, nil)

	smart, err := client.Budgets.Smart(context.Background())

	require.NoError(t, err)
	assert.Nil(t, smart.Budget)
	assert.NotNil(t, smart.PendingBudgets)
	assert.Empty(t, smart.PendingBudgets)
}

func TestBudgetService_Complete_AdjacentMonthHasNoGap(t *testing.T) {
	// Budget month=5, now month=6: the server completes and auto-creates
	// the next budget
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"message": "Đã hoàn thành budget tháng 5/2025",
		"completedBudget": {"_id": "budget-5", "month": 5, "year": 2025, "isCompleted": true},
		"nextBudget": {"_id": "budget-6", "month": 6, "year": 2025, "isCompleted": false}
	}`

	mockTransport.On("Do",
		mock.Anything, "POST", "/budget/complete", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]int)
			return ok && m["month"] == 5 && m["year"] == 2025
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	result, err := client.Budgets.Complete(context.Background(), YearMonth{Month: 5, Year: 2025})

	require.NoError(t, err)
	assert.Nil(t, result.Gap)
	assert.True(t, result.CompletedBudget.IsCompleted)
	require.NotNil(t, result.NextBudget)
	assert.Equal(t, 6, result.NextBudget.Month)
}

func TestBudgetService_Complete_DistantMonthReturnsGap(t *testing.T) {
	// Budget month=3, now month=6: three months apart, the server answers
	// with a gap descriptor instead of auto-creating
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"message": "Phát hiện khoảng cách thời gian",
		"completedBudget": null,
		"gap": {
			"monthsDiff": 3,
			"suggestion": {
				"current": {"month": 6, "year": 2025},
				"next": {"month": 4, "year": 2025}
			}
		}
	}`

	mockTransport.On("Do",
		mock.Anything, "POST", "/budget/complete", mock.Anything, mock.Anything, mock.Anything,
	).Return(mockResponse, nil)

	result, err := client.Budgets.Complete(context.Background(), YearMonth{Month: 3, Year: 2025})

	require.NoError(t, err)
	require.NotNil(t, result.Gap)
	assert.Equal(t, 3, result.Gap.MonthsDiff)
	assert.Equal(t, YearMonth{Month: 6, Year: 2025}, result.Gap.Suggestion.Current)
	assert.Equal(t, YearMonth{Month: 4, Year: 2025}, result.Gap.Suggestion.Next)
}

func TestBudgetService_CompleteWithGap_Skip(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "POST", "/budget/complete-gap", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			if !ok {
				return false
			}
			_, hasTarget := m["targetMonth"]
			return m["action"] == GapActionSkip && !hasTarget
		}),
		mock.Anything,
	).Return(`{"completedBudget": {"_id": "budget-3", "month": 3, "year": 2025, "isCompleted": true}}`, nil)

	result, err := client.Budgets.CompleteWithGap(context.Background(), YearMonth{Month: 3, Year: 2025}, ResolveSkip())

	require.NoError(t, err)
	assert.True(t, result.CompletedBudget.IsCompleted)
	assert.Nil(t, result.NextBudget)
}

func TestBudgetService_CompleteWithGap_CreateNext(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "POST", "/budget/complete-gap", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			return ok && m["action"] == GapActionCreateNext && m["targetMonth"] == 1 && m["targetYear"] == 2026
		}),
		mock.Anything,
	).Return(`{
		"completedBudget": {"_id": "budget-12", "month": 12, "year": 2025, "isCompleted": true},
		"nextBudget": {"_id": "budget-next", "month": 1, "year": 2026, "isCompleted": false}
	}`, nil)

	completing := YearMonth{Month: 12, Year: 2025}
	result, err := client.Budgets.CompleteWithGap(context.Background(), completing, ResolveCreateNext(completing.Next()))

	require.NoError(t, err)
	require.NotNil(t, result.NextBudget)
	// December rolls into January of the following year
	assert.Equal(t, YearMonth{Month: 1, Year: 2026}, result.NextBudget.YearMonth())
}

func TestBudgetService_CompleteWithGap_InvalidResolution(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	_, err := client.Budgets.CompleteWithGap(context.Background(), YearMonth{Month: 3, Year: 2025},
		GapResolution{Action: GapActionCreateNext})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	mockTransport.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetService_History(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "GET", "/budget/history",
		mock.MatchedBy(func(q url.Values) bool { return q.Get("year") == "2025" }),
		nil, mock.Anything,
	).Return(`{"budgets": [
		{"_id": "b-1", "month": 1, "year": 2025, "isCompleted": true},
		{"_id": "b-2", "month": 2, "year": 2025, "isCompleted": false}
	]}`, nil)

	budgets, err := client.Budgets.History(context.Background(), 2025)

	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.True(t, budgets[0].IsCompleted)
	assert.False(t, budgets[1].IsCompleted)
}
