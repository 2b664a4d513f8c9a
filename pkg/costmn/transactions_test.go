package costmn

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionFilter_Values(t *testing.T) {
	start := NewDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	end := NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	filter := &TransactionFilter{
		Type:      "expense",
		Category:  "all",
		Keyword:   "cà phê",
		StartDate: start,
		EndDate:   end,
	}

	values := filter.values()

	assert.Equal(t, "expense", values.Get("type"))
	// "all" mirrors the dashboard dropdown's unset state
	assert.Empty(t, values.Get("category"))
	assert.Equal(t, "cà phê", values.Get("keyword"))
	assert.Equal(t, "2025-06-01", values.Get("startDate"))
	assert.Equal(t, "2025-06-30", values.Get("endDate"))

	var nilFilter *TransactionFilter
	assert.Empty(t, nilFilter.values())
}

func TestTransactionService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{"data": [
		{"_id": "tx-1", "date": "2025-06-03", "type": "expense", "category": "Ăn uống", "amount": 45000, "description": "Bún chả"},
		{"_id": "tx-2", "date": "2025-06-05T09:30:00Z", "type": "income", "category": "Khác", "amount": 2000000, "description": "Freelance"}
	]}`

	mockTransport.On("Do",
		mock.Anything, "GET", "/transactions",
		mock.MatchedBy(func(q url.Values) bool { return q.Get("type") == "expense" }),
		nil, mock.Anything,
	).Return(mockResponse, nil)

	txs, err := client.Transactions.Query().OfType(TransactionExpense).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, "2025-06-03", txs[0].Date.String())
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(2000000)))
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "POST", "/transactions", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			params, ok := body.(*CreateTransactionParams)
			return ok && params.Type == TransactionExpense && params.Category == "Ăn uống"
		}),
		mock.Anything,
	).Return(`{"data": {"_id": "tx-9", "date": "2025-06-10", "type": "expense", "category": "Ăn uống", "amount": 60000, "description": "Phở"}}`, nil)

	tx, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Date:        NewDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
		Type:        TransactionExpense,
		Category:    "Ăn uống",
		Amount:      decimal.NewFromInt(60000),
		Description: "Phở",
	})

	require.NoError(t, err)
	assert.Equal(t, "tx-9", tx.ID)
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_Delete(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Do",
		mock.Anything, "DELETE", "/transactions/tx-9", mock.Anything, nil, nil,
	).Return(nil, nil)

	err := client.Transactions.Delete(context.Background(), "tx-9")

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_CategoryStats(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	// The aggregation keys category totals by Mongo's grouping id
	mockTransport.On("Do",
		mock.Anything, "GET", "/transactions/stats/category", mock.Anything, nil, mock.Anything,
	).Return(`{"data": [{"_id": "Ăn uống", "total": 1500000}, {"_id": "Đi lại", "total": 400000}]}`, nil)

	stats, err := client.Transactions.CategoryStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Ăn uống", stats[0].Category)
	assert.True(t, stats[0].Total.Equal(decimal.NewFromInt(1500000)))
}
