package commands

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costmn/costmn-go/pkg/costmn"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 ₫"},
		{500, "500 ₫"},
		{1500, "1.500 ₫"},
		{10000000, "10.000.000 ₫"},
		{-45000, "-45.000 ₫"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVND(decimal.NewFromInt(tt.in)))
	}
}

func TestRenderPending(t *testing.T) {
	var sb strings.Builder
	renderPending(&sb, []*costmn.Budget{
		{
			Month: 3, Year: 2025,
			Jars: []*costmn.BudgetJar{
				{BudgetAmount: decimal.NewFromInt(3000000), Spent: decimal.NewFromInt(1000000)},
			},
		},
	})

	out := sb.String()
	assert.Contains(t, out, "1 month(s) awaiting completion")
	assert.Contains(t, out, "3/2025")
	assert.Contains(t, out, "2.000.000 ₫")

	sb.Reset()
	renderPending(&sb, nil)
	assert.Empty(t, sb.String())
}

func TestApplyJarSpec(t *testing.T) {
	editor := costmn.NewEditor(costmn.YearMonth{Month: 6, Year: 2025})
	editor.SetTotal(decimal.NewFromInt(10000000))

	require.NoError(t, applyJarSpec(editor, "Ăn uống=3000000"))
	require.Len(t, editor.Jars(), 1)
	assert.Equal(t, costmn.CategoryFood, editor.Jars()[0].Category)
	assert.True(t, editor.Jars()[0].BudgetAmount.Equal(decimal.NewFromInt(3000000)))

	// Mentioning the same category again updates in place
	require.NoError(t, applyJarSpec(editor, "Ăn uống=3500000"))
	require.Len(t, editor.Jars(), 1)
	assert.True(t, editor.Jars()[0].BudgetAmount.Equal(decimal.NewFromInt(3500000)))

	// A different category gets its own jar
	require.NoError(t, applyJarSpec(editor, "Y tế=500000"))
	require.Len(t, editor.Jars(), 2)
	assert.Equal(t, costmn.CategoryHealthcare, editor.Jars()[1].Category)

	require.Error(t, applyJarSpec(editor, "no-equals-sign"))
	require.Error(t, applyJarSpec(editor, "Ăn uống=abc"))
	require.Error(t, applyJarSpec(editor, "Unknown=1000"))
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "costmn", cmd.Use)
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"login", "show", "pending", "complete", "history", "set", "sample"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
