package costmn

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jarInput(category Category, amount int64) *JarInput {
	return &JarInput{
		Name:         string(category),
		Category:     category,
		BudgetAmount: decimal.NewFromInt(amount),
		Color:        JarColors[0],
		IsActive:     true,
	}
}

func TestValidateJarInputs_Valid(t *testing.T) {
	jars := []*JarInput{
		jarInput(CategoryFood, 3000),
		jarInput(CategoryTransport, 2000),
	}

	err := ValidateJarInputs(decimal.NewFromInt(10000), jars)
	require.NoError(t, err)

	// Exactly equal to the total is fine too
	err = ValidateJarInputs(decimal.NewFromInt(5000), jars)
	require.NoError(t, err)
}

func TestValidateJarInputs_OverAllocation(t *testing.T) {
	jars := []*JarInput{
		jarInput(CategoryFood, 6000),
		jarInput(CategoryTransport, 5000),
	}

	err := ValidateJarInputs(decimal.NewFromInt(10000), jars)

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "totalBudget", verr.Field)
	assert.Contains(t, verr.Message, "exceed total budget")
}

func TestValidateJarInputs_DuplicateCategory(t *testing.T) {
	jars := []*JarInput{
		jarInput(CategoryFood, 1000),
		jarInput(CategoryFood, 2000),
	}

	err := ValidateJarInputs(decimal.NewFromInt(10000), jars)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "used by another jar")
}

func TestValidateJarInputs_UnknownCategory(t *testing.T) {
	jars := []*JarInput{jarInput(Category("Du lịch"), 1000)}

	err := ValidateJarInputs(decimal.NewFromInt(10000), jars)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateJarInputs_NegativeAmounts(t *testing.T) {
	err := ValidateJarInputs(decimal.NewFromInt(-1), nil)
	require.Error(t, err)

	jars := []*JarInput{jarInput(CategoryFood, -100)}
	err = ValidateJarInputs(decimal.NewFromInt(10000), jars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
}

func TestValidateJarInputs_EmptyJarSet(t *testing.T) {
	require.NoError(t, ValidateJarInputs(decimal.NewFromInt(10000), nil))
}
