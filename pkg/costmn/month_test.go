package costmn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearMonth_NextPrevRollover(t *testing.T) {
	tests := []struct {
		name string
		in   YearMonth
		next YearMonth
		prev YearMonth
	}{
		{
			name: "mid year",
			in:   YearMonth{Month: 6, Year: 2025},
			next: YearMonth{Month: 7, Year: 2025},
			prev: YearMonth{Month: 5, Year: 2025},
		},
		{
			name: "december rolls into january",
			in:   YearMonth{Month: 12, Year: 2025},
			next: YearMonth{Month: 1, Year: 2026},
			prev: YearMonth{Month: 11, Year: 2025},
		},
		{
			name: "january rolls back into december",
			in:   YearMonth{Month: 1, Year: 2025},
			next: YearMonth{Month: 2, Year: 2025},
			prev: YearMonth{Month: 12, Year: 2024},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.next, tt.in.Next())
			assert.Equal(t, tt.prev, tt.in.Prev())
		})
	}
}

func TestYearMonth_TwelveStepsForwardIsSameMonthNextYear(t *testing.T) {
	start := YearMonth{Month: 3, Year: 2025}

	got := start
	for i := 0; i < 12; i++ {
		got = got.Next()
	}

	assert.Equal(t, YearMonth{Month: 3, Year: 2026}, got)
}

func TestYearMonth_AddMonths(t *testing.T) {
	base := YearMonth{Month: 11, Year: 2025}

	assert.Equal(t, YearMonth{Month: 2, Year: 2026}, base.AddMonths(3))
	assert.Equal(t, YearMonth{Month: 11, Year: 2024}, base.AddMonths(-12))
	assert.Equal(t, base, base.AddMonths(0))
}

func TestYearMonth_MonthsSince(t *testing.T) {
	march := YearMonth{Month: 3, Year: 2025}
	june := YearMonth{Month: 6, Year: 2025}

	assert.Equal(t, 3, june.MonthsSince(march))
	assert.Equal(t, -3, march.MonthsSince(june))
	assert.Equal(t, 0, march.MonthsSince(march))

	// Across a year boundary
	jan := YearMonth{Month: 1, Year: 2026}
	assert.Equal(t, 2, jan.MonthsSince(YearMonth{Month: 11, Year: 2025}))
}

func TestYearMonth_Ordering(t *testing.T) {
	earlier := YearMonth{Month: 12, Year: 2024}
	later := YearMonth{Month: 1, Year: 2025}

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, later.Compare(later))
}

func TestNewYearMonth_RejectsOutOfRange(t *testing.T) {
	_, err := NewYearMonth(0, 2025)
	require.Error(t, err)

	_, err = NewYearMonth(13, 2025)
	require.Error(t, err)

	ym, err := NewYearMonth(12, 2025)
	require.NoError(t, err)
	assert.True(t, ym.Valid())
}

func TestYearMonth_String(t *testing.T) {
	assert.Equal(t, "3/2025", YearMonth{Month: 3, Year: 2025}.String())
	assert.Equal(t, "12/2024", YearMonth{Month: 12, Year: 2024}.String())
}

func TestCurrentYearMonth_UsesClock(t *testing.T) {
	fixed := func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, YearMonth{Month: 6, Year: 2025}, CurrentYearMonth(fixed))
}
