package costmn

import (
	"fmt"
	"time"
)

// YearMonth identifies one calendar month, the natural key every budget
// hangs off. Month runs 1-12.
type YearMonth struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewYearMonth builds a YearMonth, rejecting out-of-range months
func NewYearMonth(month, year int) (YearMonth, error) {
	ym := YearMonth{Month: month, Year: year}
	if !ym.Valid() {
		return YearMonth{}, fmt.Errorf("invalid month %d/%d", month, year)
	}
	return ym, nil
}

// YearMonthOf returns the calendar month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Month: int(t.Month()), Year: t.Year()}
}

// Valid reports whether the month is in 1-12
func (ym YearMonth) Valid() bool {
	return ym.Month >= 1 && ym.Month <= 12
}

// Next returns the immediately following month, rolling December into
// January of the next year
func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// Prev returns the immediately preceding month, rolling January into
// December of the previous year
func (ym YearMonth) Prev() YearMonth {
	return ym.AddMonths(-1)
}

// AddMonths steps n calendar months forward (or backward for negative n)
func (ym YearMonth) AddMonths(n int) YearMonth {
	total := ym.Year*12 + (ym.Month - 1) + n
	return YearMonth{Year: total / 12, Month: total%12 + 1}
}

// MonthsSince returns the signed number of calendar months from other to
// ym. A positive result means ym is later.
func (ym YearMonth) MonthsSince(other YearMonth) int {
	return (ym.Year-other.Year)*12 + (ym.Month - other.Month)
}

// Compare orders two months chronologically: -1, 0 or 1
func (ym YearMonth) Compare(other YearMonth) int {
	switch d := ym.MonthsSince(other); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// Time returns midnight UTC on the first day of the month
func (ym YearMonth) Time() time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
}

// String renders the month the way the UI labels it, e.g. "3/2025"
func (ym YearMonth) String() string {
	return fmt.Sprintf("%d/%d", ym.Month, ym.Year)
}

// Clock supplies "now" so month-sensitive workflow logic stays testable
type Clock func() time.Time

// CurrentYearMonth resolves the present calendar month from a clock,
// falling back to time.Now when clock is nil
func CurrentYearMonth(clock Clock) YearMonth {
	if clock == nil {
		clock = time.Now
	}
	return YearMonthOf(clock())
}
