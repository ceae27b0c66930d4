package schedule

import (
	"testing"
	"time"

	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFractionator_Fractionate(t *testing.T) {
	ten := decimal.NewFromInt(10)
	five := decimal.NewFromInt(5)

	tests := []struct {
		name              string
		spanStart         time.Time
		spanEnd           time.Time
		expectedFragments []MonthFragment
		expectedQuantity  string // quantityMonths rounded to 4dp
		expectedError     bool
	}{
		{
			name:      "span_within_single_month",
			spanStart: date(2025, 3, 10),
			spanEnd:   date(2025, 3, 19),
			expectedFragments: []MonthFragment{
				{Month: "2025-03", ActiveDays: 10, TotalDays: 31},
			},
			expectedQuantity: "0.3226",
		},
		{
			name:      "single_day_span",
			spanStart: date(2025, 3, 15),
			spanEnd:   date(2025, 3, 15),
			expectedFragments: []MonthFragment{
				{Month: "2025-03", ActiveDays: 1, TotalDays: 31},
			},
			expectedQuantity: "0.0323",
		},
		{
			name:      "full_single_month",
			spanStart: date(2025, 4, 1),
			spanEnd:   date(2025, 4, 30),
			expectedFragments: []MonthFragment{
				{Month: "2025-04", ActiveDays: 30, TotalDays: 30},
			},
			expectedQuantity: "1",
		},
		{
			name:      "crossing_month_boundary",
			spanStart: date(2025, 2, 15),
			spanEnd:   date(2025, 3, 1),
			expectedFragments: []MonthFragment{
				{Month: "2025-02", ActiveDays: 14, TotalDays: 28},
				{Month: "2025-03", ActiveDays: 1, TotalDays: 31},
			},
			expectedQuantity: "0.5323",
		},
		{
			name:      "leap_year_february",
			spanStart: date(2024, 2, 1),
			spanEnd:   date(2024, 2, 29),
			expectedFragments: []MonthFragment{
				{Month: "2024-02", ActiveDays: 29, TotalDays: 29},
			},
			expectedQuantity: "1",
		},
		{
			name:      "multi_year_span",
			spanStart: date(2024, 11, 15),
			spanEnd:   date(2025, 2, 10),
			expectedFragments: []MonthFragment{
				{Month: "2024-11", ActiveDays: 16, TotalDays: 30},
				{Month: "2024-12", ActiveDays: 31, TotalDays: 31},
				{Month: "2025-01", ActiveDays: 31, TotalDays: 31},
				{Month: "2025-02", ActiveDays: 10, TotalDays: 28},
			},
			expectedQuantity: "2.8905",
		},
		{
			name:          "inverted_range",
			spanStart:     date(2025, 3, 2),
			spanEnd:       date(2025, 3, 1),
			expectedError: true,
		},
	}

	f := NewFractionator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quantityMonths, fragments, err := f.Fractionate(tt.spanStart, tt.spanEnd, five, ten)

			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}

			require.NoError(t, err)
			require.Len(t, fragments, len(tt.expectedFragments))

			for i, expected := range tt.expectedFragments {
				got := fragments[i]
				assert.Equal(t, expected.Month, got.Month)
				assert.Equal(t, expected.ActiveDays, got.ActiveDays, "active days mismatch for %s", expected.Month)
				assert.Equal(t, expected.TotalDays, got.TotalDays, "total days mismatch for %s", expected.Month)

				// fraction = activeDays / totalDays, and must stay in (0, 1]
				expectedFraction := decimal.NewFromInt(int64(expected.ActiveDays)).
					Div(decimal.NewFromInt(int64(expected.TotalDays)))
				assert.True(t, got.Fraction.Equal(expectedFraction))
				assert.True(t, got.Fraction.GreaterThan(decimal.Zero))
				assert.True(t, got.Fraction.LessThanOrEqual(decimal.NewFromInt(1)))

				assert.True(t, got.PartialUnits.Equal(got.Fraction.Mul(five)))
				assert.True(t, got.PartialAmount.Equal(got.PartialUnits.Mul(ten)))
			}

			assert.Equal(t, tt.expectedQuantity, quantityMonths.Round(4).String())
		})
	}
}

// The day splitting must round-trip: active days across fragments sum to the
// span's inclusive day count, and fraction*totalDays recovers the same count.
func TestFractionator_DayCountRoundTrip(t *testing.T) {
	spans := []struct {
		start time.Time
		end   time.Time
	}{
		{date(2025, 2, 15), date(2025, 3, 1)},
		{date(2025, 3, 2), date(2025, 6, 1)},
		{date(2024, 1, 1), date(2026, 12, 31)},
		{date(2024, 2, 28), date(2024, 3, 1)},
		{date(2025, 7, 31), date(2025, 8, 1)},
	}

	f := NewFractionator()
	one := decimal.NewFromInt(1)
	tolerance := decimal.New(1, -10)

	for _, span := range spans {
		_, fragments, err := f.Fractionate(span.start, span.end, one, one)
		require.NoError(t, err)

		spanDays := int(span.end.Sub(span.start).Hours()/24) + 1

		activeSum := 0
		recovered := decimal.Zero
		for _, fragment := range fragments {
			activeSum += fragment.ActiveDays
			recovered = recovered.Add(fragment.Fraction.Mul(decimal.NewFromInt(int64(fragment.TotalDays))))
		}

		assert.Equal(t, spanDays, activeSum, "span %s..%s", span.start, span.end)
		diff := recovered.Sub(decimal.NewFromInt(int64(spanDays))).Abs()
		assert.True(t, diff.LessThan(tolerance),
			"fraction round-trip off by %s for span %s..%s", diff, span.start, span.end)
	}
}
