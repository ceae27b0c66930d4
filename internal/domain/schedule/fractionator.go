// Package schedule implements billing schedule generation: splitting a date
// range into anchored billing periods, prorating each period by calendar-month
// day counts, and enforcing a global quantity cap.
package schedule

import (
	"time"

	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/flexprice/billing-schedule/internal/types"
	"github.com/shopspring/decimal"
)

// Fractionator splits an arbitrary date span into calendar-month-bounded
// fragments and computes the fractional month usage of each.
// It's kept separate from the generator to allow easier testing.
type Fractionator interface {
	Fractionate(spanStart, spanEnd time.Time, quantityPerMonth, pricePerMonth decimal.Decimal) (decimal.Decimal, []MonthFragment, error)
}

// NewFractionator creates the day-based month fractionator.
func NewFractionator() Fractionator {
	return &dayBasedFractionator{}
}

// dayBasedFractionator implements day-count based month fractions.
type dayBasedFractionator struct{}

// Fractionate walks the calendar months from spanStart's month to spanEnd's
// month inclusive. Each month contributes activeDays/totalDays to the returned
// quantity in months. Both span endpoints are inclusive. Values are kept at
// full decimal precision; rounding happens at serialization only.
func (f *dayBasedFractionator) Fractionate(spanStart, spanEnd time.Time, quantityPerMonth, pricePerMonth decimal.Decimal) (decimal.Decimal, []MonthFragment, error) {
	if spanEnd.Before(spanStart) {
		return decimal.Zero, nil, ierr.NewError("invalid date range").
			WithHintf("Span start %s is after span end %s",
				spanStart.Format(types.DateFormat), spanEnd.Format(types.DateFormat)).
			Mark(ierr.ErrValidation)
	}

	quantityMonths := decimal.Zero
	fragments := make([]MonthFragment, 0)

	for cursor := types.MonthStart(spanStart); !cursor.After(spanEnd); cursor = cursor.AddDate(0, 1, 0) {
		segStart := types.MaxDate(spanStart, cursor)
		segEnd := types.MinDate(spanEnd, types.MonthEnd(cursor))

		// Both endpoints fall within cursor's month by construction, so the
		// inclusive day count is a plain day-of-month difference.
		activeDays := segEnd.Day() - segStart.Day() + 1
		totalDays := types.DaysInMonth(cursor)

		fraction := decimal.NewFromInt(int64(activeDays)).
			Div(decimal.NewFromInt(int64(totalDays)))
		partialUnits := fraction.Mul(quantityPerMonth)

		fragments = append(fragments, MonthFragment{
			Month:         cursor.Format("2006-01"),
			ActiveDays:    activeDays,
			TotalDays:     totalDays,
			Fraction:      fraction,
			PartialUnits:  partialUnits,
			PartialAmount: partialUnits.Mul(pricePerMonth),
		})

		quantityMonths = quantityMonths.Add(fraction)
	}

	return quantityMonths, fragments, nil
}
