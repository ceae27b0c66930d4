package schedule

import (
	"time"

	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/flexprice/billing-schedule/internal/types"
	"github.com/shopspring/decimal"
)

// ScheduleParams holds all necessary input for generating a billing schedule.
// It is built once from caller input and never mutated.
type ScheduleParams struct {
	StartDate        time.Time          // First billable day (inclusive)
	EndDate          time.Time          // Last billable day (inclusive)
	AnchorDay        int                // Day-of-month the billing cycle is anchored to, 1..28
	BillingCycle     types.BillingCycle // Cycle length: monthly, quarterly, half_yearly
	PricePerMonth    decimal.Decimal    // Price per unit per month
	QuantityPerMonth decimal.Decimal    // Nominal consumption quantity per full month
	MaxQuantity      decimal.Decimal    // Cap on total billed quantity across the schedule
}

// Validate checks the schedule parameters. All validation happens once at
// entry; generation never starts on invalid input.
func (p ScheduleParams) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ierr.NewError("start and end dates are required").
			WithHint("Both start_date and end_date must be provided").
			Mark(ierr.ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return ierr.NewError("invalid billing range").
			WithHint("End date cannot be before start date").
			WithReportableDetails(map[string]any{
				"start_date": p.StartDate.Format(types.DateFormat),
				"end_date":   p.EndDate.Format(types.DateFormat),
			}).
			Mark(ierr.ErrValidation)
	}
	if p.AnchorDay < types.MinAnchorDay || p.AnchorDay > types.MaxAnchorDay {
		return ierr.NewError("invalid anchor day").
			WithHintf("Anchor day must be between %d and %d", types.MinAnchorDay, types.MaxAnchorDay).
			WithReportableDetails(map[string]any{
				"provided_value": p.AnchorDay,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := p.BillingCycle.Validate(); err != nil {
		return err
	}
	if p.PricePerMonth.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invalid price").
			WithHint("Price per month must be positive").
			Mark(ierr.ErrValidation)
	}
	if p.QuantityPerMonth.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invalid quantity").
			WithHint("Quantity per month must be positive").
			Mark(ierr.ErrValidation)
	}
	if p.MaxQuantity.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invalid quantity cap").
			WithHint("Max quantity must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MonthFragment is the portion of a billing period that falls inside a single
// calendar month. Fragments only exist nested under a BillingPeriod.
type MonthFragment struct {
	Month         string          `json:"month"` // e.g. "2025-02"
	ActiveDays    int             `json:"active_days"`
	TotalDays     int             `json:"total_days"`
	Fraction      decimal.Decimal `json:"fraction"`       // ActiveDays / TotalDays, 0 < f <= 1
	PartialUnits  decimal.Decimal `json:"partial_units"`  // Fraction * quantity per month
	PartialAmount decimal.Decimal `json:"partial_amount"` // PartialUnits * price per month
}

// BillingPeriod is one emitted period of the schedule, immutable once appended.
type BillingPeriod struct {
	StartDate      time.Time       `json:"billing_start"`
	EndDate        time.Time       `json:"billing_end"` // inclusive
	QuantityMonths decimal.Decimal `json:"quantity_months"`
	UnitsBilled    decimal.Decimal `json:"units_billed"`
	Amount         decimal.Decimal `json:"amount"`
	Prorated       bool            `json:"prorated"`
	Breakdown      []MonthFragment `json:"breakdown"`
}

// Schedule holds the output of schedule generation.
type Schedule struct {
	ID          string          `json:"id"`
	Params      ScheduleParams  `json:"-"`
	Periods     []BillingPeriod `json:"periods"`
	TotalUnits  decimal.Decimal `json:"total_units"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CapReached  bool            `json:"cap_reached"`
}
