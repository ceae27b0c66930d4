package dto

import (
	"time"

	"github.com/flexprice/billing-schedule/internal/domain/schedule"
	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/flexprice/billing-schedule/internal/types"
	"github.com/flexprice/billing-schedule/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Rounding applied at the serialization boundary only; all internal math runs
// at full decimal precision.
const (
	QuantityPrecision = 4 // fractions, quantity months, units
	AmountPrecision   = 2 // currency amounts
)

// PreviewScheduleRequest is the wire request for computing a billing schedule.
// Dates are calendar dates in YYYY-MM-DD form; decimals accept JSON numbers or
// strings.
type PreviewScheduleRequest struct {
	StartDate        string             `json:"start_date" binding:"required" validate:"required"`
	EndDate          string             `json:"end_date" binding:"required" validate:"required"`
	AnchorDay        int                `json:"anchor_day" binding:"required" validate:"required,min=1,max=28"`
	BillingCycle     types.BillingCycle `json:"billing_cycle" binding:"required" validate:"required"`
	PricePerMonth    decimal.Decimal    `json:"price_per_month"`
	QuantityPerMonth decimal.Decimal    `json:"quantity_per_month"`
	MaxQuantity      decimal.Decimal    `json:"max_quantity"`
}

// Validate checks the wire-level constraints of the request.
func (r *PreviewScheduleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToScheduleParams parses the wire request into domain parameters. Domain
// invariants (date ordering, anchor range, positive amounts) are enforced by
// ScheduleParams.Validate before generation starts.
func (r *PreviewScheduleRequest) ToScheduleParams() (schedule.ScheduleParams, error) {
	startDate, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return schedule.ScheduleParams{}, err
	}
	endDate, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return schedule.ScheduleParams{}, err
	}

	return schedule.ScheduleParams{
		StartDate:        startDate,
		EndDate:          endDate,
		AnchorDay:        r.AnchorDay,
		BillingCycle:     r.BillingCycle,
		PricePerMonth:    r.PricePerMonth,
		QuantityPerMonth: r.QuantityPerMonth,
		MaxQuantity:      r.MaxQuantity,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(types.DateFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid date for %s, expected YYYY-MM-DD", field).
			WithReportableDetails(map[string]any{
				field: value,
			}).
			Mark(ierr.ErrValidation)
	}
	return parsed, nil
}

// MonthFragmentResponse is the day-level breakdown entry for one calendar month.
type MonthFragmentResponse struct {
	Month         string          `json:"month"`
	ActiveDays    int             `json:"active_days"`
	TotalDays     int             `json:"total_days"`
	Fraction      decimal.Decimal `json:"fraction"`
	PartialUnits  decimal.Decimal `json:"partial_units"`
	PartialAmount decimal.Decimal `json:"partial_amount"`
}

// BillingPeriodResponse is one emitted billing period.
type BillingPeriodResponse struct {
	BillingStart   string                  `json:"billing_start"`
	BillingEnd     string                  `json:"billing_end"`
	QuantityMonths decimal.Decimal         `json:"quantity_months"`
	UnitsBilled    decimal.Decimal         `json:"units_billed"`
	Amount         decimal.Decimal         `json:"amount"`
	Prorated       bool                    `json:"prorated"`
	Breakdown      []MonthFragmentResponse `json:"breakdown"`
}

// ScheduleResponse is the wire response for a computed billing schedule.
type ScheduleResponse struct {
	ScheduleID  string                  `json:"schedule_id"`
	Periods     []BillingPeriodResponse `json:"periods"`
	TotalUnits  decimal.Decimal         `json:"total_units"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	CapReached  bool                    `json:"cap_reached"`
}

// NewScheduleResponse converts a domain schedule into its wire representation,
// rounding quantities to 4 and amounts to 2 decimal places.
func NewScheduleResponse(s *schedule.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ScheduleID: s.ID,
		Periods: lo.Map(s.Periods, func(p schedule.BillingPeriod, _ int) BillingPeriodResponse {
			return newBillingPeriodResponse(p)
		}),
		TotalUnits:  s.TotalUnits.Round(QuantityPrecision),
		TotalAmount: s.TotalAmount.Round(AmountPrecision),
		CapReached:  s.CapReached,
	}
}

func newBillingPeriodResponse(p schedule.BillingPeriod) BillingPeriodResponse {
	return BillingPeriodResponse{
		BillingStart:   p.StartDate.Format(types.DateFormat),
		BillingEnd:     p.EndDate.Format(types.DateFormat),
		QuantityMonths: p.QuantityMonths.Round(QuantityPrecision),
		UnitsBilled:    p.UnitsBilled.Round(QuantityPrecision),
		Amount:         p.Amount.Round(AmountPrecision),
		Prorated:       p.Prorated,
		Breakdown: lo.Map(p.Breakdown, func(f schedule.MonthFragment, _ int) MonthFragmentResponse {
			return MonthFragmentResponse{
				Month:         f.Month,
				ActiveDays:    f.ActiveDays,
				TotalDays:     f.TotalDays,
				Fraction:      f.Fraction.Round(QuantityPrecision),
				PartialUnits:  f.PartialUnits.Round(QuantityPrecision),
				PartialAmount: f.PartialAmount.Round(AmountPrecision),
			}
		}),
	}
}
