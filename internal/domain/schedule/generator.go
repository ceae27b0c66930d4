package schedule

import (
	"context"
	"time"

	"github.com/flexprice/billing-schedule/internal/types"
	"github.com/shopspring/decimal"
)

// Generator produces a complete billing schedule for the given parameters.
// Generation is deterministic and free of side effects; identical params yield
// identical schedules (modulo the generated ID).
type Generator interface {
	Generate(ctx context.Context, params ScheduleParams) (*Schedule, error)
}

// NewGenerator creates a schedule generator backed by the day-based fractionator.
func NewGenerator() Generator {
	return &generator{fractionator: NewFractionator()}
}

type generator struct {
	fractionator Fractionator
}

func (g *generator) Generate(ctx context.Context, params ScheduleParams) (*Schedule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Time-of-day is ignored; all date math runs on UTC midnights.
	params.StartDate = types.NormalizeToDate(params.StartDate)
	params.EndDate = types.NormalizeToDate(params.EndDate)

	result := &Schedule{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_SCHEDULE),
		Params:      params,
		Periods:     make([]BillingPeriod, 0),
		TotalUnits:  decimal.Zero,
		TotalAmount: decimal.Zero,
	}

	// First, possibly partial, period: from the start date up to the day
	// before the first anchor. The anchor in the start month is advanced by
	// one month when it does not fall strictly after the start date.
	firstAnchor := types.AnchorInMonth(params.StartDate, params.AnchorDay)
	if !firstAnchor.After(params.StartDate) {
		firstAnchor = types.AddClampedDate(firstAnchor, 0, 1, 0)
	}
	firstEnd := types.MinDate(firstAnchor.AddDate(0, 0, -1), params.EndDate)

	capReached, err := g.appendPeriod(result, params.StartDate, firstEnd)
	if err != nil {
		return nil, err
	}

	// Subsequent fixed-length cycles, anchored to the anchor day. Anchors stay
	// on the same day-of-month since anchor days never exceed 28.
	cycleMonths := params.BillingCycle.Months()
	for cycleStart := firstAnchor; !capReached && !cycleStart.After(params.EndDate); cycleStart = types.AddClampedDate(cycleStart, 0, cycleMonths, 0) {
		nextAnchor := types.AddClampedDate(cycleStart, 0, cycleMonths, 0)
		cycleEnd := types.MinDate(nextAnchor.AddDate(0, 0, -1), params.EndDate)

		capReached, err = g.appendPeriod(result, cycleStart, cycleEnd)
		if err != nil {
			return nil, err
		}
	}

	result.CapReached = capReached
	return result, nil
}

// appendPeriod fractionates one period span, applies the quantity cap against
// the running total and appends the resulting period. It reports whether the
// cap has been reached, which terminates generation. The cap-triggering period
// is still emitted, even when its clamped units are zero.
func (g *generator) appendPeriod(result *Schedule, periodStart, periodEnd time.Time) (bool, error) {
	params := result.Params

	quantityMonths, fragments, err := g.fractionator.Fractionate(
		periodStart, periodEnd, params.QuantityPerMonth, params.PricePerMonth)
	if err != nil {
		return false, err
	}

	cycleMonths := decimal.NewFromInt(int64(params.BillingCycle.Months()))
	prorated := !quantityMonths.Equal(cycleMonths)

	units := quantityMonths.Mul(params.QuantityPerMonth)
	capReached := result.TotalUnits.Add(units).GreaterThanOrEqual(params.MaxQuantity)
	if result.TotalUnits.Add(units).GreaterThan(params.MaxQuantity) {
		units = decimal.Max(params.MaxQuantity.Sub(result.TotalUnits), decimal.Zero)
		quantityMonths = units.Div(params.QuantityPerMonth)
		prorated = true
	}

	amount := units.Mul(params.PricePerMonth)

	result.Periods = append(result.Periods, BillingPeriod{
		StartDate:      periodStart,
		EndDate:        periodEnd,
		QuantityMonths: quantityMonths,
		UnitsBilled:    units,
		Amount:         amount,
		Prorated:       prorated,
		Breakdown:      fragments,
	})
	result.TotalUnits = result.TotalUnits.Add(units)
	result.TotalAmount = result.TotalAmount.Add(amount)

	return capReached, nil
}
