package types

import (
	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/samber/lo"
)

// BillingCycle represents the recurring cycle length of a billing schedule.
type BillingCycle string

const (
	BILLING_CYCLE_MONTHLY    BillingCycle = "monthly"
	BILLING_CYCLE_QUARTERLY  BillingCycle = "quarterly"
	BILLING_CYCLE_HALFYEARLY BillingCycle = "half_yearly"
)

// Months returns the cycle length in calendar months.
func (c BillingCycle) Months() int {
	switch c {
	case BILLING_CYCLE_QUARTERLY:
		return 3
	case BILLING_CYCLE_HALFYEARLY:
		return 6
	default:
		return 1
	}
}

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowedValues := []BillingCycle{
		BILLING_CYCLE_MONTHLY,
		BILLING_CYCLE_QUARTERLY,
		BILLING_CYCLE_HALFYEARLY,
	}

	if !lo.Contains(allowedValues, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Invalid billing cycle").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": c,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

const (
	// MinAnchorDay and MaxAnchorDay bound the billing anchor day-of-month.
	// Days 29-31 do not exist in every month, so anchors are capped at 28
	// rather than clamped to month end.
	MinAnchorDay = 1
	MaxAnchorDay = 28
)
