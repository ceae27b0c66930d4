package types

import (
	"testing"

	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestBillingCycle_Months(t *testing.T) {
	assert.Equal(t, 1, BILLING_CYCLE_MONTHLY.Months())
	assert.Equal(t, 3, BILLING_CYCLE_QUARTERLY.Months())
	assert.Equal(t, 6, BILLING_CYCLE_HALFYEARLY.Months())
}

func TestBillingCycle_Validate(t *testing.T) {
	assert.NoError(t, BILLING_CYCLE_MONTHLY.Validate())
	assert.NoError(t, BILLING_CYCLE_QUARTERLY.Validate())
	assert.NoError(t, BILLING_CYCLE_HALFYEARLY.Validate())

	err := BillingCycle("weekly").Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
