package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreditPolicy_Tiers(t *testing.T) {
	policy := NewCreditPolicy()
	amount := decimal.NewFromInt(50000)

	excellent := policy.Evaluate(780, amount, 24)
	assert.True(t, excellent.Approvable)
	assert.True(t, excellent.MaxAmount.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, excellent.SuggestedRate.Equal(decimal.NewFromFloat(4.5)))

	good := policy.Evaluate(710, amount, 24)
	assert.True(t, good.Approvable)
	assert.True(t, good.MaxAmount.Equal(decimal.NewFromInt(250_000)))
	assert.True(t, good.SuggestedRate.Equal(decimal.NewFromFloat(5.5)))

	fair := policy.Evaluate(620, amount, 24)
	assert.True(t, fair.Approvable)
	assert.True(t, fair.MaxAmount.Equal(decimal.NewFromInt(100_000)))
	assert.True(t, fair.SuggestedRate.Equal(decimal.NewFromFloat(8.5)))

	poor := policy.Evaluate(580, amount, 24)
	assert.False(t, poor.Approvable)
	assert.True(t, poor.MaxAmount.IsZero())
}

func TestCreditPolicy_TierBoundaries(t *testing.T) {
	policy := NewCreditPolicy()
	amount := decimal.NewFromInt(10000)

	assert.True(t, policy.Evaluate(750, amount, 12).MaxAmount.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, policy.Evaluate(749, amount, 12).MaxAmount.Equal(decimal.NewFromInt(250_000)))
	assert.True(t, policy.Evaluate(700, amount, 12).MaxAmount.Equal(decimal.NewFromInt(250_000)))
	assert.True(t, policy.Evaluate(600, amount, 12).MaxAmount.Equal(decimal.NewFromInt(100_000)))
	assert.False(t, policy.Evaluate(599, amount, 12).Approvable)
}

func TestCreditPolicy_AmountOverTierLimit(t *testing.T) {
	policy := NewCreditPolicy()

	result := policy.Evaluate(650, decimal.NewFromInt(150_000), 24)
	assert.False(t, result.Approvable, "fair tier caps at 100K")
	assert.Contains(t, result.Reason, "exceeds maximum")

	result = policy.Evaluate(780, decimal.NewFromInt(150_000), 24)
	assert.True(t, result.Approvable, "the same amount is fine in the excellent tier")
}

func TestCreditPolicy_TermOverCap(t *testing.T) {
	policy := NewCreditPolicy()

	result := policy.Evaluate(780, decimal.NewFromInt(10000), 121)
	assert.False(t, result.Approvable)
	assert.Contains(t, result.Reason, "term exceeds")
}
