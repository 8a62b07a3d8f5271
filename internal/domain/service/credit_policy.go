package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CreditPolicy – domain service for rule-based review support
// ---------------------------------------------------------------------------

// CreditAssessment holds the outcome of the policy evaluation. It advises the
// reviewer; the human decision in the review operation remains authoritative.
type CreditAssessment struct {
	Reason        string
	MaxAmount     decimal.Decimal
	SuggestedRate decimal.Decimal
	Approvable    bool
}

// CreditPolicy encapsulates rule-based credit decisioning. Credit scores
// arrive as already-computed numbers from the platform's scoring pipeline.
type CreditPolicy struct{}

// NewCreditPolicy returns a new policy instance.
func NewCreditPolicy() *CreditPolicy {
	return &CreditPolicy{}
}

// Evaluate performs a simplified, rule-based assessment.
//
// Tiers:
//
//	score >= 750  -> approvable, max 500K, 4.5% suggested
//	score >= 700  -> approvable, max 250K, 5.5% suggested
//	score >= 600  -> approvable, max 100K, 8.5% suggested (higher rate)
//	score <  600  -> not approvable
func (p *CreditPolicy) Evaluate(
	creditScore int,
	requestedAmount decimal.Decimal,
	termMonths int,
) CreditAssessment {
	var (
		approvable    bool
		reason        string
		maxAmount     decimal.Decimal
		suggestedRate decimal.Decimal
	)

	switch {
	case creditScore >= 750:
		approvable = true
		reason = "excellent credit tier"
		maxAmount = decimal.NewFromInt(500_000)
		suggestedRate = decimal.NewFromFloat(4.5)
	case creditScore >= 700:
		approvable = true
		reason = "good credit tier"
		maxAmount = decimal.NewFromInt(250_000)
		suggestedRate = decimal.NewFromFloat(5.5)
	case creditScore >= 600:
		approvable = true
		reason = "fair credit tier - elevated rate applies"
		maxAmount = decimal.NewFromInt(100_000)
		suggestedRate = decimal.NewFromFloat(8.5)
	default:
		approvable = false
		reason = "credit score below minimum threshold"
		maxAmount = decimal.Zero
		suggestedRate = decimal.Zero
	}

	// If approvable but requested amount exceeds the tier limit, advise
	// rejection.
	if approvable && requestedAmount.GreaterThan(maxAmount) {
		approvable = false
		reason = "requested amount exceeds maximum for credit tier"
	}

	// Term sanity check.
	if approvable && termMonths > 120 {
		approvable = false
		reason = "term exceeds maximum 120 months"
	}

	return CreditAssessment{
		Approvable:    approvable,
		Reason:        reason,
		MaxAmount:     maxAmount,
		SuggestedRate: suggestedRate,
	}
}
