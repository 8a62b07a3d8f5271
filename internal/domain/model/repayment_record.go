package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// RepaymentRecord is an immutable ledger entry for one payment event against
// one schedule row. Append-only; never updated or deleted.
type RepaymentRecord struct {
	ID            string
	FinancingID   string
	ScheduleID    string
	RepaymentType valueobject.RepaymentType
	Amount        decimal.Decimal
	Principal     decimal.Decimal
	Interest      decimal.Decimal
	Penalty       decimal.Decimal
	PaymentMethod string
	TransactionID string
	PaidAt        time.Time
}

// NewRepaymentRecord creates a ledger entry for a payment split.
func NewRepaymentRecord(
	financingID, scheduleID string,
	repaymentType valueobject.RepaymentType,
	amount, principal, interest, penalty decimal.Decimal,
	paymentMethod, transactionID string,
	paidAt time.Time,
) (RepaymentRecord, error) {
	if financingID == "" {
		return RepaymentRecord{}, valueobject.NewValidation("financing ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return RepaymentRecord{}, valueobject.NewValidation("repayment amount must be positive, got %s", amount)
	}
	if !principal.Add(interest).Add(penalty).Equal(amount) {
		return RepaymentRecord{}, valueobject.NewValidation(
			"repayment split %s+%s+%s does not add up to %s", principal, interest, penalty, amount)
	}

	return RepaymentRecord{
		ID:            uuid.New().String(),
		FinancingID:   financingID,
		ScheduleID:    scheduleID,
		RepaymentType: repaymentType,
		Amount:        amount,
		Principal:     principal,
		Interest:      interest,
		Penalty:       penalty,
		PaymentMethod: paymentMethod,
		TransactionID: transactionID,
		PaidAt:        paidAt,
	}, nil
}
