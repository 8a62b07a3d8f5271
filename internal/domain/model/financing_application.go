package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// FinancingApplication aggregate root
// ---------------------------------------------------------------------------

// FinancingApplication is an immutable aggregate. Every mutation returns a new
// copy; state only moves forward along the lifecycle DAG.
type FinancingApplication struct {
	id              string
	farmerID        string
	productID       string
	groupID         string
	amount          decimal.Decimal
	termMonths      int
	purpose         string
	status          valueobject.FinancingStatus
	interestRate    decimal.Decimal
	creditScore     int
	reviewerID      string
	reviewedAt      time.Time
	reviewComment   string
	contractID      string
	signedAt        time.Time
	disbursedAt     time.Time
	disbursedAmount decimal.Decimal
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewFinancingApplication creates a brand-new application in APPLIED status.
// The below-minimum redirect to joint-loan matching is enforced by the submit
// use case, not here, because it needs the configured threshold and candidate
// lookup.
func NewFinancingApplication(
	farmerID, productID, groupID string,
	amount decimal.Decimal,
	termMonths int,
	purpose string,
	now time.Time,
) (FinancingApplication, error) {
	if farmerID == "" {
		return FinancingApplication{}, valueobject.NewValidation("farmer ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return FinancingApplication{}, valueobject.NewValidation("amount must be positive, got %s", amount)
	}
	if termMonths < 1 || termMonths > 120 {
		return FinancingApplication{}, valueobject.NewValidation("term months must be in [1,120], got %d", termMonths)
	}
	if len(purpose) > 500 {
		return FinancingApplication{}, valueobject.NewValidation("purpose must be at most 500 characters")
	}

	id := uuid.New().String()
	app := FinancingApplication{
		id:         id,
		farmerID:   farmerID,
		productID:  productID,
		groupID:    groupID,
		amount:     amount,
		termMonths: termMonths,
		purpose:    purpose,
		status:     valueobject.FinancingStatusApplied,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}

	app.domainEvents = append(app.domainEvents,
		event.NewFinancingApplied(id, farmerID, amount, termMonths, purpose, groupID))
	return app, nil
}

// ReconstructFinancingApplication rebuilds an aggregate from persistence
// without side-effects.
func ReconstructFinancingApplication(
	id, farmerID, productID, groupID string,
	amount decimal.Decimal,
	termMonths int,
	purpose string,
	status valueobject.FinancingStatus,
	interestRate decimal.Decimal,
	creditScore int,
	reviewerID string,
	reviewedAt time.Time,
	reviewComment string,
	contractID string,
	signedAt, disbursedAt time.Time,
	disbursedAmount decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) FinancingApplication {
	return FinancingApplication{
		id:              id,
		farmerID:        farmerID,
		productID:       productID,
		groupID:         groupID,
		amount:          amount,
		termMonths:      termMonths,
		purpose:         purpose,
		status:          status,
		interestRate:    interestRate,
		creditScore:     creditScore,
		reviewerID:      reviewerID,
		reviewedAt:      reviewedAt,
		reviewComment:   reviewComment,
		contractID:      contractID,
		signedAt:        signedAt,
		disbursedAt:     disbursedAt,
		disbursedAmount: disbursedAmount,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// StartReview transitions APPLIED -> REVIEWING when a bank officer picks up
// the application.
func (a FinancingApplication) StartReview(reviewerID string, now time.Time) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusReviewing) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusReviewing)
	}
	next := a
	next.status = valueobject.FinancingStatusReviewing
	next.reviewerID = reviewerID
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingReviewStarted(a.id, reviewerID))
	return next, nil
}

// Approve records the review decision and moves the application to APPROVED.
// Valid from REVIEWING or APPLIED (an application awaiting review needs no
// separate pickup step).
func (a FinancingApplication) Approve(
	reviewerID string,
	interestRate decimal.Decimal,
	creditScore int,
	comment string,
	now time.Time,
) (FinancingApplication, error) {
	if !a.inReviewableState() {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusApproved)
	}
	if reviewerID == "" {
		return a, valueobject.NewValidation("reviewer ID is required")
	}
	if interestRate.LessThanOrEqual(decimal.Zero) {
		return a, valueobject.NewValidation("approval requires a positive interest rate")
	}
	if creditScore <= 0 {
		return a, valueobject.NewValidation("approval requires a credit score")
	}

	next := a
	next.status = valueobject.FinancingStatusApproved
	next.interestRate = interestRate
	next.creditScore = creditScore
	next.reviewerID = reviewerID
	next.reviewedAt = now
	next.reviewComment = comment
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingApproved(
		a.id, a.farmerID, reviewerID, a.amount, interestRate, a.termMonths,
	))
	return next, nil
}

// Reject records the review decision and moves the application to REJECTED.
func (a FinancingApplication) Reject(reviewerID, comment string, now time.Time) (FinancingApplication, error) {
	if !a.inReviewableState() {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusRejected)
	}
	if reviewerID == "" {
		return a, valueobject.NewValidation("reviewer ID is required")
	}
	if comment == "" {
		return a, valueobject.NewValidation("rejection requires a comment")
	}

	next := a
	next.status = valueobject.FinancingStatusRejected
	next.reviewerID = reviewerID
	next.reviewedAt = now
	next.reviewComment = comment
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingRejected(a.id, a.farmerID, reviewerID, comment))
	return next, nil
}

// Cancel withdraws the application before approval.
func (a FinancingApplication) Cancel(reason string, now time.Time) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusCancelled) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusCancelled)
	}
	next := a
	next.status = valueobject.FinancingStatusCancelled
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingCancelled(a.id, a.farmerID, reason))
	return next, nil
}

// AttachContract links the generated contract. Valid only when APPROVED and
// no contract is attached yet; the status does not change.
func (a FinancingApplication) AttachContract(contractID string, now time.Time) (FinancingApplication, error) {
	if !a.status.Equal(valueobject.FinancingStatusApproved) {
		return a, valueobject.NewInvalidState("contract can only be generated for an APPROVED application, status is %s", a.status)
	}
	if a.contractID != "" {
		return a, valueobject.NewInvalidState("application %s already has contract %s", a.id, a.contractID)
	}
	if contractID == "" {
		return a, valueobject.NewValidation("contract ID is required")
	}
	next := a
	next.contractID = contractID
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// MarkSigned transitions APPROVED -> SIGNED once both contract signatures are
// present.
func (a FinancingApplication) MarkSigned(now time.Time) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusSigned) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusSigned)
	}
	if a.contractID == "" {
		return a, valueobject.NewInvalidState("application %s has no contract to sign", a.id)
	}
	next := a
	next.status = valueobject.FinancingStatusSigned
	next.signedAt = now
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// Disburse transitions SIGNED -> DISBURSED. The amount must match the
// approved amount exactly; partial disbursement is not supported.
func (a FinancingApplication) Disburse(
	amount decimal.Decimal,
	firstDueDate time.Time,
	now time.Time,
) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusDisbursed) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusDisbursed)
	}
	if !amount.Equal(a.amount) {
		return a, valueobject.NewValidation(
			"disbursement amount %s does not match approved amount %s", amount, a.amount)
	}

	next := a
	next.status = valueobject.FinancingStatusDisbursed
	next.disbursedAt = now
	next.disbursedAmount = amount
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingDisbursed(
		a.id, a.farmerID, amount, firstDueDate, a.termMonths,
	))
	return next, nil
}

// StartRepaying transitions DISBURSED -> REPAYING. An application with an
// active schedule is always REPAYING, so this runs in the same transaction as
// the disbursement.
func (a FinancingApplication) StartRepaying(now time.Time) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusRepaying) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusRepaying)
	}
	next := a
	next.status = valueobject.FinancingStatusRepaying
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// Settle transitions REPAYING -> SETTLED once the last installment is paid.
func (a FinancingApplication) Settle(now time.Time) (FinancingApplication, error) {
	if !a.status.CanTransitionTo(valueobject.FinancingStatusSettled) {
		return a, valueobject.NewInvalidTransition(a.status, valueobject.FinancingStatusSettled)
	}
	next := a
	next.status = valueobject.FinancingStatusSettled
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingSettled(a.id, a.farmerID, now))
	return next, nil
}

// Touch bumps updatedAt without changing state. Used by the repayment path so
// concurrent writers on the same application collide on the version check.
func (a FinancingApplication) Touch(now time.Time) FinancingApplication {
	next := a
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next
}

func (a FinancingApplication) inReviewableState() bool {
	return a.status.Equal(valueobject.FinancingStatusApplied) ||
		a.status.Equal(valueobject.FinancingStatusReviewing)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a FinancingApplication) ID() string                             { return a.id }
func (a FinancingApplication) FarmerID() string                      { return a.farmerID }
func (a FinancingApplication) ProductID() string                     { return a.productID }
func (a FinancingApplication) GroupID() string                       { return a.groupID }
func (a FinancingApplication) Amount() decimal.Decimal               { return a.amount }
func (a FinancingApplication) TermMonths() int                       { return a.termMonths }
func (a FinancingApplication) Purpose() string                       { return a.purpose }
func (a FinancingApplication) Status() valueobject.FinancingStatus   { return a.status }
func (a FinancingApplication) InterestRate() decimal.Decimal         { return a.interestRate }
func (a FinancingApplication) CreditScore() int                      { return a.creditScore }
func (a FinancingApplication) ReviewerID() string                    { return a.reviewerID }
func (a FinancingApplication) ReviewedAt() time.Time                 { return a.reviewedAt }
func (a FinancingApplication) ReviewComment() string                 { return a.reviewComment }
func (a FinancingApplication) ContractID() string                    { return a.contractID }
func (a FinancingApplication) SignedAt() time.Time                   { return a.signedAt }
func (a FinancingApplication) DisbursedAt() time.Time                { return a.disbursedAt }
func (a FinancingApplication) DisbursedAmount() decimal.Decimal      { return a.disbursedAmount }
func (a FinancingApplication) Version() int                          { return a.version }
func (a FinancingApplication) CreatedAt() time.Time                  { return a.createdAt }
func (a FinancingApplication) UpdatedAt() time.Time                  { return a.updatedAt }
func (a FinancingApplication) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after collecting).
func (a FinancingApplication) ClearEvents() FinancingApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
