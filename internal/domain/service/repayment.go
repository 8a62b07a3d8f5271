package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RepaymentAllocator – domain service for payment waterfall and cascading
// ---------------------------------------------------------------------------

// PaymentSplit is the waterfall breakdown of a payment against one schedule
// row. Schedule carries the credited copy of the row.
type PaymentSplit struct {
	Schedule      model.RepaymentSchedule
	RepaymentType valueobject.RepaymentType
	Amount        decimal.Decimal
	Principal     decimal.Decimal
	Interest      decimal.Decimal
	Penalty       decimal.Decimal
}

// AllocationResult is the outcome of applying one payment across the
// schedule.
type AllocationResult struct {
	Splits     []PaymentSplit
	AllSettled bool
}

// RepaymentAllocator splits a payment across schedule rows. Within one row
// the waterfall is penalty, then interest, then principal; overflow cascades
// into subsequent unsettled rows in installment order.
type RepaymentAllocator struct{}

// NewRepaymentAllocator returns a new allocator instance.
func NewRepaymentAllocator() *RepaymentAllocator {
	return &RepaymentAllocator{}
}

// Allocate applies amount against the schedule. When targetScheduleID is set
// the payment starts at that row (a normal or overdue repayment); otherwise
// it starts at the nearest unpaid row and is classified as early. The payment
// must not exceed the total outstanding debt from the starting row onward.
func (a *RepaymentAllocator) Allocate(
	rows []model.RepaymentSchedule,
	targetScheduleID string,
	amount decimal.Decimal,
	now time.Time,
) (AllocationResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return AllocationResult{}, valueobject.NewValidation("repayment amount must be positive, got %s", amount)
	}
	if len(rows) == 0 {
		return AllocationResult{}, valueobject.NewInvalidState("no schedule to repay")
	}

	ordered := make([]model.RepaymentSchedule, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].InstallmentNumber() < ordered[j].InstallmentNumber()
	})

	start := 0
	targeted := targetScheduleID != ""
	if targeted {
		start = -1
		for i, r := range ordered {
			if r.ID() == targetScheduleID {
				start = i
				break
			}
		}
		if start < 0 {
			return AllocationResult{}, valueobject.NotFound("schedule", targetScheduleID)
		}
		if ordered[start].IsSettled() {
			return AllocationResult{}, valueobject.NewInvalidState(
				"installment %d is already paid", ordered[start].InstallmentNumber())
		}
	} else {
		for start < len(ordered) && ordered[start].IsSettled() {
			start++
		}
		if start == len(ordered) {
			return AllocationResult{}, valueobject.NewInvalidState("schedule is already fully paid")
		}
	}

	outstanding := decimal.Zero
	for _, r := range ordered[start:] {
		outstanding = outstanding.Add(r.Outstanding())
	}
	if amount.GreaterThan(outstanding) {
		return AllocationResult{}, valueobject.NewValidation(
			"repayment %s exceeds outstanding debt %s", amount, outstanding)
	}

	result := AllocationResult{}
	remaining := amount
	for i := start; i < len(ordered) && remaining.GreaterThan(decimal.Zero); i++ {
		row := ordered[i]
		if row.IsSettled() {
			continue
		}

		penaltyDue, interestDue, principalDue := remainingComponents(row)

		applied := decimal.Min(remaining, row.Outstanding())
		penaltyPart := decimal.Min(applied, penaltyDue)
		interestPart := decimal.Min(applied.Sub(penaltyPart), interestDue)
		principalPart := applied.Sub(penaltyPart).Sub(interestPart)
		if principalPart.GreaterThan(principalDue) {
			principalPart = principalDue
		}

		credited, err := row.Credit(applied, now)
		if err != nil {
			return AllocationResult{}, err
		}
		ordered[i] = credited

		result.Splits = append(result.Splits, PaymentSplit{
			Schedule:      credited,
			RepaymentType: classifyRepayment(row, targeted, now),
			Amount:        applied,
			Principal:     principalPart,
			Interest:      interestPart,
			Penalty:       penaltyPart,
		})
		remaining = remaining.Sub(applied)
	}

	result.AllSettled = true
	for _, r := range ordered {
		if !r.IsSettled() {
			result.AllSettled = false
			break
		}
	}
	return result, nil
}

// remainingComponents splits a row's outstanding amount back into penalty,
// interest and principal components, consuming prior partial payments in the
// same waterfall order the allocator pays them.
func remainingComponents(row model.RepaymentSchedule) (penalty, interest, principal decimal.Decimal) {
	penalty = row.Penalty()
	interest = row.Interest()
	principal = row.Principal()

	paid := row.PaidAmount()
	take := decimal.Min(paid, penalty)
	penalty = penalty.Sub(take)
	paid = paid.Sub(take)

	take = decimal.Min(paid, interest)
	interest = interest.Sub(take)
	paid = paid.Sub(take)

	principal = principal.Sub(paid)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	return penalty, interest, principal
}

func classifyRepayment(row model.RepaymentSchedule, targeted bool, now time.Time) valueobject.RepaymentType {
	if row.Status().Equal(valueobject.ScheduleStatusOverdue) || row.IsOverdueAsOf(now) {
		return valueobject.RepaymentTypeOverdue
	}
	if targeted {
		return valueobject.RepaymentTypeNormal
	}
	return valueobject.RepaymentTypeEarly
}

// ---------------------------------------------------------------------------
// Early repayment quote – read-only decision support
// ---------------------------------------------------------------------------

// EarlyRepaymentQuote is the breakdown a farmer sees before deciding to repay
// early. Computing it never mutates any row.
type EarlyRepaymentQuote struct {
	OutstandingPrincipal decimal.Decimal
	PenaltyDue           decimal.Decimal
	AccruedInterest      decimal.Decimal
	InterestSaved        decimal.Decimal
	PrincipalCovered     decimal.Decimal
	RemainingBalance     decimal.Decimal
}

// CalculateEarlyQuote computes how much of amount would cover outstanding
// principal versus accrued interest as of repaymentDate.
//
// Interest on the nearest unpaid installment accrues linearly over its
// period: interest * daysElapsed / daysInPeriod, where the period runs from
// the previous installment's due date (or one month before the first due
// date) to the row's due date. Interest on later installments has not started
// accruing and counts entirely as saved.
func (a *RepaymentAllocator) CalculateEarlyQuote(
	rows []model.RepaymentSchedule,
	amount decimal.Decimal,
	repaymentDate time.Time,
) (EarlyRepaymentQuote, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return EarlyRepaymentQuote{}, valueobject.NewValidation("amount must be positive, got %s", amount)
	}
	if len(rows) == 0 {
		return EarlyRepaymentQuote{}, valueobject.NewNotFound("no repayment schedule to quote")
	}

	ordered := make([]model.RepaymentSchedule, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].InstallmentNumber() < ordered[j].InstallmentNumber()
	})

	var (
		outstandingPrincipal = decimal.Zero
		remainingInterest    = decimal.Zero
		penaltyDue           = decimal.Zero
		accrued              = decimal.Zero
		first                = true
	)
	for i, r := range ordered {
		if r.IsSettled() {
			continue
		}
		pen, intr, prin := remainingComponents(r)
		outstandingPrincipal = outstandingPrincipal.Add(prin)
		remainingInterest = remainingInterest.Add(intr)
		penaltyDue = penaltyDue.Add(pen)

		if first {
			first = false
			periodStart := r.DueDate().AddDate(0, -1, 0)
			if i > 0 {
				periodStart = ordered[i-1].DueDate()
			}
			accrued = prorateInterest(intr, periodStart, r.DueDate(), repaymentDate)
		}
	}
	if first {
		return EarlyRepaymentQuote{}, valueobject.NewInvalidState("schedule is already fully paid")
	}

	charges := accrued.Add(penaltyDue)
	principalCovered := amount.Sub(charges)
	if principalCovered.IsNegative() {
		principalCovered = decimal.Zero
	}
	if principalCovered.GreaterThan(outstandingPrincipal) {
		principalCovered = outstandingPrincipal
	}

	return EarlyRepaymentQuote{
		OutstandingPrincipal: outstandingPrincipal,
		PenaltyDue:           penaltyDue,
		AccruedInterest:      accrued,
		InterestSaved:        remainingInterest.Sub(accrued),
		PrincipalCovered:     principalCovered,
		RemainingBalance:     outstandingPrincipal.Sub(principalCovered),
	}, nil
}

// prorateInterest accrues fullInterest linearly across [periodStart, dueDate]
// and returns the portion earned by asOf. Clamped to [0, fullInterest].
func prorateInterest(fullInterest decimal.Decimal, periodStart, dueDate, asOf time.Time) decimal.Decimal {
	if !asOf.After(periodStart) {
		return decimal.Zero
	}
	if !asOf.Before(dueDate) {
		return fullInterest
	}
	periodDays := dueDate.Sub(periodStart).Hours() / 24
	elapsedDays := asOf.Sub(periodStart).Hours() / 24
	if periodDays <= 0 {
		return fullInterest
	}
	return fullInterest.
		Mul(decimal.NewFromFloat(elapsedDays)).
		Div(decimal.NewFromFloat(periodDays)).
		Round(2)
}

// ---------------------------------------------------------------------------
// Overdue penalty
// ---------------------------------------------------------------------------

// DefaultPenaltyDailyRate is 5 basis points of the installment total per day
// overdue.
var DefaultPenaltyDailyRate = decimal.NewFromFloat(0.0005)

// OverduePenalty computes the penalty accrued on a row as of the given date:
// totalAmount * dailyRate * daysOverdue, rounded to cents.
func OverduePenalty(row model.RepaymentSchedule, dailyRate decimal.Decimal, asOf time.Time) decimal.Decimal {
	if !row.DueDate().Before(asOf) {
		return decimal.Zero
	}
	days := int(asOf.Sub(row.DueDate()).Hours() / 24)
	if days <= 0 {
		return decimal.Zero
	}
	return row.TotalAmount().Mul(dailyRate).Mul(decimal.NewFromInt(int64(days))).Round(2)
}
