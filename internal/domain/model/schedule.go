package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RepaymentSchedule – one installment row, many per application
// ---------------------------------------------------------------------------

// RepaymentSchedule is one installment of a financing schedule. Rows are
// created in bulk at disbursement and transition independently.
type RepaymentSchedule struct {
	id                string
	financingID       string
	installmentNumber int
	dueDate           time.Time
	principal         decimal.Decimal
	interest          decimal.Decimal
	totalAmount       decimal.Decimal
	penalty           decimal.Decimal
	status            valueobject.ScheduleStatus
	paidAt            time.Time
	paidAmount        decimal.Decimal
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// BuildScheduleRows materializes persistence rows from a computed plan.
func BuildScheduleRows(financingID string, plan []InstallmentPlan, now time.Time) []RepaymentSchedule {
	rows := make([]RepaymentSchedule, 0, len(plan))
	for _, p := range plan {
		rows = append(rows, RepaymentSchedule{
			id:                uuid.New().String(),
			financingID:       financingID,
			installmentNumber: p.Period,
			dueDate:           p.DueDate,
			principal:         p.Principal,
			interest:          p.Interest,
			totalAmount:       p.Total,
			penalty:           decimal.Zero,
			status:            valueobject.ScheduleStatusPending,
			paidAmount:        decimal.Zero,
			version:           1,
			createdAt:         now,
			updatedAt:         now,
		})
	}
	return rows
}

// ReconstructRepaymentSchedule rebuilds a row from persistence.
func ReconstructRepaymentSchedule(
	id, financingID string,
	installmentNumber int,
	dueDate time.Time,
	principal, interest, totalAmount, penalty decimal.Decimal,
	status valueobject.ScheduleStatus,
	paidAt time.Time,
	paidAmount decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) RepaymentSchedule {
	return RepaymentSchedule{
		id:                id,
		financingID:       financingID,
		installmentNumber: installmentNumber,
		dueDate:           dueDate,
		principal:         principal,
		interest:          interest,
		totalAmount:       totalAmount,
		penalty:           penalty,
		status:            status,
		paidAt:            paidAt,
		paidAmount:        paidAmount,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// Credit applies amount toward this row. The row is marked PAID when the full
// amount due (total plus penalty) is covered. Crediting beyond the amount due
// or crediting a PAID row is an error; overflow across rows is handled by the
// repayment allocator, never by the row itself.
func (s RepaymentSchedule) Credit(amount decimal.Decimal, now time.Time) (RepaymentSchedule, error) {
	if s.status.Equal(valueobject.ScheduleStatusPaid) {
		return s, valueobject.NewInvalidState("installment %d is already paid", s.installmentNumber)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return s, valueobject.NewValidation("credit amount must be positive, got %s", amount)
	}
	outstanding := s.Outstanding()
	if amount.GreaterThan(outstanding) {
		return s, valueobject.NewValidation(
			"credit %s exceeds outstanding %s on installment %d", amount, outstanding, s.installmentNumber)
	}

	next := s
	next.paidAmount = s.paidAmount.Add(amount)
	next.updatedAt = now
	if next.paidAmount.GreaterThanOrEqual(s.totalAmount.Add(s.penalty)) {
		next.status = valueobject.ScheduleStatusPaid
		next.paidAt = now
	}
	return next, nil
}

// MarkOverdue transitions PENDING -> OVERDUE and records the accrued penalty.
func (s RepaymentSchedule) MarkOverdue(penalty decimal.Decimal, now time.Time) (RepaymentSchedule, error) {
	if !s.status.Equal(valueobject.ScheduleStatusPending) {
		return s, valueobject.NewInvalidState(
			"only a PENDING installment can become overdue, installment %d is %s", s.installmentNumber, s.status)
	}
	if penalty.IsNegative() {
		return s, valueobject.NewValidation("penalty must not be negative, got %s", penalty)
	}
	next := s
	next.status = valueobject.ScheduleStatusOverdue
	next.penalty = penalty
	next.updatedAt = now
	return next, nil
}

// RefreshPenalty updates the accrued penalty on an OVERDUE row.
func (s RepaymentSchedule) RefreshPenalty(penalty decimal.Decimal, now time.Time) (RepaymentSchedule, error) {
	if !s.status.Equal(valueobject.ScheduleStatusOverdue) {
		return s, valueobject.NewInvalidState(
			"penalty only accrues on an OVERDUE installment, installment %d is %s", s.installmentNumber, s.status)
	}
	if penalty.LessThan(s.penalty) {
		return s, valueobject.NewValidation("penalty cannot decrease")
	}
	next := s
	next.penalty = penalty
	next.updatedAt = now
	return next, nil
}

// Outstanding returns the unpaid remainder of this row including penalty.
func (s RepaymentSchedule) Outstanding() decimal.Decimal {
	return s.totalAmount.Add(s.penalty).Sub(s.paidAmount)
}

// IsSettled reports whether the row is fully paid.
func (s RepaymentSchedule) IsSettled() bool {
	return s.status.Equal(valueobject.ScheduleStatusPaid)
}

// IsOverdueAsOf reports whether the row is unpaid and past due on the given
// date.
func (s RepaymentSchedule) IsOverdueAsOf(date time.Time) bool {
	return !s.IsSettled() && s.dueDate.Before(date)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s RepaymentSchedule) ID() string                          { return s.id }
func (s RepaymentSchedule) FinancingID() string                 { return s.financingID }
func (s RepaymentSchedule) InstallmentNumber() int              { return s.installmentNumber }
func (s RepaymentSchedule) DueDate() time.Time                  { return s.dueDate }
func (s RepaymentSchedule) Principal() decimal.Decimal          { return s.principal }
func (s RepaymentSchedule) Interest() decimal.Decimal           { return s.interest }
func (s RepaymentSchedule) TotalAmount() decimal.Decimal        { return s.totalAmount }
func (s RepaymentSchedule) Penalty() decimal.Decimal            { return s.penalty }
func (s RepaymentSchedule) Status() valueobject.ScheduleStatus  { return s.status }
func (s RepaymentSchedule) PaidAt() time.Time                   { return s.paidAt }
func (s RepaymentSchedule) PaidAmount() decimal.Decimal         { return s.paidAmount }
func (s RepaymentSchedule) Version() int                        { return s.version }
func (s RepaymentSchedule) CreatedAt() time.Time                { return s.createdAt }
func (s RepaymentSchedule) UpdatedAt() time.Time                { return s.updatedAt }
