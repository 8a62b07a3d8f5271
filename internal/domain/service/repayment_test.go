package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

var tolerance = decimal.NewFromFloat(0.01)

// makeRow builds one installment row with explicit components so the
// waterfall arithmetic is easy to follow.
func makeRow(
	id string,
	number int,
	dueDate time.Time,
	principal, interest, penalty, paidAmount decimal.Decimal,
	status valueobject.ScheduleStatus,
) model.RepaymentSchedule {
	return model.ReconstructRepaymentSchedule(
		id, "fin-1", number, dueDate,
		principal, interest, principal.Add(interest), penalty,
		status,
		time.Time{}, paidAmount,
		1, dueDate.AddDate(0, -2, 0), dueDate.AddDate(0, -2, 0),
	)
}

func TestAllocate_TargetedPaymentSettlesRow(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
		makeRow("row-2", 2, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
	}

	result, err := NewRepaymentAllocator().Allocate(rows, "row-1", decimal.NewFromInt(110), now)
	require.NoError(t, err)
	require.Len(t, result.Splits, 1)

	split := result.Splits[0]
	assert.True(t, split.RepaymentType.Equal(valueobject.RepaymentTypeNormal))
	assert.True(t, split.Interest.Equal(decimal.NewFromInt(10)))
	assert.True(t, split.Principal.Equal(decimal.NewFromInt(100)))
	assert.True(t, split.Penalty.IsZero())
	assert.True(t, split.Schedule.IsSettled())
	assert.False(t, result.AllSettled, "row-2 is still open")
}

func TestAllocate_PenaltyComesFirstOnOverdueRow(t *testing.T) {
	now := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(5), decimal.Zero,
			valueobject.ScheduleStatusOverdue),
	}

	result, err := NewRepaymentAllocator().Allocate(rows, "row-1", decimal.NewFromInt(12), now)
	require.NoError(t, err)
	require.Len(t, result.Splits, 1)

	split := result.Splits[0]
	assert.True(t, split.RepaymentType.Equal(valueobject.RepaymentTypeOverdue))
	assert.True(t, split.Penalty.Equal(decimal.NewFromInt(5)), "penalty is paid first")
	assert.True(t, split.Interest.Equal(decimal.NewFromInt(7)), "then interest")
	assert.True(t, split.Principal.IsZero())
	assert.False(t, split.Schedule.IsSettled())
}

func TestAllocate_PartialPaymentsConsumeWaterfallInOrder(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	// 5 already paid: it covered the 5 penalty, so interest is next in line.
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(5), decimal.NewFromInt(5),
			valueobject.ScheduleStatusOverdue),
	}

	result, err := NewRepaymentAllocator().Allocate(rows, "row-1", decimal.NewFromInt(10), now)
	require.NoError(t, err)
	require.Len(t, result.Splits, 1)

	split := result.Splits[0]
	assert.True(t, split.Penalty.IsZero(), "the penalty was already covered")
	assert.True(t, split.Interest.Equal(decimal.NewFromInt(10)))
	assert.True(t, split.Principal.IsZero())
}

func TestAllocate_UntargetedPaymentCascadesAsEarly(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.RepaymentSchedule{
		makeRow("row-2", 2, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
	}

	// 150 settles installment 1 (110) and leaves 40 on installment 2.
	result, err := NewRepaymentAllocator().Allocate(rows, "", decimal.NewFromInt(150), now)
	require.NoError(t, err)
	require.Len(t, result.Splits, 2)

	first, second := result.Splits[0], result.Splits[1]
	assert.Equal(t, 1, first.Schedule.InstallmentNumber(), "cascade runs in installment order")
	assert.True(t, first.RepaymentType.Equal(valueobject.RepaymentTypeEarly))
	assert.True(t, first.Schedule.IsSettled())

	assert.Equal(t, 2, second.Schedule.InstallmentNumber())
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, second.Interest.Equal(decimal.NewFromInt(8)))
	assert.True(t, second.Principal.Equal(decimal.NewFromInt(32)))
	assert.False(t, second.Schedule.IsSettled())
	assert.False(t, result.AllSettled)
}

func TestAllocate_FullPayoffReportsAllSettled(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
		makeRow("row-2", 2, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
	}

	result, err := NewRepaymentAllocator().Allocate(rows, "", decimal.NewFromInt(218), now)
	require.NoError(t, err)
	require.Len(t, result.Splits, 2)
	assert.True(t, result.AllSettled)
	for _, s := range result.Splits {
		assert.True(t, s.Schedule.IsSettled())
	}
}

func TestAllocate_Rejections(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	allocator := NewRepaymentAllocator()
	open := makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
		valueobject.ScheduleStatusPending)
	paid := makeRow("row-2", 2, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.Zero, decimal.NewFromInt(108),
		valueobject.ScheduleStatusPaid)

	_, err := allocator.Allocate([]model.RepaymentSchedule{open}, "", decimal.Zero, now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation), "non-positive amount")

	_, err = allocator.Allocate(nil, "", decimal.NewFromInt(10), now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState), "empty schedule")

	_, err = allocator.Allocate([]model.RepaymentSchedule{open}, "row-99", decimal.NewFromInt(10), now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeNotFound), "unknown target row")

	_, err = allocator.Allocate([]model.RepaymentSchedule{open, paid}, "row-2", decimal.NewFromInt(10), now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState), "target already paid")

	_, err = allocator.Allocate([]model.RepaymentSchedule{paid}, "", decimal.NewFromInt(10), now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState), "fully paid schedule")

	_, err = allocator.Allocate([]model.RepaymentSchedule{open}, "", decimal.NewFromInt(111), now)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation), "exceeds outstanding debt")
}

func TestCalculateEarlyQuote_ProratesNearestInstallment(t *testing.T) {
	allocator := NewRepaymentAllocator()
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
		makeRow("row-2", 2, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
	}

	// Halfway through the first period (Jun 1 .. Jul 1): 15 of 30 days.
	asOf := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	quote, err := allocator.CalculateEarlyQuote(rows, decimal.NewFromInt(300), asOf)
	require.NoError(t, err)

	assert.True(t, quote.OutstandingPrincipal.Equal(decimal.NewFromInt(200)))
	assert.True(t, quote.AccruedInterest.Sub(decimal.NewFromInt(5)).Abs().LessThanOrEqual(tolerance),
		"half of the 10 interest has accrued, got %s", quote.AccruedInterest)
	assert.True(t, quote.InterestSaved.Sub(decimal.NewFromInt(13)).Abs().LessThanOrEqual(tolerance),
		"the rest of the interest is saved, got %s", quote.InterestSaved)
	assert.True(t, quote.PenaltyDue.IsZero())
	assert.True(t, quote.PrincipalCovered.Equal(decimal.NewFromInt(200)),
		"300 covers all charges and all outstanding principal")
	assert.True(t, quote.RemainingBalance.IsZero())
}

func TestCalculateEarlyQuote_SmallAmountCoversChargesFirst(t *testing.T) {
	allocator := NewRepaymentAllocator()
	rows := []model.RepaymentSchedule{
		makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			valueobject.ScheduleStatusPending),
	}

	// On the due date all interest has accrued.
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	quote, err := allocator.CalculateEarlyQuote(rows, decimal.NewFromInt(50), asOf)
	require.NoError(t, err)

	assert.True(t, quote.AccruedInterest.Equal(decimal.NewFromInt(10)))
	assert.True(t, quote.InterestSaved.IsZero())
	assert.True(t, quote.PrincipalCovered.Equal(decimal.NewFromInt(40)))
	assert.True(t, quote.RemainingBalance.Equal(decimal.NewFromInt(60)))
}

func TestCalculateEarlyQuote_Rejections(t *testing.T) {
	allocator := NewRepaymentAllocator()
	paid := makeRow("row-1", 1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(110),
		valueobject.ScheduleStatusPaid)

	_, err := allocator.CalculateEarlyQuote([]model.RepaymentSchedule{paid}, decimal.Zero, time.Now())
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation))

	_, err = allocator.CalculateEarlyQuote([]model.RepaymentSchedule{paid}, decimal.NewFromInt(10), time.Now())
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState), "nothing left to repay")

	_, err = allocator.CalculateEarlyQuote(nil, decimal.NewFromInt(10), time.Now())
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeNotFound),
		"an undisbursed financing has no schedule at all")
}

func TestOverduePenalty(t *testing.T) {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	row := makeRow("row-1", 1, due,
		decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
		valueobject.ScheduleStatusPending)

	assert.True(t, OverduePenalty(row, DefaultPenaltyDailyRate, due).IsZero(),
		"no penalty on the due date")
	assert.True(t, OverduePenalty(row, DefaultPenaltyDailyRate, due.AddDate(0, 0, -5)).IsZero(),
		"no penalty before the due date")

	// 110 * 0.0005 * 10 days = 0.55.
	got := OverduePenalty(row, DefaultPenaltyDailyRate, due.AddDate(0, 0, 10))
	assert.True(t, got.Equal(decimal.NewFromFloat(0.55)), "got %s", got)
}
