package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tolerance = decimal.NewFromFloat(0.01)

func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, actual.Sub(expected).Abs().LessThanOrEqual(tolerance),
		"expected %s, got %s (%v)", expected, actual, msgAndArgs)
}

// 12,000 at 12% annual over 12 months: the classic annuity produces a flat
// payment of 1066.19 with the principal share growing each period.
func TestGenerateSchedule_AnnuityOneYear(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule(
		decimal.NewFromInt(12000), decimal.NewFromInt(12), 12, start, MethodAnnuity)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	expectedPayment := decimal.NewFromFloat(1066.19)
	for _, p := range schedule[:11] {
		assertDecimalEqual(t, expectedPayment, p.Total, "period %d", p.Period)
	}

	// First period: interest on the full balance, 12000 * 1% = 120.
	assertDecimalEqual(t, decimal.NewFromInt(120), schedule[0].Interest)
	assertDecimalEqual(t, decimal.NewFromFloat(946.19), schedule[0].Principal)

	// Principal components must sum to the disbursed amount exactly.
	principalSum := decimal.Zero
	for _, p := range schedule {
		principalSum = principalSum.Add(p.Principal)
	}
	assert.True(t, principalSum.Equal(decimal.NewFromInt(12000)),
		"principal sum %s should equal 12000 exactly", principalSum)

	last := schedule[11]
	assert.True(t, last.RemainingBalance.IsZero(),
		"final remaining balance should be zero, got %s", last.RemainingBalance)
	assert.Equal(t, 12, last.Period)

	// Interest declines as the balance amortizes.
	assert.True(t, last.Interest.LessThan(schedule[0].Interest))
}

func TestGenerateSchedule_EqualPrincipal(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule(
		decimal.NewFromInt(12000), decimal.NewFromInt(12), 12, start, MethodEqualPrincipal)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, p := range schedule {
		assertDecimalEqual(t, decimal.NewFromInt(1000), p.Principal, "period %d", p.Period)
	}

	// Interest tracks the declining balance: 120, then 110, then 100...
	assertDecimalEqual(t, decimal.NewFromInt(120), schedule[0].Interest)
	assertDecimalEqual(t, decimal.NewFromInt(110), schedule[1].Interest)
	assert.True(t, schedule[1].Total.LessThan(schedule[0].Total),
		"installments should decline over the term")
	assert.True(t, schedule[11].RemainingBalance.IsZero())
}

func TestGenerateSchedule_ZeroRateSplitsEvenly(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule(
		decimal.NewFromInt(9000), decimal.Zero, 6, start, MethodAnnuity)
	require.NoError(t, err)
	require.Len(t, schedule, 6)

	for _, p := range schedule {
		assert.True(t, p.Interest.IsZero(), "period %d should carry no interest", p.Period)
		assertDecimalEqual(t, decimal.NewFromInt(1500), p.Principal)
	}
	assert.True(t, schedule[5].RemainingBalance.IsZero())
}

func TestGenerateSchedule_EmptyMethodDefaultsToAnnuity(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	defaulted, err := GenerateSchedule(decimal.NewFromInt(5000), decimal.NewFromInt(6), 10, start, "")
	require.NoError(t, err)
	explicit, err := GenerateSchedule(decimal.NewFromInt(5000), decimal.NewFromInt(6), 10, start, MethodAnnuity)
	require.NoError(t, err)

	require.Len(t, defaulted, len(explicit))
	for i := range defaulted {
		assert.True(t, defaulted[i].Total.Equal(explicit[i].Total))
	}
}

func TestGenerateSchedule_DueDatesClampToMonthEnd(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule(
		decimal.NewFromInt(3000), decimal.NewFromInt(10), 4, start, MethodAnnuity)
	require.NoError(t, err)
	require.Len(t, schedule, 4)

	// Jan 31 + 1 month lands on Feb 28 (2025 is not a leap year), then back
	// to the 31st or the month's last day.
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), schedule[2].DueDate)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), schedule[3].DueDate)
}

func TestGenerateSchedule_RejectsInvalidInput(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := GenerateSchedule(decimal.Zero, decimal.NewFromInt(12), 12, start, MethodAnnuity)
	assert.Error(t, err, "zero principal")

	_, err = GenerateSchedule(decimal.NewFromInt(-100), decimal.NewFromInt(12), 12, start, MethodAnnuity)
	assert.Error(t, err, "negative principal")

	_, err = GenerateSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(12), 0, start, MethodAnnuity)
	assert.Error(t, err, "zero term")

	_, err = GenerateSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(12), 121, start, MethodAnnuity)
	assert.Error(t, err, "term over 120 months")

	_, err = GenerateSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(-1), 12, start, MethodAnnuity)
	assert.Error(t, err, "negative rate")

	_, err = GenerateSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(12), 12, start, ScheduleMethod("BALLOON"))
	assert.Error(t, err, "unknown method")
}
