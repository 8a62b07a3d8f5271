package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ScheduleMethod selects the amortization method.
type ScheduleMethod string

const (
	// MethodAnnuity keeps the total installment constant; the
	// principal/interest split shifts over the term.
	MethodAnnuity ScheduleMethod = "ANNUITY"

	// MethodEqualPrincipal keeps the principal component constant; the total
	// installment declines over the term.
	MethodEqualPrincipal ScheduleMethod = "EQUAL_PRINCIPAL"
)

// InstallmentPlan is one computed period of an amortization schedule. It is a
// pure calculation result; persistence rows are built from it at disbursement.
type InstallmentPlan struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateSchedule computes an ordered installment schedule.
//
// Parameters:
//   - principal:         the disbursed amount
//   - annualRatePercent: annual interest rate in percent (e.g. 12 = 12.00%)
//   - termMonths:        number of monthly periods, 1..120
//   - startDate:         disbursement date; installment k is due k months later
//   - method:            annuity (default) or equal-principal
//
// The annuity payment uses:
//
//	monthlyRate = annualRatePercent / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The final installment's principal is forced to the remaining balance so the
// schedule's principal components always sum to the disbursed amount.
func GenerateSchedule(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
	startDate time.Time,
	method ScheduleMethod,
) ([]InstallmentPlan, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, valueobject.NewValidation("principal must be positive, got %s", principal)
	}
	if termMonths < 1 || termMonths > 120 {
		return nil, valueobject.NewValidation("term months must be in [1,120], got %d", termMonths)
	}
	if annualRatePercent.IsNegative() {
		return nil, valueobject.NewValidation("annual rate must not be negative, got %s", annualRatePercent)
	}
	if method == "" {
		method = MethodAnnuity
	}

	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))

	switch method {
	case MethodAnnuity:
		return annuitySchedule(principal, monthlyRate, termMonths, startDate), nil
	case MethodEqualPrincipal:
		return equalPrincipalSchedule(principal, monthlyRate, termMonths, startDate), nil
	default:
		return nil, valueobject.NewValidation("unknown schedule method: %q", method)
	}
}

func annuitySchedule(
	principal, monthlyRate decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []InstallmentPlan {
	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		// Zero-interest: even split.
		payment = principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	} else {
		// P * r * (1+r)^n / ((1+r)^n - 1). The power term uses float64, then
		// everything returns to decimal for monetary arithmetic.
		r := monthlyRate.InexactFloat64()
		factor := math.Pow(1+r, float64(termMonths))
		paymentFloat := principal.InexactFloat64() * r * factor / (factor - 1)
		payment = decimal.NewFromFloat(paymentFloat).Round(2)
	}

	schedule := make([]InstallmentPlan, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		total := payment

		// Last period absorbs the rounding drift: principal is forced to the
		// remaining balance exactly.
		if period == termMonths {
			principalPart = remaining
			total = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, InstallmentPlan{
			Period:           period,
			DueDate:          addMonthsClamped(startDate, period),
			Principal:        principalPart,
			Interest:         interest,
			Total:            total,
			RemainingBalance: remaining,
		})
	}

	return schedule
}

func equalPrincipalSchedule(
	principal, monthlyRate decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []InstallmentPlan {
	principalPart := principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)

	schedule := make([]InstallmentPlan, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		part := principalPart
		if period == termMonths {
			part = remaining
		}

		remaining = remaining.Sub(part)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, InstallmentPlan{
			Period:           period,
			DueDate:          addMonthsClamped(startDate, period),
			Principal:        part,
			Interest:         interest,
			Total:            part.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// addMonthsClamped adds months keeping the day-of-month, clamping to the last
// day of the target month when the source day does not exist there
// (e.g. Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	targetFirst := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := targetFirst.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(targetFirst.Year(), targetFirst.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
