package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// RepaymentSummaryUseCase aggregates schedule rows and ledger sums for one
// financing. Pure read.
type RepaymentSummaryUseCase struct {
	uow port.UnitOfWork
}

// NewRepaymentSummaryUseCase wires dependencies.
func NewRepaymentSummaryUseCase(uow port.UnitOfWork) *RepaymentSummaryUseCase {
	return &RepaymentSummaryUseCase{uow: uow}
}

// Execute computes the summary.
func (uc *RepaymentSummaryUseCase) Execute(
	ctx context.Context,
	req dto.FinancingQueryRequest,
) (dto.RepaymentSummaryResponse, error) {
	resp := dto.RepaymentSummaryResponse{
		FinancingID:   req.FinancingID,
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		OverdueAmount: decimal.Zero,
		PaidPrincipal: decimal.Zero,
		PaidInterest:  decimal.Zero,
		PaidPenalty:   decimal.Zero,
	}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		rows, err := repos.Schedules().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find schedule: %w", err)
		}

		for _, r := range rows {
			resp.TotalInstallments++
			resp.TotalAmount = resp.TotalAmount.Add(r.TotalAmount())
			switch {
			case r.Status().Equal(valueobject.ScheduleStatusPaid):
				resp.PaidInstallments++
				resp.PaidAmount = resp.PaidAmount.Add(r.PaidAmount())
			case r.Status().Equal(valueobject.ScheduleStatusOverdue):
				resp.OverdueInstallments++
				resp.OverdueAmount = resp.OverdueAmount.Add(r.Outstanding())
				resp.PaidAmount = resp.PaidAmount.Add(r.PaidAmount())
			default:
				resp.PendingInstallments++
				resp.PendingAmount = resp.PendingAmount.Add(r.Outstanding())
				resp.PaidAmount = resp.PaidAmount.Add(r.PaidAmount())
			}
		}

		records, err := repos.Records().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find records: %w", err)
		}
		for _, rec := range records {
			resp.PaidPrincipal = resp.PaidPrincipal.Add(rec.Principal)
			resp.PaidInterest = resp.PaidInterest.Add(rec.Interest)
			resp.PaidPenalty = resp.PaidPenalty.Add(rec.Penalty)
		}
		return nil
	})
	if err != nil {
		return dto.RepaymentSummaryResponse{}, err
	}
	return resp, nil
}

// FarmerStatisticsUseCase aggregates a farmer's financing activity across all
// applications. Pure read.
type FarmerStatisticsUseCase struct {
	uow port.UnitOfWork
}

// NewFarmerStatisticsUseCase wires dependencies.
func NewFarmerStatisticsUseCase(uow port.UnitOfWork) *FarmerStatisticsUseCase {
	return &FarmerStatisticsUseCase{uow: uow}
}

// Execute computes per-farmer aggregates.
func (uc *FarmerStatisticsUseCase) Execute(
	ctx context.Context,
	req dto.FarmerStatisticsRequest,
) (dto.FarmerStatisticsResponse, error) {
	resp := dto.FarmerStatisticsResponse{
		FarmerID:         req.FarmerID,
		TotalFinanced:    decimal.Zero,
		TotalRepaid:      decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		apps, err := repos.Applications().FindByFarmerID(ctx, req.FarmerID)
		if err != nil {
			return fmt.Errorf("find applications: %w", err)
		}

		for _, app := range apps {
			resp.TotalApplications++
			switch {
			case app.Status().Equal(valueobject.FinancingStatusSettled):
				resp.SettledApplications++
			case app.Status().Equal(valueobject.FinancingStatusRepaying),
				app.Status().Equal(valueobject.FinancingStatusDisbursed):
				resp.ActiveApplications++
			}
			if !app.DisbursedAmount().IsZero() {
				resp.TotalFinanced = resp.TotalFinanced.Add(app.DisbursedAmount())
			}

			if !app.Status().Equal(valueobject.FinancingStatusRepaying) &&
				!app.Status().Equal(valueobject.FinancingStatusSettled) {
				continue
			}
			rows, err := repos.Schedules().FindByFinancingID(ctx, app.ID())
			if err != nil {
				return fmt.Errorf("find schedule: %w", err)
			}
			for _, r := range rows {
				resp.TotalRepaid = resp.TotalRepaid.Add(r.PaidAmount())
				if !r.IsSettled() {
					resp.TotalOutstanding = resp.TotalOutstanding.Add(r.Outstanding())
				}
			}
		}
		return nil
	})
	if err != nil {
		return dto.FarmerStatisticsResponse{}, err
	}
	return resp, nil
}
