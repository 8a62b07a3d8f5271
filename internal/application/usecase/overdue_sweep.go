package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/service"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// OverdueSweepUseCase marks past-due PENDING installments OVERDUE and records
// the accrued penalty. It creates no ledger entries; it only moves schedule
// status and notifies the farmer. Each financing is swept in its own
// transaction so one conflicting loan never blocks the rest of the batch.
type OverdueSweepUseCase struct {
	uow              port.UnitOfWork
	notifier         port.NotificationPort
	logger           *slog.Logger
	penaltyDailyRate decimal.Decimal
	batchSize        int
}

// NewOverdueSweepUseCase wires dependencies.
func NewOverdueSweepUseCase(
	uow port.UnitOfWork,
	notifier port.NotificationPort,
	logger *slog.Logger,
	penaltyDailyRate decimal.Decimal,
	batchSize int,
) *OverdueSweepUseCase {
	if penaltyDailyRate.LessThanOrEqual(decimal.Zero) {
		penaltyDailyRate = service.DefaultPenaltyDailyRate
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &OverdueSweepUseCase{
		uow:              uow,
		notifier:         notifier,
		logger:           logger,
		penaltyDailyRate: penaltyDailyRate,
		batchSize:        batchSize,
	}
}

// Execute runs one sweep as of the given date.
func (uc *OverdueSweepUseCase) Execute(
	ctx context.Context,
	req dto.OverdueSweepRequest,
) (dto.OverdueSweepResponse, error) {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	// Collect due rows first, grouped per financing.
	perFinancing := map[string][]string{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		rows, err := repos.Schedules().FindDueBefore(ctx, asOf, uc.batchSize)
		if err != nil {
			return fmt.Errorf("find due rows: %w", err)
		}
		for _, r := range rows {
			perFinancing[r.FinancingID()] = append(perFinancing[r.FinancingID()], r.ID())
		}
		return nil
	})
	if err != nil {
		return dto.OverdueSweepResponse{}, err
	}

	resp := dto.OverdueSweepResponse{}
	for financingID := range perFinancing {
		marked, sweepErr := uc.sweepFinancing(ctx, financingID, asOf)
		if sweepErr != nil {
			// A version conflict here means a repayment won the race; the
			// next sweep picks the row up again.
			uc.logger.Warn("overdue sweep skipped financing",
				"financing_id", financingID, "error", sweepErr)
			continue
		}
		if marked > 0 {
			resp.RowsMarked += marked
			resp.FinancingIDs = append(resp.FinancingIDs, financingID)
		}
	}
	return resp, nil
}

func (uc *OverdueSweepUseCase) sweepFinancing(ctx context.Context, financingID string, asOf time.Time) (int, error) {
	marked := 0
	farmerID := ""
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		marked = 0

		app, err := repos.Applications().FindByID(ctx, financingID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}

		farmerID = app.FarmerID()

		rows, err := repos.Schedules().FindByFinancingID(ctx, financingID)
		if err != nil {
			return fmt.Errorf("find schedule: %w", err)
		}

		for _, row := range rows {
			if !row.Status().Equal(valueobject.ScheduleStatusPending) || !row.IsOverdueAsOf(asOf) {
				continue
			}
			penalty := service.OverduePenalty(row, uc.penaltyDailyRate, asOf)
			overdueRow, err := row.MarkOverdue(penalty, asOf)
			if err != nil {
				return fmt.Errorf("mark overdue: %w", err)
			}
			if err := repos.Schedules().Save(ctx, overdueRow); err != nil {
				return fmt.Errorf("save schedule row: %w", err)
			}

			days := int(asOf.Sub(row.DueDate()).Hours() / 24)
			repos.Events().Record(event.NewInstallmentOverdue(
				financingID, app.FarmerID(), row.InstallmentNumber(), row.DueDate(), days, penalty,
			))
			marked++
		}
		if marked == 0 {
			return nil
		}

		// Serialize against in-flight repayments on the same loan.
		if err := repos.Applications().Save(ctx, app.Touch(asOf)); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		return appendTimeline(ctx, repos,
			financingID, valueobject.ActorSystem, "", "overdue_sweep",
			fmt.Sprintf("%d installment(s) marked overdue", marked), asOf)
	})
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		uc.notifier.Notify(ctx, farmerID, "financing.overdue", map[string]any{
			"financing_id": financingID,
			"rows_marked":  marked,
		})
	}
	return marked, nil
}
