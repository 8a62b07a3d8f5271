package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/service"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// RepayUseCase applies a payment against a financing schedule: waterfall
// split per row, cascading overflow, one ledger record per touched row, and
// settlement when the last row is paid.
type RepayUseCase struct {
	uow       port.UnitOfWork
	notifier  port.NotificationPort
	allocator *service.RepaymentAllocator
}

// NewRepayUseCase wires dependencies.
func NewRepayUseCase(
	uow port.UnitOfWork,
	notifier port.NotificationPort,
	allocator *service.RepaymentAllocator,
) *RepayUseCase {
	return &RepayUseCase{uow: uow, notifier: notifier, allocator: allocator}
}

// Execute processes a repayment.
func (uc *RepayUseCase) Execute(ctx context.Context, req dto.RepayRequest) (dto.RepayResponse, error) {
	now := time.Now().UTC()

	var resp dto.RepayResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the application; only a REPAYING loan accepts payments.
		app, err := repos.Applications().FindByID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}
		if !app.Status().Equal(valueobject.FinancingStatusRepaying) {
			return valueobject.NewInvalidState(
				"financing %s is not accepting repayments, status is %s", req.FinancingID, app.Status())
		}

		// 2. Load the schedule and allocate the payment.
		rows, err := repos.Schedules().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find schedule: %w", err)
		}
		allocation, err := uc.allocator.Allocate(rows, req.ScheduleID, req.Amount, now)
		if err != nil {
			return fmt.Errorf("allocate repayment: %w", err)
		}

		// 3. Persist updated rows and append one ledger record per row.
		records := make([]model.RepaymentRecord, 0, len(allocation.Splits))
		for _, split := range allocation.Splits {
			if err := repos.Schedules().Save(ctx, split.Schedule); err != nil {
				return fmt.Errorf("save schedule row: %w", err)
			}
			record, err := model.NewRepaymentRecord(
				req.FinancingID, split.Schedule.ID(), split.RepaymentType,
				split.Amount, split.Principal, split.Interest, split.Penalty,
				req.PaymentMethod, req.TransactionID, now,
			)
			if err != nil {
				return fmt.Errorf("build repayment record: %w", err)
			}
			records = append(records, record)

			repos.Events().Record(event.NewRepaymentReceived(
				req.FinancingID, record.ID, app.FarmerID(),
				split.Amount, split.Principal, split.Interest, split.Penalty,
				split.RepaymentType.String(), []int{split.Schedule.InstallmentNumber()},
			))
		}
		if err := repos.Records().Append(ctx, records...); err != nil {
			return fmt.Errorf("append repayment records: %w", err)
		}

		// 4. Settle when every row is paid; otherwise bump the application's
		// version so concurrent repayments serialize.
		if allocation.AllSettled {
			app, err = app.Settle(now)
			if err != nil {
				return fmt.Errorf("settle: %w", err)
			}
		} else {
			app = app.Touch(now)
		}
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}

		// 5. Audit.
		note := fmt.Sprintf("amount=%s method=%s", req.Amount.StringFixed(2), req.PaymentMethod)
		if err := appendTimeline(ctx, repos,
			req.FinancingID, valueobject.ActorFarmer, req.FarmerID, "repay", note, now); err != nil {
			return err
		}
		if allocation.AllSettled {
			if err := appendTimeline(ctx, repos,
				req.FinancingID, valueobject.ActorSystem, "", "settle", "all installments paid", now); err != nil {
				return err
			}
		}

		repos.Events().Record(app.DomainEvents()...)

		recordDTOs := make([]dto.RecordResponse, 0, len(records))
		for _, r := range records {
			recordDTOs = append(recordDTOs, toRecordResponse(r))
		}
		resp = dto.RepayResponse{
			FinancingID:       req.FinancingID,
			ApplicationStatus: app.Status().String(),
			AmountApplied:     req.Amount,
			Settled:           allocation.AllSettled,
			Records:           recordDTOs,
		}
		return nil
	})
	if err != nil {
		return dto.RepayResponse{}, err
	}

	uc.notifier.Notify(ctx, req.FarmerID, "financing.repayment_received", map[string]any{
		"financing_id": req.FinancingID,
		"amount":       req.Amount,
		"settled":      resp.Settled,
	})
	return resp, nil
}
