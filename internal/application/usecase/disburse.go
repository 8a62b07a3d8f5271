package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// DisburseUseCase releases funds against a signed application, materializes
// the repayment schedule and moves the application straight to REPAYING. The
// transaction covers application, schedule and timeline together; a loan is
// never partially disbursed.
type DisburseUseCase struct {
	uow      port.UnitOfWork
	notifier port.NotificationPort
}

// NewDisburseUseCase wires dependencies.
func NewDisburseUseCase(uow port.UnitOfWork, notifier port.NotificationPort) *DisburseUseCase {
	return &DisburseUseCase{uow: uow, notifier: notifier}
}

// Execute disburses the loan and generates its schedule.
func (uc *DisburseUseCase) Execute(
	ctx context.Context,
	req dto.DisburseRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	var resp dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the application and verify the contract linkage.
		app, err := repos.Applications().FindByID(ctx, req.ApplicationID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}
		if req.ContractID != "" && app.ContractID() != req.ContractID {
			return valueobject.NewValidation(
				"contract %s does not match the application's contract %s", req.ContractID, app.ContractID())
		}

		// 2. Compute the schedule before mutating anything.
		plan, err := model.GenerateSchedule(
			req.Amount, app.InterestRate(), app.TermMonths(), now, model.ScheduleMethod(req.Method),
		)
		if err != nil {
			return fmt.Errorf("generate schedule: %w", err)
		}

		// 3. Transition SIGNED -> DISBURSED -> REPAYING.
		app, err = app.Disburse(req.Amount, plan[0].DueDate, now)
		if err != nil {
			return fmt.Errorf("disburse: %w", err)
		}
		app, err = app.StartRepaying(now)
		if err != nil {
			return fmt.Errorf("start repaying: %w", err)
		}

		// 4. Persist application and schedule rows.
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		rows := model.BuildScheduleRows(app.ID(), plan, now)
		if err := repos.Schedules().SaveAll(ctx, rows); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}

		// 5. Audit.
		note := fmt.Sprintf("amount=%s bank_account=%s farmer_account=%s",
			req.Amount.StringFixed(2), req.BankAccount, req.FarmerAccount)
		if err := appendTimeline(ctx, repos,
			app.ID(), valueobject.ActorBank, req.OperatorID, "disburse", note, now); err != nil {
			return err
		}

		repos.Events().Record(app.DomainEvents()...)
		resp = toApplicationResponse(app.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	uc.notifier.Notify(ctx, resp.FarmerID, "financing.disbursed", map[string]any{
		"application_id": resp.ID,
		"amount":         resp.DisbursedAmount,
	})
	return resp, nil
}
