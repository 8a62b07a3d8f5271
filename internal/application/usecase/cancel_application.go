package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// CancelApplicationUseCase withdraws an application before approval.
type CancelApplicationUseCase struct {
	uow port.UnitOfWork
}

// NewCancelApplicationUseCase wires dependencies.
func NewCancelApplicationUseCase(uow port.UnitOfWork) *CancelApplicationUseCase {
	return &CancelApplicationUseCase{uow: uow}
}

// Execute cancels the application. Only the owning farmer may withdraw.
func (uc *CancelApplicationUseCase) Execute(
	ctx context.Context,
	req dto.CancelApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	var resp dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load and check ownership.
		app, err := repos.Applications().FindByID(ctx, req.ApplicationID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}
		if app.FarmerID() != req.FarmerID {
			return valueobject.NewValidation("application %s is not owned by farmer %s", req.ApplicationID, req.FarmerID)
		}

		// 2. Cancel.
		app, err = app.Cancel(req.Reason, now)
		if err != nil {
			return fmt.Errorf("cancel application: %w", err)
		}

		// 3. Persist and audit.
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		if err := appendTimeline(ctx, repos,
			app.ID(), valueobject.ActorFarmer, req.FarmerID, "cancel", req.Reason, now); err != nil {
			return err
		}

		repos.Events().Record(app.DomainEvents()...)
		resp = toApplicationResponse(app.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return resp, nil
}
