package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// SubmitApplicationUseCase creates a new financing application, redirecting
// sub-minimum requests to the joint-loan path.
type SubmitApplicationUseCase struct {
	uow           port.UnitOfWork
	notifier      port.NotificationPort
	minimumAmount decimal.Decimal
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	uow port.UnitOfWork,
	notifier port.NotificationPort,
	minimumAmount decimal.Decimal,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		uow:           uow,
		notifier:      notifier,
		minimumAmount: minimumAmount,
	}
}

// Execute validates, persists and audits a new application. Amounts below the
// configured minimum fail with BelowMinimumError carrying candidate groups;
// the caller must not silently downgrade the amount.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	var resp dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Below-minimum redirect: collect joinable groups for the caller.
		if req.Amount.LessThan(uc.minimumAmount) {
			groups, err := repos.Groups().FindMatching(ctx, req.Amount, req.FarmerID, 10)
			if err != nil {
				return fmt.Errorf("find match candidates: %w", err)
			}
			candidates := make([]valueobject.GroupCandidate, 0, len(groups))
			for _, g := range groups {
				candidates = append(candidates, valueobject.GroupCandidate{
					GroupID:       g.ID(),
					CreatorID:     g.CreatorID(),
					TargetAmount:  g.TargetAmount(),
					CurrentAmount: g.ConfirmedAmount(),
					MemberCount:   len(g.Members()),
				})
			}
			return &valueobject.BelowMinimumError{
				Minimum:    uc.minimumAmount,
				Requested:  req.Amount,
				Candidates: candidates,
			}
		}

		// 2. Create the aggregate.
		app, err := model.NewFinancingApplication(
			req.FarmerID, req.ProductID, "", req.Amount, req.TermMonths, req.Purpose, now,
		)
		if err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		// 3. Persist.
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}

		// 4. Audit.
		if err := appendTimeline(ctx, repos,
			app.ID(), valueobject.ActorFarmer, req.FarmerID, "submit", req.Purpose, now); err != nil {
			return err
		}

		// 5. Collect domain events for the outbox.
		repos.Events().Record(app.DomainEvents()...)

		resp = toApplicationResponse(app.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	uc.notifier.Notify(ctx, req.FarmerID, "financing.applied", map[string]any{
		"application_id": resp.ID,
		"amount":         resp.Amount,
	})
	return resp, nil
}
