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

// ConfirmAndApplyUseCase fans a MATCHED group out into one independent
// financing application per confirmed member. The whole fan-out runs in a
// single transaction: partial creation, where some members get applications
// and others do not, can never be observed.
type ConfirmAndApplyUseCase struct {
	uow      port.UnitOfWork
	notifier port.NotificationPort
}

// NewConfirmAndApplyUseCase wires dependencies.
func NewConfirmAndApplyUseCase(uow port.UnitOfWork, notifier port.NotificationPort) *ConfirmAndApplyUseCase {
	return &ConfirmAndApplyUseCase{uow: uow, notifier: notifier}
}

// Execute creates the applications and marks the group APPLIED.
func (uc *ConfirmAndApplyUseCase) Execute(
	ctx context.Context,
	req dto.ConfirmAndApplyRequest,
) (dto.ConfirmAndApplyResponse, error) {
	now := time.Now().UTC()

	var (
		resp      dto.ConfirmAndApplyResponse
		farmerIDs []string
	)
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the group; MarkApplied later re-checks MATCHED and the
		// confirmed-sum invariant.
		group, err := repos.Groups().FindByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}
		if !group.Status().Equal(valueobject.GroupStatusMatched) {
			return valueobject.NewInvalidState(
				"group %s is not ready to apply, status is %s", req.GroupID, group.Status())
		}

		// 2. One application per confirmed member. Each member's loan is
		// legally separate even though it was matched jointly.
		applicationIDs := make(map[string]string)
		farmerIDs = nil
		for _, m := range group.Members() {
			if !m.Status.Equal(valueobject.MemberStatusConfirmed) {
				continue
			}
			app, err := model.NewFinancingApplication(
				m.FarmerID, "", group.ID(), m.Amount, group.TermMonths(), m.Purpose, now,
			)
			if err != nil {
				return fmt.Errorf("create application for member %s: %w", m.FarmerID, err)
			}
			if err := repos.Applications().Save(ctx, app); err != nil {
				return fmt.Errorf("save application for member %s: %w", m.FarmerID, err)
			}
			if err := appendTimeline(ctx, repos,
				app.ID(), valueobject.ActorFarmer, m.FarmerID, "submit",
				fmt.Sprintf("joint loan group %s", group.ID()), now); err != nil {
				return err
			}
			repos.Events().Record(app.DomainEvents()...)

			applicationIDs[m.FarmerID] = app.ID()
			farmerIDs = append(farmerIDs, m.FarmerID)
		}

		// 3. Seal the group.
		group, err = group.MarkApplied(applicationIDs, now)
		if err != nil {
			return fmt.Errorf("mark group applied: %w", err)
		}
		if err := repos.Groups().Save(ctx, group); err != nil {
			return fmt.Errorf("save group: %w", err)
		}
		repos.Events().Record(group.DomainEvents()...)

		ids := make([]string, 0, len(applicationIDs))
		for _, id := range applicationIDs {
			ids = append(ids, id)
		}
		resp = dto.ConfirmAndApplyResponse{GroupID: group.ID(), ApplicationIDs: ids}
		return nil
	})
	if err != nil {
		return dto.ConfirmAndApplyResponse{}, err
	}

	for _, farmerID := range farmerIDs {
		uc.notifier.Notify(ctx, farmerID, "group.applied", map[string]any{
			"group_id": resp.GroupID,
		})
	}
	return resp, nil
}
