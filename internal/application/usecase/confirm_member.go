package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// ConfirmMemberUseCase confirms a farmer's stake. When confirmed stakes reach
// the target the group becomes MATCHED.
type ConfirmMemberUseCase struct {
	uow      port.UnitOfWork
	notifier port.NotificationPort
}

// NewConfirmMemberUseCase wires dependencies.
func NewConfirmMemberUseCase(uow port.UnitOfWork, notifier port.NotificationPort) *ConfirmMemberUseCase {
	return &ConfirmMemberUseCase{uow: uow, notifier: notifier}
}

// Execute confirms the membership.
func (uc *ConfirmMemberUseCase) Execute(
	ctx context.Context,
	req dto.ConfirmMemberRequest,
) (dto.GroupResponse, error) {
	now := time.Now().UTC()

	var resp dto.GroupResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		group, err := repos.Groups().FindByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}

		group, err = group.ConfirmMember(req.FarmerID, now)
		if err != nil {
			return fmt.Errorf("confirm member: %w", err)
		}

		if err := repos.Groups().Save(ctx, group); err != nil {
			return fmt.Errorf("save group: %w", err)
		}

		repos.Events().Record(group.DomainEvents()...)
		resp = toGroupResponse(group.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.GroupResponse{}, err
	}

	if resp.Status == "MATCHED" {
		uc.notifier.Notify(ctx, resp.CreatorID, "group.matched", map[string]any{
			"group_id": resp.ID,
		})
	}
	return resp, nil
}
