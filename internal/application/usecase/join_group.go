package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// JoinGroupUseCase adds a farmer's stake to an open joint-loan group.
type JoinGroupUseCase struct {
	uow port.UnitOfWork
}

// NewJoinGroupUseCase wires dependencies.
func NewJoinGroupUseCase(uow port.UnitOfWork) *JoinGroupUseCase {
	return &JoinGroupUseCase{uow: uow}
}

// Execute joins the group. Concurrent joins against the same group serialize
// on the group's optimistic version.
func (uc *JoinGroupUseCase) Execute(
	ctx context.Context,
	req dto.JoinGroupRequest,
) (dto.GroupResponse, error) {
	now := time.Now().UTC()

	var resp dto.GroupResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		group, err := repos.Groups().FindByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}

		group, err = group.Join(req.FarmerID, req.Amount, req.Purpose, now)
		if err != nil {
			return fmt.Errorf("join group: %w", err)
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
	return resp, nil
}
