package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// QuitGroupUseCase cancels a farmer's membership, freeing the stake for new
// joiners.
type QuitGroupUseCase struct {
	uow port.UnitOfWork
}

// NewQuitGroupUseCase wires dependencies.
func NewQuitGroupUseCase(uow port.UnitOfWork) *QuitGroupUseCase {
	return &QuitGroupUseCase{uow: uow}
}

// Execute quits the group.
func (uc *QuitGroupUseCase) Execute(
	ctx context.Context,
	req dto.QuitGroupRequest,
) (dto.GroupResponse, error) {
	now := time.Now().UTC()

	var resp dto.GroupResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		group, err := repos.Groups().FindByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}

		group, err = group.Quit(req.FarmerID, now)
		if err != nil {
			return fmt.Errorf("quit group: %w", err)
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
