package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// CreateGroupUseCase opens a joint-loan group with the creator as its first
// member.
type CreateGroupUseCase struct {
	uow           port.UnitOfWork
	minimumAmount decimal.Decimal
}

// NewCreateGroupUseCase wires dependencies.
func NewCreateGroupUseCase(uow port.UnitOfWork, minimumAmount decimal.Decimal) *CreateGroupUseCase {
	return &CreateGroupUseCase{uow: uow, minimumAmount: minimumAmount}
}

// Execute creates the group in MATCHING status.
func (uc *CreateGroupUseCase) Execute(
	ctx context.Context,
	req dto.CreateGroupRequest,
) (dto.GroupResponse, error) {
	now := time.Now().UTC()

	var resp dto.GroupResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		group, err := model.NewJointLoanGroup(
			req.CreatorID, req.TargetAmount, req.CreatorAmount, uc.minimumAmount,
			req.TermMonths, req.Purpose, now,
		)
		if err != nil {
			return fmt.Errorf("create group: %w", err)
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
