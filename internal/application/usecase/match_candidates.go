package usecase

import (
	"context"
	"fmt"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// MatchCandidatesUseCase lists MATCHING groups able to absorb a farmer's
// amount, FIFO by creation time.
type MatchCandidatesUseCase struct {
	uow   port.UnitOfWork
	limit int
}

// NewMatchCandidatesUseCase wires dependencies.
func NewMatchCandidatesUseCase(uow port.UnitOfWork, limit int) *MatchCandidatesUseCase {
	if limit <= 0 {
		limit = 20
	}
	return &MatchCandidatesUseCase{uow: uow, limit: limit}
}

// Execute returns candidate groups, excluding groups the farmer already
// belongs to.
func (uc *MatchCandidatesUseCase) Execute(
	ctx context.Context,
	req dto.MatchCandidatesRequest,
) (dto.MatchCandidatesResponse, error) {
	var resp dto.MatchCandidatesResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		groups, err := repos.Groups().FindMatching(ctx, req.Amount, req.FarmerID, uc.limit)
		if err != nil {
			return fmt.Errorf("find matching groups: %w", err)
		}

		for _, g := range groups {
			resp.Candidates = append(resp.Candidates, dto.MatchCandidateResponse{
				GroupID:           g.ID(),
				CreatorID:         g.CreatorID(),
				TargetAmount:      g.TargetAmount(),
				RemainingCapacity: g.RemainingCapacity(),
				MemberCount:       len(g.Members()),
				CreatedAt:         g.CreatedAt(),
			})
		}
		return nil
	})
	if err != nil {
		return dto.MatchCandidatesResponse{}, err
	}
	return resp, nil
}
