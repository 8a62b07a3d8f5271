package usecase

import (
	"context"
	"fmt"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/service"
)

// EarlyQuoteUseCase computes a read-only early repayment breakdown. It never
// mutates state; calling it twice with the same input yields the same output.
type EarlyQuoteUseCase struct {
	uow       port.UnitOfWork
	allocator *service.RepaymentAllocator
}

// NewEarlyQuoteUseCase wires dependencies.
func NewEarlyQuoteUseCase(uow port.UnitOfWork, allocator *service.RepaymentAllocator) *EarlyQuoteUseCase {
	return &EarlyQuoteUseCase{uow: uow, allocator: allocator}
}

// Execute produces the quote.
func (uc *EarlyQuoteUseCase) Execute(
	ctx context.Context,
	req dto.EarlyQuoteRequest,
) (dto.EarlyQuoteResponse, error) {
	var resp dto.EarlyQuoteResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		rows, err := repos.Schedules().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find schedule: %w", err)
		}

		quote, err := uc.allocator.CalculateEarlyQuote(rows, req.Amount, req.RepaymentDate)
		if err != nil {
			return fmt.Errorf("calculate early quote: %w", err)
		}

		resp = dto.EarlyQuoteResponse{
			FinancingID:          req.FinancingID,
			OutstandingPrincipal: quote.OutstandingPrincipal,
			PenaltyDue:           quote.PenaltyDue,
			AccruedInterest:      quote.AccruedInterest,
			InterestSaved:        quote.InterestSaved,
			PrincipalCovered:     quote.PrincipalCovered,
			RemainingBalance:     quote.RemainingBalance,
		}
		return nil
	})
	if err != nil {
		return dto.EarlyQuoteResponse{}, err
	}
	return resp, nil
}
