package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// GenerateContractUseCase produces a draft contract for an approved
// application. The application status does not change.
type GenerateContractUseCase struct {
	uow      port.UnitOfWork
	renderer port.ContractDocumentPort
	logger   *slog.Logger
}

// NewGenerateContractUseCase wires dependencies.
func NewGenerateContractUseCase(
	uow port.UnitOfWork,
	renderer port.ContractDocumentPort,
	logger *slog.Logger,
) *GenerateContractUseCase {
	return &GenerateContractUseCase{uow: uow, renderer: renderer, logger: logger}
}

// Execute creates the contract and links it to the application. Document
// rendering is best-effort; a render failure never fails the contract write.
func (uc *GenerateContractUseCase) Execute(
	ctx context.Context,
	req dto.GenerateContractRequest,
) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	var resp dto.ContractResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the approved application.
		app, err := repos.Applications().FindByID(ctx, req.ApplicationID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}

		// 2. Build the contract from frozen terms.
		contract, err := model.NewFinancingContract(app, now)
		if err != nil {
			return fmt.Errorf("create contract: %w", err)
		}

		// 3. Render the document. Failure is non-fatal to the financial write.
		if url, renderErr := uc.renderer.Render(ctx, contract); renderErr != nil {
			uc.logger.Warn("contract document render failed",
				"contract_no", contract.ContractNo(), "error", renderErr)
		} else {
			contract = contract.WithDocumentURL(url, now)
		}

		// 4. Link the contract to the application.
		app, err = app.AttachContract(contract.ID(), now)
		if err != nil {
			return fmt.Errorf("attach contract: %w", err)
		}

		// 5. Persist both and audit.
		if err := repos.Contracts().Save(ctx, contract); err != nil {
			return fmt.Errorf("save contract: %w", err)
		}
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		if err := appendTimeline(ctx, repos,
			app.ID(), valueobject.ActorBank, app.ReviewerID(), "generate_contract", contract.ContractNo(), now); err != nil {
			return err
		}

		repos.Events().Record(contract.DomainEvents()...)
		resp = toContractResponse(contract.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ContractResponse{}, err
	}
	return resp, nil
}
