package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// SignContractUseCase records one party's signature. When both parties have
// signed, the contract becomes SIGNED and the linked application moves
// APPROVED -> SIGNED in the same transaction.
type SignContractUseCase struct {
	uow      port.UnitOfWork
	notifier port.NotificationPort
}

// NewSignContractUseCase wires dependencies.
func NewSignContractUseCase(uow port.UnitOfWork, notifier port.NotificationPort) *SignContractUseCase {
	return &SignContractUseCase{uow: uow, notifier: notifier}
}

// Execute applies the signature for the given party.
func (uc *SignContractUseCase) Execute(
	ctx context.Context,
	req dto.SignContractRequest,
) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	var (
		resp        dto.ContractResponse
		farmerID    string
		fullySigned bool
	)
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the contract.
		contract, err := repos.Contracts().FindByID(ctx, req.ContractID)
		if err != nil {
			return fmt.Errorf("find contract: %w", err)
		}

		// 2. Apply the signature.
		var actorType valueobject.ActorType
		switch req.Party {
		case dto.PartyFarmer:
			if req.SignerID != contract.FarmerID() {
				return valueobject.NewValidation("contract %s does not belong to farmer %s", req.ContractID, req.SignerID)
			}
			contract, err = contract.SignByFarmer(req.SignatureURL, now)
			actorType = valueobject.ActorFarmer
		case dto.PartyBank:
			contract, err = contract.SignByBank(req.SignatureURL, now)
			actorType = valueobject.ActorBank
		default:
			return valueobject.NewValidation("unknown signing party: %q", req.Party)
		}
		if err != nil {
			return fmt.Errorf("sign contract: %w", err)
		}

		// 3. Persist the contract.
		if err := repos.Contracts().Save(ctx, contract); err != nil {
			return fmt.Errorf("save contract: %w", err)
		}

		// 4. Both signatures present: the application moves to SIGNED.
		if contract.IsFullySigned() {
			app, err := repos.Applications().FindByID(ctx, contract.FinancingID())
			if err != nil {
				return fmt.Errorf("find application: %w", err)
			}
			app, err = app.MarkSigned(now)
			if err != nil {
				return fmt.Errorf("mark application signed: %w", err)
			}
			if err := repos.Applications().Save(ctx, app); err != nil {
				return fmt.Errorf("save application: %w", err)
			}
			repos.Events().Record(app.DomainEvents()...)
			farmerID = app.FarmerID()
			fullySigned = true
		}

		// 5. Audit against the financing, not the contract.
		if err := appendTimeline(ctx, repos,
			contract.FinancingID(), actorType, req.SignerID, "sign_contract:"+req.Party, contract.ContractNo(), now); err != nil {
			return err
		}

		repos.Events().Record(contract.DomainEvents()...)
		resp = toContractResponse(contract.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ContractResponse{}, err
	}

	if fullySigned {
		uc.notifier.Notify(ctx, farmerID, "financing.contract_signed", map[string]any{
			"contract_id": resp.ID,
			"contract_no": resp.ContractNo,
		})
	}
	return resp, nil
}
