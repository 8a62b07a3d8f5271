package usecase

import (
	"context"
	"fmt"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
)

// QueryUseCase bundles the read-only lookups of the financing core.
type QueryUseCase struct {
	uow port.UnitOfWork
}

// NewQueryUseCase wires dependencies.
func NewQueryUseCase(uow port.UnitOfWork) *QueryUseCase {
	return &QueryUseCase{uow: uow}
}

// GetApplication returns one application by ID.
func (uc *QueryUseCase) GetApplication(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	var resp dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		app, err := repos.Applications().FindByID(ctx, req.ApplicationID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}
		resp = toApplicationResponse(app)
		return nil
	})
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return resp, nil
}

// ListApplications returns a farmer's applications.
func (uc *QueryUseCase) ListApplications(
	ctx context.Context,
	req dto.ListApplicationsRequest,
) ([]dto.ApplicationResponse, error) {
	var resp []dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		apps, err := repos.Applications().FindByFarmerID(ctx, req.FarmerID)
		if err != nil {
			return fmt.Errorf("find applications: %w", err)
		}
		for _, app := range apps {
			resp = append(resp, toApplicationResponse(app))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSchedules returns the installment rows of one financing.
func (uc *QueryUseCase) GetSchedules(
	ctx context.Context,
	req dto.FinancingQueryRequest,
) ([]dto.ScheduleResponse, error) {
	var resp []dto.ScheduleResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		rows, err := repos.Schedules().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find schedule: %w", err)
		}
		for _, r := range rows {
			resp = append(resp, toScheduleResponse(r))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRecords returns the repayment ledger of one financing.
func (uc *QueryUseCase) GetRecords(
	ctx context.Context,
	req dto.FinancingQueryRequest,
) ([]dto.RecordResponse, error) {
	var resp []dto.RecordResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		records, err := repos.Records().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find records: %w", err)
		}
		for _, r := range records {
			resp = append(resp, toRecordResponse(r))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTimeline returns the audit trail of one financing.
func (uc *QueryUseCase) GetTimeline(
	ctx context.Context,
	req dto.FinancingQueryRequest,
) ([]dto.TimelineEntryResponse, error) {
	var resp []dto.TimelineEntryResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		entries, err := repos.Timeline().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find timeline: %w", err)
		}
		for _, e := range entries {
			resp = append(resp, toTimelineResponse(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetGroup returns one joint-loan group with its members.
func (uc *QueryUseCase) GetGroup(
	ctx context.Context,
	req dto.GetGroupRequest,
) (dto.GroupResponse, error) {
	var resp dto.GroupResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		group, err := repos.Groups().FindByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}
		resp = toGroupResponse(group)
		return nil
	})
	if err != nil {
		return dto.GroupResponse{}, err
	}
	return resp, nil
}

// GetContract returns the contract of one financing.
func (uc *QueryUseCase) GetContract(
	ctx context.Context,
	req dto.FinancingQueryRequest,
) (dto.ContractResponse, error) {
	var resp dto.ContractResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		contract, err := repos.Contracts().FindByFinancingID(ctx, req.FinancingID)
		if err != nil {
			return fmt.Errorf("find contract: %w", err)
		}
		resp = toContractResponse(contract)
		return nil
	})
	if err != nil {
		return dto.ContractResponse{}, err
	}
	return resp, nil
}
