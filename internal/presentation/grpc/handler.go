package grpc

import (
	"context"

	"github.com/agrobank/financing-service/internal/application/usecase"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/pkg/auth"
)

// UseCases bundles everything the handler dispatches to.
type UseCases struct {
	Submit           *usecase.SubmitApplicationUseCase
	Review           *usecase.ReviewApplicationUseCase
	Cancel           *usecase.CancelApplicationUseCase
	GenerateContract *usecase.GenerateContractUseCase
	SignContract     *usecase.SignContractUseCase
	Disburse         *usecase.DisburseUseCase
	Repay            *usecase.RepayUseCase
	EarlyQuote       *usecase.EarlyQuoteUseCase
	CreateGroup      *usecase.CreateGroupUseCase
	JoinGroup        *usecase.JoinGroupUseCase
	ConfirmMember    *usecase.ConfirmMemberUseCase
	QuitGroup        *usecase.QuitGroupUseCase
	MatchCandidates  *usecase.MatchCandidatesUseCase
	ConfirmAndApply  *usecase.ConfirmAndApplyUseCase
	Summary          *usecase.RepaymentSummaryUseCase
	Statistics       *usecase.FarmerStatisticsUseCase
	Sweep            *usecase.OverdueSweepUseCase
	Queries          *usecase.QueryUseCase
}

// FinancingHandler implements FinancingServiceServer on top of the
// application use cases. Caller identity comes from the JWT claims placed on
// the context by the auth interceptor; farmer-scoped requests are pinned to
// the authenticated farmer.
type FinancingHandler struct {
	UnimplementedFinancingServiceServer

	uc       UseCases
	identity port.IdentityPort
}

// NewFinancingHandler wires the handler.
func NewFinancingHandler(uc UseCases, identity port.IdentityPort) *FinancingHandler {
	return &FinancingHandler{uc: uc, identity: identity}
}

// actorID resolves the caller, optionally requiring a role.
func (h *FinancingHandler) actorID(ctx context.Context, roles ...string) (string, error) {
	actor, err := h.identity.CurrentActor(ctx)
	if err != nil {
		return "", toStatusError(err)
	}
	if len(roles) == 0 {
		return actor.ID, nil
	}
	for _, r := range roles {
		if actor.Role == r {
			return actor.ID, nil
		}
	}
	return "", permissionDenied(actor.Role)
}

func (h *FinancingHandler) SubmitApplication(ctx context.Context, in *SubmitApplicationRequest) (*ApplicationResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.Submit.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) ReviewApplication(ctx context.Context, in *ReviewApplicationRequest) (*ApplicationResponse, error) {
	reviewerID, err := h.actorID(ctx, auth.RoleBank, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	req := *in
	req.ReviewerID = reviewerID

	resp, err := h.uc.Review.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) CancelApplication(ctx context.Context, in *CancelApplicationRequest) (*ApplicationResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.Cancel.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetApplication(ctx context.Context, in *GetApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.uc.Queries.GetApplication(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) ListApplications(ctx context.Context, in *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	req := *in
	if req.FarmerID == "" {
		farmerID, err := h.actorID(ctx)
		if err != nil {
			return nil, err
		}
		req.FarmerID = farmerID
	}

	apps, err := h.uc.Queries.ListApplications(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ListApplicationsResponse{Applications: apps}, nil
}

func (h *FinancingHandler) GenerateContract(ctx context.Context, in *GenerateContractRequest) (*ContractResponse, error) {
	if _, err := h.actorID(ctx, auth.RoleBank, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateContract.Execute(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) SignContract(ctx context.Context, in *SignContractRequest) (*ContractResponse, error) {
	signerID, err := h.actorID(ctx)
	if err != nil {
		return nil, err
	}
	req := *in
	req.SignerID = signerID

	resp, err := h.uc.SignContract.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetContract(ctx context.Context, in *FinancingQueryRequest) (*ContractResponse, error) {
	resp, err := h.uc.Queries.GetContract(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) Disburse(ctx context.Context, in *DisburseRequest) (*ApplicationResponse, error) {
	operatorID, err := h.actorID(ctx, auth.RoleBank, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	req := *in
	req.OperatorID = operatorID

	resp, err := h.uc.Disburse.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) Repay(ctx context.Context, in *RepayRequest) (*RepayResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.Repay.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetEarlyQuote(ctx context.Context, in *EarlyQuoteRequest) (*EarlyQuoteResponse, error) {
	resp, err := h.uc.EarlyQuote.Execute(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetSchedule(ctx context.Context, in *FinancingQueryRequest) (*ScheduleListResponse, error) {
	rows, err := h.uc.Queries.GetSchedules(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ScheduleListResponse{Schedules: rows}, nil
}

func (h *FinancingHandler) GetRecords(ctx context.Context, in *FinancingQueryRequest) (*RecordListResponse, error) {
	records, err := h.uc.Queries.GetRecords(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &RecordListResponse{Records: records}, nil
}

func (h *FinancingHandler) GetTimeline(ctx context.Context, in *FinancingQueryRequest) (*TimelineListResponse, error) {
	entries, err := h.uc.Queries.GetTimeline(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &TimelineListResponse{Entries: entries}, nil
}

func (h *FinancingHandler) CreateGroup(ctx context.Context, in *CreateGroupRequest) (*GroupResponse, error) {
	creatorID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.CreatorID = creatorID

	resp, err := h.uc.CreateGroup.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) JoinGroup(ctx context.Context, in *JoinGroupRequest) (*GroupResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.JoinGroup.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) ConfirmMember(ctx context.Context, in *ConfirmMemberRequest) (*GroupResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.ConfirmMember.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) QuitGroup(ctx context.Context, in *QuitGroupRequest) (*GroupResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.QuitGroup.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetGroup(ctx context.Context, in *GetGroupRequest) (*GroupResponse, error) {
	resp, err := h.uc.Queries.GetGroup(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) MatchCandidates(ctx context.Context, in *MatchCandidatesRequest) (*MatchCandidatesResponse, error) {
	farmerID, err := h.actorID(ctx, auth.RoleFarmer)
	if err != nil {
		return nil, err
	}
	req := *in
	req.FarmerID = farmerID

	resp, err := h.uc.MatchCandidates.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) ConfirmAndApply(ctx context.Context, in *ConfirmAndApplyRequest) (*ConfirmAndApplyResponse, error) {
	resp, err := h.uc.ConfirmAndApply.Execute(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetRepaymentSummary(ctx context.Context, in *FinancingQueryRequest) (*RepaymentSummaryResponse, error) {
	resp, err := h.uc.Summary.Execute(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetFarmerStatistics(ctx context.Context, in *FarmerStatisticsRequest) (*FarmerStatisticsResponse, error) {
	req := *in
	if req.FarmerID == "" {
		farmerID, err := h.actorID(ctx)
		if err != nil {
			return nil, err
		}
		req.FarmerID = farmerID
	}

	resp, err := h.uc.Statistics.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

func (h *FinancingHandler) RunOverdueSweep(ctx context.Context, in *OverdueSweepRequest) (*OverdueSweepResponse, error) {
	if _, err := h.actorID(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.uc.Sweep.Execute(ctx, *in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}
