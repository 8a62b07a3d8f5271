package grpc

// proto.go defines the gRPC server interface for agrobank.financing.v1.FinancingService.
// This file serves as a stand-in for buf-generated code; the service runs the
// JSON codec, so the application DTOs double as wire messages.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agrobank/financing-service/internal/application/dto"
)

const serviceName = "agrobank.financing.v1.FinancingService"

// Wire messages. Single-object requests and responses reuse the DTO shapes;
// list reads get explicit wrappers so the payload stays a JSON object.
type (
	SubmitApplicationRequest = dto.SubmitApplicationRequest
	ReviewApplicationRequest = dto.ReviewApplicationRequest
	CancelApplicationRequest = dto.CancelApplicationRequest
	GetApplicationRequest    = dto.GetApplicationRequest
	ListApplicationsRequest  = dto.ListApplicationsRequest
	GenerateContractRequest  = dto.GenerateContractRequest
	SignContractRequest      = dto.SignContractRequest
	DisburseRequest          = dto.DisburseRequest
	RepayRequest             = dto.RepayRequest
	EarlyQuoteRequest        = dto.EarlyQuoteRequest
	CreateGroupRequest       = dto.CreateGroupRequest
	JoinGroupRequest         = dto.JoinGroupRequest
	ConfirmMemberRequest     = dto.ConfirmMemberRequest
	QuitGroupRequest         = dto.QuitGroupRequest
	MatchCandidatesRequest   = dto.MatchCandidatesRequest
	ConfirmAndApplyRequest   = dto.ConfirmAndApplyRequest
	GetGroupRequest          = dto.GetGroupRequest
	FinancingQueryRequest    = dto.FinancingQueryRequest
	FarmerStatisticsRequest  = dto.FarmerStatisticsRequest
	OverdueSweepRequest      = dto.OverdueSweepRequest
	ApplicationResponse      = dto.ApplicationResponse
	ContractResponse         = dto.ContractResponse
	RepayResponse            = dto.RepayResponse
	EarlyQuoteResponse       = dto.EarlyQuoteResponse
	GroupResponse            = dto.GroupResponse
	MatchCandidatesResponse  = dto.MatchCandidatesResponse
	ConfirmAndApplyResponse  = dto.ConfirmAndApplyResponse
	RepaymentSummaryResponse = dto.RepaymentSummaryResponse
	FarmerStatisticsResponse = dto.FarmerStatisticsResponse
	OverdueSweepResponse     = dto.OverdueSweepResponse
)

// ListApplicationsResponse wraps a farmer's applications.
type ListApplicationsResponse struct {
	Applications []dto.ApplicationResponse `json:"applications"`
}

// ScheduleListResponse wraps the installment rows of one financing.
type ScheduleListResponse struct {
	Schedules []dto.ScheduleResponse `json:"schedules"`
}

// RecordListResponse wraps the repayment ledger of one financing.
type RecordListResponse struct {
	Records []dto.RecordResponse `json:"records"`
}

// TimelineListResponse wraps the audit trail of one financing.
type TimelineListResponse struct {
	Entries []dto.TimelineEntryResponse `json:"entries"`
}

// FinancingServiceServer is the server API for FinancingService.
type FinancingServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error)
	ReviewApplication(context.Context, *ReviewApplicationRequest) (*ApplicationResponse, error)
	CancelApplication(context.Context, *CancelApplicationRequest) (*ApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	GenerateContract(context.Context, *GenerateContractRequest) (*ContractResponse, error)
	SignContract(context.Context, *SignContractRequest) (*ContractResponse, error)
	GetContract(context.Context, *FinancingQueryRequest) (*ContractResponse, error)
	Disburse(context.Context, *DisburseRequest) (*ApplicationResponse, error)
	Repay(context.Context, *RepayRequest) (*RepayResponse, error)
	GetEarlyQuote(context.Context, *EarlyQuoteRequest) (*EarlyQuoteResponse, error)
	GetSchedule(context.Context, *FinancingQueryRequest) (*ScheduleListResponse, error)
	GetRecords(context.Context, *FinancingQueryRequest) (*RecordListResponse, error)
	GetTimeline(context.Context, *FinancingQueryRequest) (*TimelineListResponse, error)
	CreateGroup(context.Context, *CreateGroupRequest) (*GroupResponse, error)
	JoinGroup(context.Context, *JoinGroupRequest) (*GroupResponse, error)
	ConfirmMember(context.Context, *ConfirmMemberRequest) (*GroupResponse, error)
	QuitGroup(context.Context, *QuitGroupRequest) (*GroupResponse, error)
	GetGroup(context.Context, *GetGroupRequest) (*GroupResponse, error)
	MatchCandidates(context.Context, *MatchCandidatesRequest) (*MatchCandidatesResponse, error)
	ConfirmAndApply(context.Context, *ConfirmAndApplyRequest) (*ConfirmAndApplyResponse, error)
	GetRepaymentSummary(context.Context, *FinancingQueryRequest) (*RepaymentSummaryResponse, error)
	GetFarmerStatistics(context.Context, *FarmerStatisticsRequest) (*FarmerStatisticsResponse, error)
	RunOverdueSweep(context.Context, *OverdueSweepRequest) (*OverdueSweepResponse, error)
	mustEmbedUnimplementedFinancingServiceServer()
}

// UnimplementedFinancingServiceServer provides forward-compatible default
// implementations.
type UnimplementedFinancingServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedFinancingServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("SubmitApplication")
}
func (UnimplementedFinancingServiceServer) ReviewApplication(context.Context, *ReviewApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("ReviewApplication")
}
func (UnimplementedFinancingServiceServer) CancelApplication(context.Context, *CancelApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("CancelApplication")
}
func (UnimplementedFinancingServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("GetApplication")
}
func (UnimplementedFinancingServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, unimplemented("ListApplications")
}
func (UnimplementedFinancingServiceServer) GenerateContract(context.Context, *GenerateContractRequest) (*ContractResponse, error) {
	return nil, unimplemented("GenerateContract")
}
func (UnimplementedFinancingServiceServer) SignContract(context.Context, *SignContractRequest) (*ContractResponse, error) {
	return nil, unimplemented("SignContract")
}
func (UnimplementedFinancingServiceServer) GetContract(context.Context, *FinancingQueryRequest) (*ContractResponse, error) {
	return nil, unimplemented("GetContract")
}
func (UnimplementedFinancingServiceServer) Disburse(context.Context, *DisburseRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("Disburse")
}
func (UnimplementedFinancingServiceServer) Repay(context.Context, *RepayRequest) (*RepayResponse, error) {
	return nil, unimplemented("Repay")
}
func (UnimplementedFinancingServiceServer) GetEarlyQuote(context.Context, *EarlyQuoteRequest) (*EarlyQuoteResponse, error) {
	return nil, unimplemented("GetEarlyQuote")
}
func (UnimplementedFinancingServiceServer) GetSchedule(context.Context, *FinancingQueryRequest) (*ScheduleListResponse, error) {
	return nil, unimplemented("GetSchedule")
}
func (UnimplementedFinancingServiceServer) GetRecords(context.Context, *FinancingQueryRequest) (*RecordListResponse, error) {
	return nil, unimplemented("GetRecords")
}
func (UnimplementedFinancingServiceServer) GetTimeline(context.Context, *FinancingQueryRequest) (*TimelineListResponse, error) {
	return nil, unimplemented("GetTimeline")
}
func (UnimplementedFinancingServiceServer) CreateGroup(context.Context, *CreateGroupRequest) (*GroupResponse, error) {
	return nil, unimplemented("CreateGroup")
}
func (UnimplementedFinancingServiceServer) JoinGroup(context.Context, *JoinGroupRequest) (*GroupResponse, error) {
	return nil, unimplemented("JoinGroup")
}
func (UnimplementedFinancingServiceServer) ConfirmMember(context.Context, *ConfirmMemberRequest) (*GroupResponse, error) {
	return nil, unimplemented("ConfirmMember")
}
func (UnimplementedFinancingServiceServer) QuitGroup(context.Context, *QuitGroupRequest) (*GroupResponse, error) {
	return nil, unimplemented("QuitGroup")
}
func (UnimplementedFinancingServiceServer) GetGroup(context.Context, *GetGroupRequest) (*GroupResponse, error) {
	return nil, unimplemented("GetGroup")
}
func (UnimplementedFinancingServiceServer) MatchCandidates(context.Context, *MatchCandidatesRequest) (*MatchCandidatesResponse, error) {
	return nil, unimplemented("MatchCandidates")
}
func (UnimplementedFinancingServiceServer) ConfirmAndApply(context.Context, *ConfirmAndApplyRequest) (*ConfirmAndApplyResponse, error) {
	return nil, unimplemented("ConfirmAndApply")
}
func (UnimplementedFinancingServiceServer) GetRepaymentSummary(context.Context, *FinancingQueryRequest) (*RepaymentSummaryResponse, error) {
	return nil, unimplemented("GetRepaymentSummary")
}
func (UnimplementedFinancingServiceServer) GetFarmerStatistics(context.Context, *FarmerStatisticsRequest) (*FarmerStatisticsResponse, error) {
	return nil, unimplemented("GetFarmerStatistics")
}
func (UnimplementedFinancingServiceServer) RunOverdueSweep(context.Context, *OverdueSweepRequest) (*OverdueSweepResponse, error) {
	return nil, unimplemented("RunOverdueSweep")
}
func (UnimplementedFinancingServiceServer) mustEmbedUnimplementedFinancingServiceServer() {}

// RegisterFinancingServiceServer registers srv with the gRPC server.
func RegisterFinancingServiceServer(s *grpclib.Server, srv FinancingServiceServer) {
	s.RegisterService(&financingServiceDesc, srv)
}

// unaryHandler adapts one typed service method to the grpc.MethodDesc handler
// shape.
func unaryHandler[Req any](
	method string,
	call func(FinancingServiceServer, context.Context, *Req) (any, error),
) func(any, context.Context, func(any) error, grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FinancingServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FinancingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var financingServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FinancingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: unaryHandler("SubmitApplication",
			func(s FinancingServiceServer, ctx context.Context, in *SubmitApplicationRequest) (any, error) {
				return s.SubmitApplication(ctx, in)
			})},
		{MethodName: "ReviewApplication", Handler: unaryHandler("ReviewApplication",
			func(s FinancingServiceServer, ctx context.Context, in *ReviewApplicationRequest) (any, error) {
				return s.ReviewApplication(ctx, in)
			})},
		{MethodName: "CancelApplication", Handler: unaryHandler("CancelApplication",
			func(s FinancingServiceServer, ctx context.Context, in *CancelApplicationRequest) (any, error) {
				return s.CancelApplication(ctx, in)
			})},
		{MethodName: "GetApplication", Handler: unaryHandler("GetApplication",
			func(s FinancingServiceServer, ctx context.Context, in *GetApplicationRequest) (any, error) {
				return s.GetApplication(ctx, in)
			})},
		{MethodName: "ListApplications", Handler: unaryHandler("ListApplications",
			func(s FinancingServiceServer, ctx context.Context, in *ListApplicationsRequest) (any, error) {
				return s.ListApplications(ctx, in)
			})},
		{MethodName: "GenerateContract", Handler: unaryHandler("GenerateContract",
			func(s FinancingServiceServer, ctx context.Context, in *GenerateContractRequest) (any, error) {
				return s.GenerateContract(ctx, in)
			})},
		{MethodName: "SignContract", Handler: unaryHandler("SignContract",
			func(s FinancingServiceServer, ctx context.Context, in *SignContractRequest) (any, error) {
				return s.SignContract(ctx, in)
			})},
		{MethodName: "GetContract", Handler: unaryHandler("GetContract",
			func(s FinancingServiceServer, ctx context.Context, in *FinancingQueryRequest) (any, error) {
				return s.GetContract(ctx, in)
			})},
		{MethodName: "Disburse", Handler: unaryHandler("Disburse",
			func(s FinancingServiceServer, ctx context.Context, in *DisburseRequest) (any, error) {
				return s.Disburse(ctx, in)
			})},
		{MethodName: "Repay", Handler: unaryHandler("Repay",
			func(s FinancingServiceServer, ctx context.Context, in *RepayRequest) (any, error) {
				return s.Repay(ctx, in)
			})},
		{MethodName: "GetEarlyQuote", Handler: unaryHandler("GetEarlyQuote",
			func(s FinancingServiceServer, ctx context.Context, in *EarlyQuoteRequest) (any, error) {
				return s.GetEarlyQuote(ctx, in)
			})},
		{MethodName: "GetSchedule", Handler: unaryHandler("GetSchedule",
			func(s FinancingServiceServer, ctx context.Context, in *FinancingQueryRequest) (any, error) {
				return s.GetSchedule(ctx, in)
			})},
		{MethodName: "GetRecords", Handler: unaryHandler("GetRecords",
			func(s FinancingServiceServer, ctx context.Context, in *FinancingQueryRequest) (any, error) {
				return s.GetRecords(ctx, in)
			})},
		{MethodName: "GetTimeline", Handler: unaryHandler("GetTimeline",
			func(s FinancingServiceServer, ctx context.Context, in *FinancingQueryRequest) (any, error) {
				return s.GetTimeline(ctx, in)
			})},
		{MethodName: "CreateGroup", Handler: unaryHandler("CreateGroup",
			func(s FinancingServiceServer, ctx context.Context, in *CreateGroupRequest) (any, error) {
				return s.CreateGroup(ctx, in)
			})},
		{MethodName: "JoinGroup", Handler: unaryHandler("JoinGroup",
			func(s FinancingServiceServer, ctx context.Context, in *JoinGroupRequest) (any, error) {
				return s.JoinGroup(ctx, in)
			})},
		{MethodName: "ConfirmMember", Handler: unaryHandler("ConfirmMember",
			func(s FinancingServiceServer, ctx context.Context, in *ConfirmMemberRequest) (any, error) {
				return s.ConfirmMember(ctx, in)
			})},
		{MethodName: "QuitGroup", Handler: unaryHandler("QuitGroup",
			func(s FinancingServiceServer, ctx context.Context, in *QuitGroupRequest) (any, error) {
				return s.QuitGroup(ctx, in)
			})},
		{MethodName: "GetGroup", Handler: unaryHandler("GetGroup",
			func(s FinancingServiceServer, ctx context.Context, in *GetGroupRequest) (any, error) {
				return s.GetGroup(ctx, in)
			})},
		{MethodName: "MatchCandidates", Handler: unaryHandler("MatchCandidates",
			func(s FinancingServiceServer, ctx context.Context, in *MatchCandidatesRequest) (any, error) {
				return s.MatchCandidates(ctx, in)
			})},
		{MethodName: "ConfirmAndApply", Handler: unaryHandler("ConfirmAndApply",
			func(s FinancingServiceServer, ctx context.Context, in *ConfirmAndApplyRequest) (any, error) {
				return s.ConfirmAndApply(ctx, in)
			})},
		{MethodName: "GetRepaymentSummary", Handler: unaryHandler("GetRepaymentSummary",
			func(s FinancingServiceServer, ctx context.Context, in *FinancingQueryRequest) (any, error) {
				return s.GetRepaymentSummary(ctx, in)
			})},
		{MethodName: "GetFarmerStatistics", Handler: unaryHandler("GetFarmerStatistics",
			func(s FinancingServiceServer, ctx context.Context, in *FarmerStatisticsRequest) (any, error) {
				return s.GetFarmerStatistics(ctx, in)
			})},
		{MethodName: "RunOverdueSweep", Handler: unaryHandler("RunOverdueSweep",
			func(s FinancingServiceServer, ctx context.Context, in *OverdueSweepRequest) (any, error) {
				return s.RunOverdueSweep(ctx, in)
			})},
	},
	Streams: []grpclib.StreamDesc{},
}
