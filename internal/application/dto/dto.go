package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data to submit a financing application.
type SubmitApplicationRequest struct {
	FarmerID   string          `json:"farmer_id"`
	ProductID  string          `json:"product_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
}

// ReviewApplicationRequest carries a bank reviewer's decision.
type ReviewApplicationRequest struct {
	ApplicationID string          `json:"application_id"`
	ReviewerID    string          `json:"reviewer_id"`
	Decision      string          `json:"decision"`
	Comment       string          `json:"comment,omitempty"`
	CreditScore   int             `json:"credit_score,omitempty"`
	InterestRate  decimal.Decimal `json:"interest_rate,omitempty"`
}

// Review decisions.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// CancelApplicationRequest withdraws an application before approval.
type CancelApplicationRequest struct {
	ApplicationID string `json:"application_id"`
	FarmerID      string `json:"farmer_id"`
	Reason        string `json:"reason,omitempty"`
}

// GenerateContractRequest produces a draft contract for an approved
// application.
type GenerateContractRequest struct {
	ApplicationID string `json:"application_id"`
}

// Contract signing parties.
const (
	PartyFarmer = "FARMER"
	PartyBank   = "BANK"
)

// SignContractRequest records one party's signature.
type SignContractRequest struct {
	ContractID   string `json:"contract_id"`
	Party        string `json:"party"`
	SignerID     string `json:"signer_id"`
	SignatureURL string `json:"signature_url"`
}

// DisburseRequest releases funds against a signed application.
type DisburseRequest struct {
	ApplicationID string          `json:"application_id"`
	ContractID    string          `json:"contract_id"`
	Amount        decimal.Decimal `json:"amount"`
	BankAccount   string          `json:"bank_account"`
	FarmerAccount string          `json:"farmer_account"`
	Method        string          `json:"method,omitempty"`
	OperatorID    string          `json:"operator_id"`
}

// RepayRequest applies a payment. ScheduleID targets one installment; when
// empty the payment is treated as an early/lump-sum repayment.
type RepayRequest struct {
	FinancingID   string          `json:"financing_id"`
	ScheduleID    string          `json:"schedule_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	FarmerID      string          `json:"farmer_id"`
}

// EarlyQuoteRequest asks for a read-only early repayment breakdown.
type EarlyQuoteRequest struct {
	FinancingID   string          `json:"financing_id"`
	Amount        decimal.Decimal `json:"amount"`
	RepaymentDate time.Time       `json:"repayment_date"`
}

// CreateGroupRequest opens a joint-loan group.
type CreateGroupRequest struct {
	CreatorID     string          `json:"creator_id"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CreatorAmount decimal.Decimal `json:"creator_amount"`
	TermMonths    int             `json:"term_months"`
	Purpose       string          `json:"purpose"`
}

// JoinGroupRequest adds a farmer to an open group.
type JoinGroupRequest struct {
	GroupID  string          `json:"group_id"`
	FarmerID string          `json:"farmer_id"`
	Amount   decimal.Decimal `json:"amount"`
	Purpose  string          `json:"purpose"`
}

// ConfirmMemberRequest confirms a farmer's stake in a group.
type ConfirmMemberRequest struct {
	GroupID  string `json:"group_id"`
	FarmerID string `json:"farmer_id"`
}

// QuitGroupRequest cancels a farmer's membership.
type QuitGroupRequest struct {
	GroupID  string `json:"group_id"`
	FarmerID string `json:"farmer_id"`
}

// MatchCandidatesRequest looks up open groups that can absorb amount.
type MatchCandidatesRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	FarmerID string          `json:"farmer_id"`
}

// ConfirmAndApplyRequest fans a matched group out into per-member
// applications.
type ConfirmAndApplyRequest struct {
	GroupID string `json:"group_id"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest lists a farmer's applications.
type ListApplicationsRequest struct {
	FarmerID string `json:"farmer_id"`
}

// GetGroupRequest identifies a group to retrieve.
type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

// FinancingQueryRequest identifies schedule/record/timeline reads.
type FinancingQueryRequest struct {
	FinancingID string `json:"financing_id"`
}

// FarmerStatisticsRequest identifies per-farmer aggregate reads.
type FarmerStatisticsRequest struct {
	FarmerID string `json:"farmer_id"`
}

// OverdueSweepRequest triggers an overdue sweep as of the given date.
type OverdueSweepRequest struct {
	AsOf time.Time `json:"as_of"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ApplicationResponse is the external representation of a financing
// application.
type ApplicationResponse struct {
	ID              string          `json:"id"`
	FarmerID        string          `json:"farmer_id"`
	ProductID       string          `json:"product_id,omitempty"`
	GroupID         string          `json:"group_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	InterestRate    decimal.Decimal `json:"interest_rate,omitempty"`
	CreditScore     int             `json:"credit_score,omitempty"`
	ReviewerID      string          `json:"reviewer_id,omitempty"`
	ReviewedAt      time.Time       `json:"reviewed_at,omitempty"`
	ReviewComment   string          `json:"review_comment,omitempty"`
	ContractID      string          `json:"contract_id,omitempty"`
	SignedAt        time.Time       `json:"signed_at,omitempty"`
	DisbursedAt     time.Time       `json:"disbursed_at,omitempty"`
	DisbursedAmount decimal.Decimal `json:"disbursed_amount,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContractResponse is the external representation of a financing contract.
type ContractResponse struct {
	ID             string          `json:"id"`
	ContractNo     string          `json:"contract_no"`
	FinancingID    string          `json:"financing_id"`
	FarmerID       string          `json:"farmer_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermMonths     int             `json:"term_months"`
	Status         string          `json:"status"`
	DocumentURL    string          `json:"document_url,omitempty"`
	FarmerSignURL  string          `json:"farmer_sign_url,omitempty"`
	FarmerSignedAt time.Time       `json:"farmer_signed_at,omitempty"`
	BankSignURL    string          `json:"bank_sign_url,omitempty"`
	BankSignedAt   time.Time       `json:"bank_signed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ScheduleResponse is one installment row.
type ScheduleResponse struct {
	ID                string          `json:"id"`
	FinancingID       string          `json:"financing_id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	Principal         decimal.Decimal `json:"principal"`
	Interest          decimal.Decimal `json:"interest"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Penalty           decimal.Decimal `json:"penalty"`
	Status            string          `json:"status"`
	PaidAt            time.Time       `json:"paid_at,omitempty"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
}

// RecordResponse is one repayment ledger entry.
type RecordResponse struct {
	ID            string          `json:"id"`
	FinancingID   string          `json:"financing_id"`
	ScheduleID    string          `json:"schedule_id,omitempty"`
	RepaymentType string          `json:"repayment_type"`
	Amount        decimal.Decimal `json:"amount"`
	Principal     decimal.Decimal `json:"principal"`
	Interest      decimal.Decimal `json:"interest"`
	Penalty       decimal.Decimal `json:"penalty"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// TimelineEntryResponse is one audit row.
type TimelineEntryResponse struct {
	ID          string    `json:"id"`
	FinancingID string    `json:"financing_id"`
	ActorType   string    `json:"actor_type"`
	ActorID     string    `json:"actor_id"`
	Action      string    `json:"action"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RepayResponse reports the outcome of a repayment.
type RepayResponse struct {
	FinancingID       string           `json:"financing_id"`
	ApplicationStatus string           `json:"application_status"`
	AmountApplied     decimal.Decimal  `json:"amount_applied"`
	Settled           bool             `json:"settled"`
	Records           []RecordResponse `json:"records"`
}

// EarlyQuoteResponse is the read-only early repayment breakdown.
type EarlyQuoteResponse struct {
	FinancingID          string          `json:"financing_id"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	PenaltyDue           decimal.Decimal `json:"penalty_due"`
	AccruedInterest      decimal.Decimal `json:"accrued_interest"`
	InterestSaved        decimal.Decimal `json:"interest_saved"`
	PrincipalCovered     decimal.Decimal `json:"principal_covered"`
	RemainingBalance     decimal.Decimal `json:"remaining_balance"`
}

// MemberResponse is one joint-loan group member.
type MemberResponse struct {
	ID          string          `json:"id"`
	FarmerID    string          `json:"farmer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     string          `json:"purpose,omitempty"`
	Status      string          `json:"status"`
	FinancingID string          `json:"financing_id,omitempty"`
	JoinedAt    time.Time       `json:"joined_at"`
	ConfirmedAt time.Time       `json:"confirmed_at,omitempty"`
}

// GroupResponse is the external representation of a joint-loan group.
type GroupResponse struct {
	ID              string           `json:"id"`
	CreatorID       string           `json:"creator_id"`
	TargetAmount    decimal.Decimal  `json:"target_amount"`
	ConfirmedAmount decimal.Decimal  `json:"confirmed_amount"`
	TermMonths      int              `json:"term_months"`
	Status          string           `json:"status"`
	Members         []MemberResponse `json:"members"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MatchCandidateResponse is one open group a farmer could join.
type MatchCandidateResponse struct {
	GroupID           string          `json:"group_id"`
	CreatorID         string          `json:"creator_id"`
	TargetAmount      decimal.Decimal `json:"target_amount"`
	RemainingCapacity decimal.Decimal `json:"remaining_capacity"`
	MemberCount       int             `json:"member_count"`
	CreatedAt         time.Time       `json:"created_at"`
}

// MatchCandidatesResponse lists candidate groups.
type MatchCandidatesResponse struct {
	Candidates []MatchCandidateResponse `json:"candidates"`
}

// ConfirmAndApplyResponse reports the fan-out result.
type ConfirmAndApplyResponse struct {
	GroupID        string   `json:"group_id"`
	ApplicationIDs []string `json:"application_ids"`
}

// RepaymentSummaryResponse aggregates schedule rows and ledger sums for one
// financing.
type RepaymentSummaryResponse struct {
	FinancingID         string          `json:"financing_id"`
	TotalInstallments   int             `json:"total_installments"`
	PaidInstallments    int             `json:"paid_installments"`
	PendingInstallments int             `json:"pending_installments"`
	OverdueInstallments int             `json:"overdue_installments"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	OverdueAmount       decimal.Decimal `json:"overdue_amount"`
	PaidPrincipal       decimal.Decimal `json:"paid_principal"`
	PaidInterest        decimal.Decimal `json:"paid_interest"`
	PaidPenalty         decimal.Decimal `json:"paid_penalty"`
}

// FarmerStatisticsResponse aggregates a farmer's financing activity.
type FarmerStatisticsResponse struct {
	FarmerID            string          `json:"farmer_id"`
	TotalApplications   int             `json:"total_applications"`
	ActiveApplications  int             `json:"active_applications"`
	SettledApplications int             `json:"settled_applications"`
	TotalFinanced       decimal.Decimal `json:"total_financed"`
	TotalRepaid         decimal.Decimal `json:"total_repaid"`
	TotalOutstanding    decimal.Decimal `json:"total_outstanding"`
}

// GroupCandidateInfo accompanies the below-minimum redirect so the caller can
// offer the joint-loan path.
type GroupCandidateInfo struct {
	GroupID           string          `json:"group_id"`
	RemainingCapacity decimal.Decimal `json:"remaining_capacity"`
}

// OverdueSweepResponse reports one sweep run.
type OverdueSweepResponse struct {
	RowsMarked   int      `json:"rows_marked"`
	FinancingIDs []string `json:"financing_ids"`
}
