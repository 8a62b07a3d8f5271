package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Financing Application Events
// ---------------------------------------------------------------------------

// FinancingApplied is raised when a new financing application enters the system.
type FinancingApplied struct {
	events.BaseEvent
	FarmerID   string          `json:"farmer_id"`
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
	GroupID    string          `json:"group_id,omitempty"`
}

func NewFinancingApplied(
	applicationID, farmerID string,
	amount decimal.Decimal, termMonths int, purpose, groupID string,
) FinancingApplied {
	return FinancingApplied{
		BaseEvent:  events.NewBaseEvent("financing.application.applied", applicationID, "FinancingApplication"),
		FarmerID:   farmerID,
		Amount:     amount,
		TermMonths: termMonths,
		Purpose:    purpose,
		GroupID:    groupID,
	}
}

// FinancingReviewStarted is raised when a bank officer picks up an application.
type FinancingReviewStarted struct {
	events.BaseEvent
	ReviewerID string `json:"reviewer_id"`
}

func NewFinancingReviewStarted(applicationID, reviewerID string) FinancingReviewStarted {
	return FinancingReviewStarted{
		BaseEvent:  events.NewBaseEvent("financing.application.review_started", applicationID, "FinancingApplication"),
		ReviewerID: reviewerID,
	}
}

// FinancingApproved is raised when a reviewer approves an application.
type FinancingApproved struct {
	events.BaseEvent
	FarmerID          string          `json:"farmer_id"`
	ReviewerID        string          `json:"reviewer_id"`
	ApprovedAmount    decimal.Decimal `json:"approved_amount"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
}

func NewFinancingApproved(
	applicationID, farmerID, reviewerID string,
	approvedAmount, annualRatePercent decimal.Decimal, termMonths int,
) FinancingApproved {
	return FinancingApproved{
		BaseEvent:         events.NewBaseEvent("financing.application.approved", applicationID, "FinancingApplication"),
		FarmerID:          farmerID,
		ReviewerID:        reviewerID,
		ApprovedAmount:    approvedAmount,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
	}
}

// FinancingRejected is raised when a reviewer rejects an application.
type FinancingRejected struct {
	events.BaseEvent
	FarmerID   string `json:"farmer_id"`
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason"`
}

func NewFinancingRejected(applicationID, farmerID, reviewerID, reason string) FinancingRejected {
	return FinancingRejected{
		BaseEvent:  events.NewBaseEvent("financing.application.rejected", applicationID, "FinancingApplication"),
		FarmerID:   farmerID,
		ReviewerID: reviewerID,
		Reason:     reason,
	}
}

// FinancingCancelled is raised when the applicant withdraws before approval.
type FinancingCancelled struct {
	events.BaseEvent
	FarmerID string `json:"farmer_id"`
	Reason   string `json:"reason"`
}

func NewFinancingCancelled(applicationID, farmerID, reason string) FinancingCancelled {
	return FinancingCancelled{
		BaseEvent: events.NewBaseEvent("financing.application.cancelled", applicationID, "FinancingApplication"),
		FarmerID:  farmerID,
		Reason:    reason,
	}
}

// ---------------------------------------------------------------------------
// Contract Events
// ---------------------------------------------------------------------------

// ContractGenerated is raised when a draft contract is produced for an
// approved application.
type ContractGenerated struct {
	events.BaseEvent
	ApplicationID string `json:"application_id"`
	ContractNo    string `json:"contract_no"`
}

func NewContractGenerated(contractID, applicationID, contractNo string) ContractGenerated {
	return ContractGenerated{
		BaseEvent:     events.NewBaseEvent("financing.contract.generated", contractID, "FinancingContract"),
		ApplicationID: applicationID,
		ContractNo:    contractNo,
	}
}

// ContractSigned is raised when both parties have signed and the contract is
// legally effective.
type ContractSigned struct {
	events.BaseEvent
	ApplicationID string    `json:"application_id"`
	ContractNo    string    `json:"contract_no"`
	SignedAt      time.Time `json:"signed_at"`
}

func NewContractSigned(contractID, applicationID, contractNo string, signedAt time.Time) ContractSigned {
	return ContractSigned{
		BaseEvent:     events.NewBaseEvent("financing.contract.signed", contractID, "FinancingContract"),
		ApplicationID: applicationID,
		ContractNo:    contractNo,
		SignedAt:      signedAt,
	}
}

// ---------------------------------------------------------------------------
// Disbursement and Repayment Events
// ---------------------------------------------------------------------------

// FinancingDisbursed is raised when funds are released to the farmer.
type FinancingDisbursed struct {
	events.BaseEvent
	FarmerID     string          `json:"farmer_id"`
	Amount       decimal.Decimal `json:"amount"`
	FirstDueDate time.Time       `json:"first_due_date"`
	TermMonths   int             `json:"term_months"`
}

func NewFinancingDisbursed(
	applicationID, farmerID string,
	amount decimal.Decimal, firstDueDate time.Time, termMonths int,
) FinancingDisbursed {
	return FinancingDisbursed{
		BaseEvent:    events.NewBaseEvent("financing.application.disbursed", applicationID, "FinancingApplication"),
		FarmerID:     farmerID,
		Amount:       amount,
		FirstDueDate: firstDueDate,
		TermMonths:   termMonths,
	}
}

// RepaymentReceived is raised when a repayment is applied to the schedule.
type RepaymentReceived struct {
	events.BaseEvent
	RecordID       string          `json:"record_id"`
	FarmerID       string          `json:"farmer_id"`
	Amount         decimal.Decimal `json:"amount"`
	PrincipalPaid  decimal.Decimal `json:"principal_paid"`
	InterestPaid   decimal.Decimal `json:"interest_paid"`
	PenaltyPaid    decimal.Decimal `json:"penalty_paid"`
	RepaymentType  string          `json:"repayment_type"`
	PeriodsTouched []int           `json:"periods_touched"`
}

func NewRepaymentReceived(
	applicationID, recordID, farmerID string,
	amount, principalPaid, interestPaid, penaltyPaid decimal.Decimal,
	repaymentType string, periodsTouched []int,
) RepaymentReceived {
	return RepaymentReceived{
		BaseEvent:      events.NewBaseEvent("financing.repayment.received", applicationID, "FinancingApplication"),
		RecordID:       recordID,
		FarmerID:       farmerID,
		Amount:         amount,
		PrincipalPaid:  principalPaid,
		InterestPaid:   interestPaid,
		PenaltyPaid:    penaltyPaid,
		RepaymentType:  repaymentType,
		PeriodsTouched: periodsTouched,
	}
}

// InstallmentOverdue is raised by the overdue sweep for each installment that
// passed its due date unpaid.
type InstallmentOverdue struct {
	events.BaseEvent
	FarmerID    string          `json:"farmer_id"`
	Period      int             `json:"period"`
	DueDate     time.Time       `json:"due_date"`
	DaysOverdue int             `json:"days_overdue"`
	Penalty     decimal.Decimal `json:"penalty"`
}

func NewInstallmentOverdue(
	applicationID, farmerID string,
	period int, dueDate time.Time, daysOverdue int, penalty decimal.Decimal,
) InstallmentOverdue {
	return InstallmentOverdue{
		BaseEvent:   events.NewBaseEvent("financing.installment.overdue", applicationID, "FinancingApplication"),
		FarmerID:    farmerID,
		Period:      period,
		DueDate:     dueDate,
		DaysOverdue: daysOverdue,
		Penalty:     penalty,
	}
}

// FinancingSettled is raised when the last installment is paid in full.
type FinancingSettled struct {
	events.BaseEvent
	FarmerID  string    `json:"farmer_id"`
	SettledAt time.Time `json:"settled_at"`
}

func NewFinancingSettled(applicationID, farmerID string, settledAt time.Time) FinancingSettled {
	return FinancingSettled{
		BaseEvent: events.NewBaseEvent("financing.application.settled", applicationID, "FinancingApplication"),
		FarmerID:  farmerID,
		SettledAt: settledAt,
	}
}

// ---------------------------------------------------------------------------
// Joint-Loan Group Events
// ---------------------------------------------------------------------------

// GroupCreated is raised when a farmer opens a joint-loan group.
type GroupCreated struct {
	events.BaseEvent
	CreatorID    string          `json:"creator_id"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	InitialStake decimal.Decimal `json:"initial_stake"`
	TermMonths   int             `json:"term_months"`
}

func NewGroupCreated(groupID, creatorID string, targetAmount, initialStake decimal.Decimal, termMonths int) GroupCreated {
	return GroupCreated{
		BaseEvent:    events.NewBaseEvent("financing.group.created", groupID, "JointLoanGroup"),
		CreatorID:    creatorID,
		TargetAmount: targetAmount,
		InitialStake: initialStake,
		TermMonths:   termMonths,
	}
}

// GroupMemberJoined is raised when a farmer joins an open group.
type GroupMemberJoined struct {
	events.BaseEvent
	FarmerID string          `json:"farmer_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewGroupMemberJoined(groupID, farmerID string, amount decimal.Decimal) GroupMemberJoined {
	return GroupMemberJoined{
		BaseEvent: events.NewBaseEvent("financing.group.member_joined", groupID, "JointLoanGroup"),
		FarmerID:  farmerID,
		Amount:    amount,
	}
}

// GroupMemberConfirmed is raised when a member confirms their stake.
type GroupMemberConfirmed struct {
	events.BaseEvent
	FarmerID string          `json:"farmer_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewGroupMemberConfirmed(groupID, farmerID string, amount decimal.Decimal) GroupMemberConfirmed {
	return GroupMemberConfirmed{
		BaseEvent: events.NewBaseEvent("financing.group.member_confirmed", groupID, "JointLoanGroup"),
		FarmerID:  farmerID,
		Amount:    amount,
	}
}

// GroupMemberQuit is raised when a member leaves before the group applies.
type GroupMemberQuit struct {
	events.BaseEvent
	FarmerID string `json:"farmer_id"`
}

func NewGroupMemberQuit(groupID, farmerID string) GroupMemberQuit {
	return GroupMemberQuit{
		BaseEvent: events.NewBaseEvent("financing.group.member_quit", groupID, "JointLoanGroup"),
		FarmerID:  farmerID,
	}
}

// GroupMatched is raised when confirmed stakes reach the target amount.
type GroupMatched struct {
	events.BaseEvent
	ConfirmedAmount decimal.Decimal `json:"confirmed_amount"`
	MemberCount     int             `json:"member_count"`
}

func NewGroupMatched(groupID string, confirmedAmount decimal.Decimal, memberCount int) GroupMatched {
	return GroupMatched{
		BaseEvent:       events.NewBaseEvent("financing.group.matched", groupID, "JointLoanGroup"),
		ConfirmedAmount: confirmedAmount,
		MemberCount:     memberCount,
	}
}

// GroupApplied is raised when per-member applications were created from a
// matched group.
type GroupApplied struct {
	events.BaseEvent
	ApplicationIDs []string `json:"application_ids"`
}

func NewGroupApplied(groupID string, applicationIDs []string) GroupApplied {
	return GroupApplied{
		BaseEvent:      events.NewBaseEvent("financing.group.applied", groupID, "JointLoanGroup"),
		ApplicationIDs: applicationIDs,
	}
}

// GroupCancelled is raised when a group is dissolved before applying.
type GroupCancelled struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewGroupCancelled(groupID, reason string) GroupCancelled {
	return GroupCancelled{
		BaseEvent: events.NewBaseEvent("financing.group.cancelled", groupID, "JointLoanGroup"),
		Reason:    reason,
	}
}
