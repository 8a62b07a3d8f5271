package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// FinancingStatus – immutable value object with an explicit transition table
// ---------------------------------------------------------------------------

// FinancingStatus represents the lifecycle stage of a financing application.
type FinancingStatus struct {
	value string
}

const (
	financingStatusApplied   = "APPLIED"
	financingStatusReviewing = "REVIEWING"
	financingStatusApproved  = "APPROVED"
	financingStatusRejected  = "REJECTED"
	financingStatusSigned    = "SIGNED"
	financingStatusDisbursed = "DISBURSED"
	financingStatusRepaying  = "REPAYING"
	financingStatusSettled   = "SETTLED"
	financingStatusCancelled = "CANCELLED"
)

var (
	FinancingStatusApplied   = FinancingStatus{value: financingStatusApplied}
	FinancingStatusReviewing = FinancingStatus{value: financingStatusReviewing}
	FinancingStatusApproved  = FinancingStatus{value: financingStatusApproved}
	FinancingStatusRejected  = FinancingStatus{value: financingStatusRejected}
	FinancingStatusSigned    = FinancingStatus{value: financingStatusSigned}
	FinancingStatusDisbursed = FinancingStatus{value: financingStatusDisbursed}
	FinancingStatusRepaying  = FinancingStatus{value: financingStatusRepaying}
	FinancingStatusSettled   = FinancingStatus{value: financingStatusSettled}
	FinancingStatusCancelled = FinancingStatus{value: financingStatusCancelled}
)

var validFinancingStatuses = map[string]FinancingStatus{
	financingStatusApplied:   FinancingStatusApplied,
	financingStatusReviewing: FinancingStatusReviewing,
	financingStatusApproved:  FinancingStatusApproved,
	financingStatusRejected:  FinancingStatusRejected,
	financingStatusSigned:    FinancingStatusSigned,
	financingStatusDisbursed: FinancingStatusDisbursed,
	financingStatusRepaying:  FinancingStatusRepaying,
	financingStatusSettled:   FinancingStatusSettled,
	financingStatusCancelled: FinancingStatusCancelled,
}

// financingTransitions is the only source of truth for legal status moves.
// REJECTED, SETTLED and CANCELLED are terminal.
var financingTransitions = map[string][]string{
	financingStatusApplied:   {financingStatusReviewing, financingStatusCancelled},
	financingStatusReviewing: {financingStatusApproved, financingStatusRejected, financingStatusCancelled},
	financingStatusApproved:  {financingStatusSigned},
	financingStatusSigned:    {financingStatusDisbursed},
	financingStatusDisbursed: {financingStatusRepaying},
	financingStatusRepaying:  {financingStatusSettled},
}

// NewFinancingStatus creates a FinancingStatus from a raw string.
func NewFinancingStatus(s string) (FinancingStatus, error) {
	v, ok := validFinancingStatuses[s]
	if !ok {
		return FinancingStatus{}, fmt.Errorf("invalid financing status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s FinancingStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s FinancingStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s FinancingStatus) Equal(other FinancingStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further transitions are allowed.
func (s FinancingStatus) IsTerminal() bool {
	return len(financingTransitions[s.value]) == 0
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s FinancingStatus) CanTransitionTo(next FinancingStatus) bool {
	for _, allowed := range financingTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// ScheduleStatus – status of one repayment installment row
// ---------------------------------------------------------------------------

// ScheduleStatus represents the state of a single installment.
type ScheduleStatus struct {
	value string
}

const (
	scheduleStatusPending = "PENDING"
	scheduleStatusPaid    = "PAID"
	scheduleStatusOverdue = "OVERDUE"
)

var (
	ScheduleStatusPending = ScheduleStatus{value: scheduleStatusPending}
	ScheduleStatusPaid    = ScheduleStatus{value: scheduleStatusPaid}
	ScheduleStatusOverdue = ScheduleStatus{value: scheduleStatusOverdue}
)

var validScheduleStatuses = map[string]ScheduleStatus{
	scheduleStatusPending: ScheduleStatusPending,
	scheduleStatusPaid:    ScheduleStatusPaid,
	scheduleStatusOverdue: ScheduleStatusOverdue,
}

// NewScheduleStatus creates a ScheduleStatus from a raw string.
func NewScheduleStatus(s string) (ScheduleStatus, error) {
	v, ok := validScheduleStatuses[s]
	if !ok {
		return ScheduleStatus{}, fmt.Errorf("invalid schedule status: %q", s)
	}
	return v, nil
}

func (s ScheduleStatus) String() string                  { return s.value }
func (s ScheduleStatus) IsZero() bool                    { return s.value == "" }
func (s ScheduleStatus) Equal(other ScheduleStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// RepaymentType – classification of a repayment ledger entry
// ---------------------------------------------------------------------------

// RepaymentType classifies a repayment record.
type RepaymentType struct {
	value string
}

const (
	repaymentTypeNormal  = "NORMAL"
	repaymentTypeEarly   = "EARLY"
	repaymentTypeOverdue = "OVERDUE"
)

var (
	RepaymentTypeNormal  = RepaymentType{value: repaymentTypeNormal}
	RepaymentTypeEarly   = RepaymentType{value: repaymentTypeEarly}
	RepaymentTypeOverdue = RepaymentType{value: repaymentTypeOverdue}
)

var validRepaymentTypes = map[string]RepaymentType{
	repaymentTypeNormal:  RepaymentTypeNormal,
	repaymentTypeEarly:   RepaymentTypeEarly,
	repaymentTypeOverdue: RepaymentTypeOverdue,
}

// NewRepaymentType creates a RepaymentType from a raw string.
func NewRepaymentType(s string) (RepaymentType, error) {
	v, ok := validRepaymentTypes[s]
	if !ok {
		return RepaymentType{}, fmt.Errorf("invalid repayment type: %q", s)
	}
	return v, nil
}

func (s RepaymentType) String() string                 { return s.value }
func (s RepaymentType) Equal(other RepaymentType) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ContractStatus
// ---------------------------------------------------------------------------

// ContractStatus represents the lifecycle stage of a financing contract.
type ContractStatus struct {
	value string
}

const (
	contractStatusDraft     = "DRAFT"
	contractStatusSigned    = "SIGNED"
	contractStatusCancelled = "CANCELLED"
)

var (
	ContractStatusDraft     = ContractStatus{value: contractStatusDraft}
	ContractStatusSigned    = ContractStatus{value: contractStatusSigned}
	ContractStatusCancelled = ContractStatus{value: contractStatusCancelled}
)

var validContractStatuses = map[string]ContractStatus{
	contractStatusDraft:     ContractStatusDraft,
	contractStatusSigned:    ContractStatusSigned,
	contractStatusCancelled: ContractStatusCancelled,
}

// NewContractStatus creates a ContractStatus from a raw string.
func NewContractStatus(s string) (ContractStatus, error) {
	v, ok := validContractStatuses[s]
	if !ok {
		return ContractStatus{}, fmt.Errorf("invalid contract status: %q", s)
	}
	return v, nil
}

func (s ContractStatus) String() string                  { return s.value }
func (s ContractStatus) IsZero() bool                    { return s.value == "" }
func (s ContractStatus) Equal(other ContractStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// GroupStatus / MemberStatus – joint-loan pooling
// ---------------------------------------------------------------------------

// GroupStatus represents the lifecycle stage of a joint-loan group.
type GroupStatus struct {
	value string
}

const (
	groupStatusMatching  = "MATCHING"
	groupStatusMatched   = "MATCHED"
	groupStatusApplied   = "APPLIED"
	groupStatusCancelled = "CANCELLED"
)

var (
	GroupStatusMatching  = GroupStatus{value: groupStatusMatching}
	GroupStatusMatched   = GroupStatus{value: groupStatusMatched}
	GroupStatusApplied   = GroupStatus{value: groupStatusApplied}
	GroupStatusCancelled = GroupStatus{value: groupStatusCancelled}
)

var validGroupStatuses = map[string]GroupStatus{
	groupStatusMatching:  GroupStatusMatching,
	groupStatusMatched:   GroupStatusMatched,
	groupStatusApplied:   GroupStatusApplied,
	groupStatusCancelled: GroupStatusCancelled,
}

// NewGroupStatus creates a GroupStatus from a raw string.
func NewGroupStatus(s string) (GroupStatus, error) {
	v, ok := validGroupStatuses[s]
	if !ok {
		return GroupStatus{}, fmt.Errorf("invalid group status: %q", s)
	}
	return v, nil
}

func (s GroupStatus) String() string               { return s.value }
func (s GroupStatus) IsZero() bool                 { return s.value == "" }
func (s GroupStatus) Equal(other GroupStatus) bool { return s.value == other.value }

// MemberStatus represents the state of one farmer's membership in a group.
type MemberStatus struct {
	value string
}

const (
	memberStatusPending   = "PENDING"
	memberStatusConfirmed = "CONFIRMED"
	memberStatusCancelled = "CANCELLED"
)

var (
	MemberStatusPending   = MemberStatus{value: memberStatusPending}
	MemberStatusConfirmed = MemberStatus{value: memberStatusConfirmed}
	MemberStatusCancelled = MemberStatus{value: memberStatusCancelled}
)

var validMemberStatuses = map[string]MemberStatus{
	memberStatusPending:   MemberStatusPending,
	memberStatusConfirmed: MemberStatusConfirmed,
	memberStatusCancelled: MemberStatusCancelled,
}

// NewMemberStatus creates a MemberStatus from a raw string.
func NewMemberStatus(s string) (MemberStatus, error) {
	v, ok := validMemberStatuses[s]
	if !ok {
		return MemberStatus{}, fmt.Errorf("invalid member status: %q", s)
	}
	return v, nil
}

func (s MemberStatus) String() string                { return s.value }
func (s MemberStatus) Equal(other MemberStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ActorType – who performed a timeline action
// ---------------------------------------------------------------------------

// ActorType identifies the kind of actor recorded on a timeline entry.
type ActorType struct {
	value string
}

const (
	actorFarmer = "FARMER"
	actorBank   = "BANK"
	actorAdmin  = "ADMIN"
	actorSystem = "SYSTEM"
)

var (
	ActorFarmer = ActorType{value: actorFarmer}
	ActorBank   = ActorType{value: actorBank}
	ActorAdmin  = ActorType{value: actorAdmin}
	ActorSystem = ActorType{value: actorSystem}
)

var validActorTypes = map[string]ActorType{
	actorFarmer: ActorFarmer,
	actorBank:   ActorBank,
	actorAdmin:  ActorAdmin,
	actorSystem: ActorSystem,
}

// NewActorType creates an ActorType from a raw string.
func NewActorType(s string) (ActorType, error) {
	v, ok := validActorTypes[s]
	if !ok {
		return ActorType{}, fmt.Errorf("invalid actor type: %q", s)
	}
	return v, nil
}

func (s ActorType) String() string             { return s.value }
func (s ActorType) Equal(other ActorType) bool { return s.value == other.value }
