package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes carried by DomainError. The presentation layer maps these to
// transport status codes.
const (
	ErrCodeValidation   = "VALIDATION"
	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeBelowMinimum = "BELOW_MINIMUM"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeCollaborator = "COLLABORATOR"
)

// ErrInvalidStatusTransition is the sentinel returned by aggregates when a
// state transition is not allowed from the current status.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// ErrVersionConflict is returned by repositories when an optimistic-lock
// version check fails on save.
var ErrVersionConflict = &DomainError{Code: ErrCodeConflict, Message: "aggregate was modified concurrently"}

// DomainError is a business-rule violation with a machine-readable code.
type DomainError struct {
	Code    string
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// NewValidation builds a VALIDATION error.
func NewValidation(format string, args ...any) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidState builds an INVALID_STATE error.
func NewInvalidState(format string, args ...any) *DomainError {
	return &DomainError{Code: ErrCodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound builds a NOT_FOUND error from a formatted message, for callers
// that have no entity identifier at hand.
func NewNotFound(format string, args ...any) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a NOT_FOUND error for the given entity and identifier.
func NotFound(entity, id string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// Collaborator wraps a failure from an external dependency.
func Collaborator(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeCollaborator, Message: message, cause: cause}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// InvalidTransitionError reports an attempted illegal status move. It wraps
// ErrInvalidStatusTransition so callers can match on the sentinel.
type InvalidTransitionError struct {
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Attempted)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidStatusTransition }

// NewInvalidTransition builds an InvalidTransitionError from two statuses.
func NewInvalidTransition(current, attempted FinancingStatus) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current.String(), Attempted: attempted.String()}
}

// GroupCandidate describes an open joint-loan group a farmer could join
// instead of applying alone.
type GroupCandidate struct {
	GroupID       string
	CreatorID     string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	MemberCount   int
}

// BelowMinimumError is returned when a requested amount is under the solo
// financing threshold. Candidates lists open groups the applicant can join.
type BelowMinimumError struct {
	Minimum    decimal.Decimal
	Requested  decimal.Decimal
	Candidates []GroupCandidate
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("requested amount %s is below the solo financing minimum %s",
		e.Requested.StringFixed(2), e.Minimum.StringFixed(2))
}

// Code lets BelowMinimumError participate in IsCode-style dispatch.
func (e *BelowMinimumError) Code() string { return ErrCodeBelowMinimum }
