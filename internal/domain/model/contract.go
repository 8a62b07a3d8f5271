package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// FinancingContract aggregate
// ---------------------------------------------------------------------------

// FinancingContract carries the financial terms frozen from the application
// at approval time plus the two-party signature state.
type FinancingContract struct {
	id             string
	contractNo     string
	financingID    string
	farmerID       string
	amount         decimal.Decimal
	interestRate   decimal.Decimal
	termMonths     int
	status         valueobject.ContractStatus
	documentURL    string
	farmerSignURL  string
	farmerSignedAt time.Time
	bankSignURL    string
	bankSignedAt   time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewFinancingContract creates a DRAFT contract pre-populated from an
// approved application.
func NewFinancingContract(app FinancingApplication, now time.Time) (FinancingContract, error) {
	if !app.Status().Equal(valueobject.FinancingStatusApproved) {
		return FinancingContract{}, valueobject.NewInvalidState(
			"contract requires an APPROVED application, status is %s", app.Status())
	}

	id := uuid.New().String()
	contractNo := generateContractNo(now)
	c := FinancingContract{
		id:           id,
		contractNo:   contractNo,
		financingID:  app.ID(),
		farmerID:     app.FarmerID(),
		amount:       app.Amount(),
		interestRate: app.InterestRate(),
		termMonths:   app.TermMonths(),
		status:       valueobject.ContractStatusDraft,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}

	c.domainEvents = append(c.domainEvents, event.NewContractGenerated(id, app.ID(), contractNo))
	return c, nil
}

// ReconstructFinancingContract rebuilds a contract from persistence.
func ReconstructFinancingContract(
	id, contractNo, financingID, farmerID string,
	amount, interestRate decimal.Decimal,
	termMonths int,
	status valueobject.ContractStatus,
	documentURL, farmerSignURL string,
	farmerSignedAt time.Time,
	bankSignURL string,
	bankSignedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) FinancingContract {
	return FinancingContract{
		id:             id,
		contractNo:     contractNo,
		financingID:    financingID,
		farmerID:       farmerID,
		amount:         amount,
		interestRate:   interestRate,
		termMonths:     termMonths,
		status:         status,
		documentURL:    documentURL,
		farmerSignURL:  farmerSignURL,
		farmerSignedAt: farmerSignedAt,
		bankSignURL:    bankSignURL,
		bankSignedAt:   bankSignedAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// WithDocumentURL records the rendered contract document location.
func (c FinancingContract) WithDocumentURL(url string, now time.Time) FinancingContract {
	next := c
	next.documentURL = url
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next
}

// SignByFarmer records the farmer-side signature. When the bank has already
// signed, the contract becomes SIGNED.
func (c FinancingContract) SignByFarmer(signatureURL string, now time.Time) (FinancingContract, error) {
	return c.sign(signatureURL, now, true)
}

// SignByBank records the bank-side signature. When the farmer has already
// signed, the contract becomes SIGNED.
func (c FinancingContract) SignByBank(signatureURL string, now time.Time) (FinancingContract, error) {
	return c.sign(signatureURL, now, false)
}

func (c FinancingContract) sign(signatureURL string, now time.Time, farmerSide bool) (FinancingContract, error) {
	if !c.status.Equal(valueobject.ContractStatusDraft) {
		return c, valueobject.NewInvalidState("contract %s is not signable, status is %s", c.contractNo, c.status)
	}
	if signatureURL == "" {
		return c, valueobject.NewValidation("signature URL is required")
	}

	next := c
	next.domainEvents = copyEvents(c.domainEvents)
	if farmerSide {
		if c.farmerSignURL != "" {
			return c, valueobject.NewInvalidState("contract %s is already signed by the farmer", c.contractNo)
		}
		next.farmerSignURL = signatureURL
		next.farmerSignedAt = now
	} else {
		if c.bankSignURL != "" {
			return c, valueobject.NewInvalidState("contract %s is already signed by the bank", c.contractNo)
		}
		next.bankSignURL = signatureURL
		next.bankSignedAt = now
	}
	next.updatedAt = now

	if next.farmerSignURL != "" && next.bankSignURL != "" {
		next.status = valueobject.ContractStatusSigned
		next.domainEvents = append(next.domainEvents,
			event.NewContractSigned(c.id, c.financingID, c.contractNo, now))
	}
	return next, nil
}

// Cancel voids a draft contract.
func (c FinancingContract) Cancel(now time.Time) (FinancingContract, error) {
	if !c.status.Equal(valueobject.ContractStatusDraft) {
		return c, valueobject.NewInvalidState("only a DRAFT contract can be cancelled, status is %s", c.status)
	}
	next := c
	next.status = valueobject.ContractStatusCancelled
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// IsFullySigned reports whether both parties have signed.
func (c FinancingContract) IsFullySigned() bool {
	return c.status.Equal(valueobject.ContractStatusSigned)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c FinancingContract) ID() string                           { return c.id }
func (c FinancingContract) ContractNo() string                   { return c.contractNo }
func (c FinancingContract) FinancingID() string                  { return c.financingID }
func (c FinancingContract) FarmerID() string                     { return c.farmerID }
func (c FinancingContract) Amount() decimal.Decimal              { return c.amount }
func (c FinancingContract) InterestRate() decimal.Decimal        { return c.interestRate }
func (c FinancingContract) TermMonths() int                      { return c.termMonths }
func (c FinancingContract) Status() valueobject.ContractStatus   { return c.status }
func (c FinancingContract) DocumentURL() string                  { return c.documentURL }
func (c FinancingContract) FarmerSignURL() string                { return c.farmerSignURL }
func (c FinancingContract) FarmerSignedAt() time.Time            { return c.farmerSignedAt }
func (c FinancingContract) BankSignURL() string                  { return c.bankSignURL }
func (c FinancingContract) BankSignedAt() time.Time              { return c.bankSignedAt }
func (c FinancingContract) Version() int                         { return c.version }
func (c FinancingContract) CreatedAt() time.Time                 { return c.createdAt }
func (c FinancingContract) UpdatedAt() time.Time                 { return c.updatedAt }
func (c FinancingContract) DomainEvents() []event.DomainEvent    { return c.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (c FinancingContract) ClearEvents() FinancingContract {
	next := c
	next.domainEvents = nil
	return next
}

// generateContractNo builds a globally unique contract number from the date
// plus a random suffix, e.g. CT20250901-8f14e45f.
func generateContractNo(now time.Time) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("CT%s-%s", now.Format("20060102"), suffix)
}
