package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// ContractRepo implements port.ContractRepository.
type ContractRepo struct {
	q pgdb.Querier
}

// NewContractRepo creates a repository backed by PostgreSQL.
func NewContractRepo(q pgdb.Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Save persists a contract (upsert by ID with optimistic locking).
func (r *ContractRepo) Save(ctx context.Context, c model.FinancingContract) error {
	query := `
		INSERT INTO financing_contracts (
			id, contract_no, financing_id, farmer_id, amount, interest_rate,
			term_months, status, document_url, farmer_sign_url,
			farmer_signed_at, bank_sign_url, bank_signed_at,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO UPDATE SET
			status           = EXCLUDED.status,
			document_url     = EXCLUDED.document_url,
			farmer_sign_url  = EXCLUDED.farmer_sign_url,
			farmer_signed_at = EXCLUDED.farmer_signed_at,
			bank_sign_url    = EXCLUDED.bank_sign_url,
			bank_signed_at   = EXCLUDED.bank_signed_at,
			version          = financing_contracts.version + 1,
			updated_at       = EXCLUDED.updated_at
		WHERE financing_contracts.version = $14
	`
	tag, err := r.q.Exec(ctx, query,
		c.ID(), c.ContractNo(), c.FinancingID(), c.FarmerID(),
		c.Amount(), c.InterestRate(), c.TermMonths(), c.Status().String(),
		nullString(c.DocumentURL()), nullString(c.FarmerSignURL()),
		nullTime(c.FarmerSignedAt()), nullString(c.BankSignURL()),
		nullTime(c.BankSignedAt()),
		c.Version(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a single contract.
func (r *ContractRepo) FindByID(ctx context.Context, id string) (model.FinancingContract, error) {
	query := contractSelect + ` WHERE id = $1`
	c, err := scanContract(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FinancingContract{}, valueobject.NotFound("contract", id)
	}
	return c, err
}

// FindByFinancingID retrieves the contract of one financing.
func (r *ContractRepo) FindByFinancingID(ctx context.Context, financingID string) (model.FinancingContract, error) {
	query := contractSelect + ` WHERE financing_id = $1`
	c, err := scanContract(r.q.QueryRow(ctx, query, financingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FinancingContract{}, valueobject.NotFound("contract for financing", financingID)
	}
	return c, err
}

const contractSelect = `
	SELECT id, contract_no, financing_id, farmer_id, amount, interest_rate,
	       term_months, status, document_url, farmer_sign_url,
	       farmer_signed_at, bank_sign_url, bank_signed_at,
	       version, created_at, updated_at
	FROM financing_contracts`

func scanContract(s scannable) (model.FinancingContract, error) {
	var (
		id, contractNo, financingID, farmerID string
		amount, interestRate                  decimal.Decimal
		termMonths                            int
		statusStr                             string
		documentURL, farmerSignURL            *string
		farmerSignedAt                        *time.Time
		bankSignURL                           *string
		bankSignedAt                          *time.Time
		version                               int
		createdAt, updatedAt                  time.Time
	)

	err := s.Scan(
		&id, &contractNo, &financingID, &farmerID, &amount, &interestRate,
		&termMonths, &statusStr, &documentURL, &farmerSignURL,
		&farmerSignedAt, &bankSignURL, &bankSignedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.FinancingContract{}, err
	}

	status, err := valueobject.NewContractStatus(statusStr)
	if err != nil {
		return model.FinancingContract{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructFinancingContract(
		id, contractNo, financingID, farmerID,
		amount, interestRate, termMonths, status,
		deref(documentURL), deref(farmerSignURL), derefTime(farmerSignedAt),
		deref(bankSignURL), derefTime(bankSignedAt),
		version, createdAt, updatedAt,
	), nil
}
