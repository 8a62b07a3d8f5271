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

// ApplicationRepo implements port.ApplicationRepository over a pool or a
// transaction.
type ApplicationRepo struct {
	q pgdb.Querier
}

// NewApplicationRepo creates a repository backed by PostgreSQL.
func NewApplicationRepo(q pgdb.Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

// Save persists an application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.FinancingApplication) error {
	query := `
		INSERT INTO financing_applications (
			id, farmer_id, product_id, group_id, amount, term_months, purpose,
			status, interest_rate, credit_score, reviewer_id, reviewed_at,
			review_comment, contract_id, signed_at, disbursed_at,
			disbursed_amount, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			status           = EXCLUDED.status,
			interest_rate    = EXCLUDED.interest_rate,
			credit_score     = EXCLUDED.credit_score,
			reviewer_id      = EXCLUDED.reviewer_id,
			reviewed_at      = EXCLUDED.reviewed_at,
			review_comment   = EXCLUDED.review_comment,
			contract_id      = EXCLUDED.contract_id,
			signed_at        = EXCLUDED.signed_at,
			disbursed_at     = EXCLUDED.disbursed_at,
			disbursed_amount = EXCLUDED.disbursed_amount,
			version          = financing_applications.version + 1,
			updated_at       = EXCLUDED.updated_at
		WHERE financing_applications.version = $18
	`
	tag, err := r.q.Exec(ctx, query,
		app.ID(), app.FarmerID(), nullString(app.ProductID()), nullString(app.GroupID()),
		app.Amount(), app.TermMonths(), app.Purpose(),
		app.Status().String(), app.InterestRate(), app.CreditScore(),
		nullString(app.ReviewerID()), nullTime(app.ReviewedAt()),
		app.ReviewComment(), nullString(app.ContractID()),
		nullTime(app.SignedAt()), nullTime(app.DisbursedAt()),
		app.DisbursedAmount(), app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save financing application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.FinancingApplication, error) {
	query := applicationSelect + ` WHERE id = $1`
	app, err := scanApplication(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FinancingApplication{}, valueobject.NotFound("financing application", id)
	}
	return app, err
}

// FindByFarmerID retrieves all applications owned by a farmer, newest first.
func (r *ApplicationRepo) FindByFarmerID(ctx context.Context, farmerID string) ([]model.FinancingApplication, error) {
	query := applicationSelect + ` WHERE farmer_id = $1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, farmerID)
}

// FindByStatus retrieves applications in a given status, oldest first.
func (r *ApplicationRepo) FindByStatus(ctx context.Context, status string, limit int) ([]model.FinancingApplication, error) {
	query := applicationSelect + ` WHERE status = $1 ORDER BY created_at ASC LIMIT $2`
	return r.scanMany(ctx, query, status, limit)
}

const applicationSelect = `
	SELECT id, farmer_id, product_id, group_id, amount, term_months, purpose,
	       status, interest_rate, credit_score, reviewer_id, reviewed_at,
	       review_comment, contract_id, signed_at, disbursed_at,
	       disbursed_amount, version, created_at, updated_at
	FROM financing_applications`

func (r *ApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.FinancingApplication, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query financing applications: %w", err)
	}
	defer rows.Close()

	var result []model.FinancingApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.FinancingApplication, error) {
	var (
		id, farmerID         string
		productID, groupID   *string
		amount               decimal.Decimal
		termMonths           int
		purpose, statusStr   string
		interestRate         decimal.Decimal
		creditScore          int
		reviewerID           *string
		reviewedAt           *time.Time
		reviewComment        string
		contractID           *string
		signedAt             *time.Time
		disbursedAt          *time.Time
		disbursedAmount      decimal.Decimal
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &farmerID, &productID, &groupID, &amount, &termMonths, &purpose,
		&statusStr, &interestRate, &creditScore, &reviewerID, &reviewedAt,
		&reviewComment, &contractID, &signedAt, &disbursedAt,
		&disbursedAmount, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.FinancingApplication{}, err
	}

	status, err := valueobject.NewFinancingStatus(statusStr)
	if err != nil {
		return model.FinancingApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructFinancingApplication(
		id, farmerID, deref(productID), deref(groupID),
		amount, termMonths, purpose, status,
		interestRate, creditScore,
		deref(reviewerID), derefTime(reviewedAt), reviewComment,
		deref(contractID), derefTime(signedAt), derefTime(disbursedAt),
		disbursedAmount, version, createdAt, updatedAt,
	), nil
}
