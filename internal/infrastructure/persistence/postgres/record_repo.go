package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// RecordRepo implements port.RecordRepository. The ledger is append-only;
// there is no update path.
type RecordRepo struct {
	q pgdb.Querier
}

// NewRecordRepo creates a repository backed by PostgreSQL.
func NewRecordRepo(q pgdb.Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// Append inserts ledger entries.
func (r *RecordRepo) Append(ctx context.Context, records ...model.RepaymentRecord) error {
	query := `
		INSERT INTO repayment_records (
			id, financing_id, schedule_id, repayment_type, amount,
			principal, interest, penalty, payment_method, transaction_id, paid_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	for _, rec := range records {
		_, err := r.q.Exec(ctx, query,
			rec.ID, rec.FinancingID, nullString(rec.ScheduleID),
			rec.RepaymentType.String(), rec.Amount,
			rec.Principal, rec.Interest, rec.Penalty,
			rec.PaymentMethod, nullString(rec.TransactionID), rec.PaidAt,
		)
		if err != nil {
			return fmt.Errorf("append repayment record: %w", err)
		}
	}
	return nil
}

// FindByFinancingID returns the ledger of one financing, oldest first.
func (r *RecordRepo) FindByFinancingID(ctx context.Context, financingID string) ([]model.RepaymentRecord, error) {
	query := `
		SELECT id, financing_id, schedule_id, repayment_type, amount,
		       principal, interest, penalty, payment_method, transaction_id, paid_at
		FROM repayment_records
		WHERE financing_id = $1
		ORDER BY paid_at ASC
	`
	rows, err := r.q.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("query repayment records: %w", err)
	}
	defer rows.Close()

	var result []model.RepaymentRecord
	for rows.Next() {
		var (
			rec                                  model.RepaymentRecord
			scheduleID, transactionID            *string
			typeStr                              string
			amount, principal, interest, penalty decimal.Decimal
			paidAt                               time.Time
		)
		err := rows.Scan(
			&rec.ID, &rec.FinancingID, &scheduleID, &typeStr, &amount,
			&principal, &interest, &penalty, &rec.PaymentMethod, &transactionID, &paidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan repayment record: %w", err)
		}

		repaymentType, err := valueobject.NewRepaymentType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("parse repayment type: %w", err)
		}

		rec.ScheduleID = deref(scheduleID)
		rec.RepaymentType = repaymentType
		rec.Amount = amount
		rec.Principal = principal
		rec.Interest = interest
		rec.Penalty = penalty
		rec.TransactionID = deref(transactionID)
		rec.PaidAt = paidAt
		result = append(result, rec)
	}
	return result, rows.Err()
}
