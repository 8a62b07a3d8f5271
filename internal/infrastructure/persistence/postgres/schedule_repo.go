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

// ScheduleRepo implements port.ScheduleRepository.
type ScheduleRepo struct {
	q pgdb.Querier
}

// NewScheduleRepo creates a repository backed by PostgreSQL.
func NewScheduleRepo(q pgdb.Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

// SaveAll inserts a freshly generated schedule in bulk.
func (r *ScheduleRepo) SaveAll(ctx context.Context, rows []model.RepaymentSchedule) error {
	for _, row := range rows {
		if err := r.Save(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Save persists one installment row (upsert by ID with optimistic locking).
func (r *ScheduleRepo) Save(ctx context.Context, row model.RepaymentSchedule) error {
	query := `
		INSERT INTO repayment_schedules (
			id, financing_id, installment_number, due_date, principal,
			interest, total_amount, penalty, status, paid_at, paid_amount,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			penalty     = EXCLUDED.penalty,
			status      = EXCLUDED.status,
			paid_at     = EXCLUDED.paid_at,
			paid_amount = EXCLUDED.paid_amount,
			version     = repayment_schedules.version + 1,
			updated_at  = EXCLUDED.updated_at
		WHERE repayment_schedules.version = $12
	`
	tag, err := r.q.Exec(ctx, query,
		row.ID(), row.FinancingID(), row.InstallmentNumber(), row.DueDate(),
		row.Principal(), row.Interest(), row.TotalAmount(), row.Penalty(),
		row.Status().String(), nullTime(row.PaidAt()), row.PaidAmount(),
		row.Version(), row.CreatedAt(), row.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save schedule row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}
	return nil
}

// FindByFinancingID returns the full schedule in installment order.
func (r *ScheduleRepo) FindByFinancingID(ctx context.Context, financingID string) ([]model.RepaymentSchedule, error) {
	query := scheduleSelect + ` WHERE financing_id = $1 ORDER BY installment_number ASC`
	return r.scanMany(ctx, query, financingID)
}

// FindDueBefore returns PENDING rows past their due date, oldest first.
func (r *ScheduleRepo) FindDueBefore(ctx context.Context, date time.Time, limit int) ([]model.RepaymentSchedule, error) {
	query := scheduleSelect + ` WHERE status = 'PENDING' AND due_date < $1 ORDER BY due_date ASC LIMIT $2`
	return r.scanMany(ctx, query, date, limit)
}

const scheduleSelect = `
	SELECT id, financing_id, installment_number, due_date, principal,
	       interest, total_amount, penalty, status, paid_at, paid_amount,
	       version, created_at, updated_at
	FROM repayment_schedules`

func (r *ScheduleRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.RepaymentSchedule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query schedule rows: %w", err)
	}
	defer rows.Close()

	var result []model.RepaymentSchedule
	for rows.Next() {
		row, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanSchedule(s scannable) (model.RepaymentSchedule, error) {
	var (
		id, financingID                     string
		installmentNumber                   int
		dueDate                             time.Time
		principal, interest, total, penalty decimal.Decimal
		statusStr                           string
		paidAt                              *time.Time
		paidAmount                          decimal.Decimal
		version                             int
		createdAt, updatedAt                time.Time
	)

	err := s.Scan(
		&id, &financingID, &installmentNumber, &dueDate,
		&principal, &interest, &total, &penalty,
		&statusStr, &paidAt, &paidAmount,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.RepaymentSchedule{}, fmt.Errorf("scan schedule row: %w", err)
	}

	status, err := valueobject.NewScheduleStatus(statusStr)
	if err != nil {
		return model.RepaymentSchedule{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructRepaymentSchedule(
		id, financingID, installmentNumber, dueDate,
		principal, interest, total, penalty,
		status, derefTime(paidAt), paidAmount,
		version, createdAt, updatedAt,
	), nil
}
