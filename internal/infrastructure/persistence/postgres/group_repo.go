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

// GroupRepo implements port.GroupRepository. Members are persisted with the
// group as one aggregate.
type GroupRepo struct {
	q pgdb.Querier
}

// NewGroupRepo creates a repository backed by PostgreSQL.
func NewGroupRepo(q pgdb.Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// Save persists the group and its members. The optimistic check sits on the
// group row; member rows ride along in the same transaction.
func (r *GroupRepo) Save(ctx context.Context, g model.JointLoanGroup) error {
	groupQuery := `
		INSERT INTO joint_loan_groups (
			id, creator_id, target_amount, min_amount, term_months, status,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			version    = joint_loan_groups.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE joint_loan_groups.version = $7
	`
	tag, err := r.q.Exec(ctx, groupQuery,
		g.ID(), g.CreatorID(), g.TargetAmount(), g.MinAmount(), g.TermMonths(),
		g.Status().String(), g.Version(), g.CreatedAt(), g.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save joint loan group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}

	memberQuery := `
		INSERT INTO joint_loan_members (
			id, group_id, farmer_id, amount, purpose, status, financing_id,
			joined_at, confirmed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			status       = EXCLUDED.status,
			financing_id = EXCLUDED.financing_id,
			confirmed_at = EXCLUDED.confirmed_at
	`
	for _, m := range g.Members() {
		_, err := r.q.Exec(ctx, memberQuery,
			m.ID, m.GroupID, m.FarmerID, m.Amount, m.Purpose,
			m.Status.String(), nullString(m.FinancingID),
			m.JoinedAt, nullTime(m.ConfirmedAt),
		)
		if err != nil {
			return fmt.Errorf("save group member: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a group with its members.
func (r *GroupRepo) FindByID(ctx context.Context, id string) (model.JointLoanGroup, error) {
	query := groupSelect + ` WHERE id = $1`
	head, err := scanGroupHead(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.JointLoanGroup{}, valueobject.NotFound("joint loan group", id)
	}
	if err != nil {
		return model.JointLoanGroup{}, err
	}
	return r.loadMembers(ctx, head)
}

// FindMatching returns MATCHING groups whose remaining capacity can absorb
// amount, excluding groups the farmer already belongs to, FIFO by creation
// time.
func (r *GroupRepo) FindMatching(
	ctx context.Context,
	amount decimal.Decimal,
	excludeFarmerID string,
	limit int,
) ([]model.JointLoanGroup, error) {
	query := groupSelect + `
		WHERE status = 'MATCHING'
		  AND target_amount - COALESCE((
			SELECT SUM(m.amount) FROM joint_loan_members m
			WHERE m.group_id = joint_loan_groups.id AND m.status <> 'CANCELLED'
		  ), 0) >= $1
		  AND NOT EXISTS (
			SELECT 1 FROM joint_loan_members m
			WHERE m.group_id = joint_loan_groups.id
			  AND m.farmer_id = $2 AND m.status <> 'CANCELLED'
		  )
		ORDER BY created_at ASC
		LIMIT $3
	`
	rows, err := r.q.Query(ctx, query, amount, excludeFarmerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query matching groups: %w", err)
	}

	// Heads first, members second. Inside a transaction the Querier holds a
	// single connection, which cannot run the member query while this cursor
	// is still open.
	var heads []groupHead
	for rows.Next() {
		h, err := scanGroupHead(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		heads = append(heads, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matching groups: %w", err)
	}

	result := make([]model.JointLoanGroup, 0, len(heads))
	for _, h := range heads {
		g, err := r.loadMembers(ctx, h)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, nil
}

const groupSelect = `
	SELECT id, creator_id, target_amount, min_amount, term_months, status,
	       version, created_at, updated_at
	FROM joint_loan_groups`

// groupHead is a scanned joint_loan_groups row before its members are loaded.
type groupHead struct {
	id, creatorID           string
	targetAmount, minAmount decimal.Decimal
	termMonths              int
	status                  valueobject.GroupStatus
	version                 int
	createdAt, updatedAt    time.Time
}

func scanGroupHead(s scannable) (groupHead, error) {
	var (
		h         groupHead
		statusStr string
	)
	err := s.Scan(
		&h.id, &h.creatorID, &h.targetAmount, &h.minAmount, &h.termMonths,
		&statusStr, &h.version, &h.createdAt, &h.updatedAt,
	)
	if err != nil {
		return groupHead{}, err
	}

	status, err := valueobject.NewGroupStatus(statusStr)
	if err != nil {
		return groupHead{}, fmt.Errorf("parse status: %w", err)
	}
	h.status = status
	return h, nil
}

// loadMembers attaches member rows to a scanned head. It issues its own
// query, so any open cursor must be drained before calling it.
func (r *GroupRepo) loadMembers(ctx context.Context, h groupHead) (model.JointLoanGroup, error) {
	members, err := r.findMembers(ctx, h.id)
	if err != nil {
		return model.JointLoanGroup{}, err
	}
	return model.ReconstructJointLoanGroup(
		h.id, h.creatorID, h.targetAmount, h.minAmount, h.termMonths, h.status,
		members, h.version, h.createdAt, h.updatedAt,
	), nil
}

func (r *GroupRepo) findMembers(ctx context.Context, groupID string) ([]model.JointLoanMember, error) {
	query := `
		SELECT id, group_id, farmer_id, amount, purpose, status, financing_id,
		       joined_at, confirmed_at
		FROM joint_loan_members
		WHERE group_id = $1
		ORDER BY joined_at ASC
	`
	rows, err := r.q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	var result []model.JointLoanMember
	for rows.Next() {
		var (
			m           model.JointLoanMember
			statusStr   string
			financingID *string
			confirmedAt *time.Time
		)
		err := rows.Scan(
			&m.ID, &m.GroupID, &m.FarmerID, &m.Amount, &m.Purpose,
			&statusStr, &financingID, &m.JoinedAt, &confirmedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}

		status, err := valueobject.NewMemberStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse member status: %w", err)
		}
		m.Status = status
		m.FinancingID = deref(financingID)
		m.ConfirmedAt = derefTime(confirmedAt)
		result = append(result, m)
	}
	return result, rows.Err()
}
