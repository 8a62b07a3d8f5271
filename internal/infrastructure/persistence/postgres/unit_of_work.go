package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/pkg/events"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// UnitOfWork runs use-case functions inside a database transaction. Domain
// events recorded during the function are converted to outbox entries and
// stored before commit, so state change and event emission are atomic.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a UnitOfWork over a connection pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Execute runs fn in a transaction with transaction-scoped repositories.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	return pgdb.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		repos := newRepoSet(tx)
		if err := fn(ctx, repos); err != nil {
			return err
		}

		collected := repos.Events().Drain()
		if len(collected) == 0 {
			return nil
		}
		entries := make([]events.OutboxEntry, 0, len(collected))
		for _, evt := range collected {
			entries = append(entries, events.NewOutboxEntry(evt))
		}
		if err := NewOutboxRepo(tx).Store(ctx, entries); err != nil {
			return fmt.Errorf("store domain events: %w", err)
		}
		return nil
	})
}
