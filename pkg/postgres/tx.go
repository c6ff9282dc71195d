package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jakechorley/court-docket/pkg/db"
)

// maxTxRetries bounds how many times a transaction is retried on lock or
// serialization conflicts before surfacing db.ErrStorage.
const maxTxRetries = 3

// Transact runs fn inside a database transaction. The store view passed to
// fn locks the slot and turn rows it reads (FOR UPDATE), so concurrent
// bookings for the same slot cannot both succeed and turn updates cannot
// interleave. On conflict the transaction is retried a bounded number of
// times; domain errors from fn are returned as-is.
func (d *DB) Transact(ctx context.Context, fn func(db.Store) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = d.transactOnce(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w: transaction failed after %d attempts: %v", db.ErrStorage, maxTxRetries, err)
}

func (d *DB) transactOnce(ctx context.Context, fn func(db.Store) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(store{q: tx, locked: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// retryable reports whether err is a transient conflict worth retrying:
// serialization failure (40001) or deadlock detected (40P01).
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
