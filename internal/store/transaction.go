package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// TxFn is the unit of work executed by RunInTransaction. Returning an error
// rolls the transaction back; returning nil commits it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db. A panic inside fn
// rolls back and is re-raised. A failed rollback is reported alongside the
// error that caused it, and both remain matchable with errors.Is.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic failed", "error", rbErr, "panic", p)
		} else {
			log.Error("transaction rolled back after panic", "panic", p)
		}
		// ALLOW-PANIC: re-raise the caller's panic once the transaction is released
		panic(p)
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				"rollback_error", rbErr,
				"original_error", fnErr)
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, fnErr)
		}
		log.Debug("transaction rolled back", "error", fnErr)
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
