package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// Transactor runs fn inside one database transaction. The transaction is committed
// when fn returns nil and rolled back on error or panic.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type postgresTransactor struct {
	db *sql.DB
}

func NewPostgresTransactor(db *sql.DB) Transactor {
	return &postgresTransactor{db: db}
}

func (t *postgresTransactor) WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}
