package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn in a single transaction; repositories called with the
// ctx passed to fn take part in it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type transactor struct {
	db  PgxIface
	log *zap.Logger
}

func NewTransactor(db PgxIface, log *zap.Logger) Transactor {
	return &transactor{db: db, log: log}
}

func (t *transactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) (txErr error) {
	// nested calls join the outer transaction
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if txErr != nil {
			if err := tx.Rollback(ctx); err != nil {
				t.log.Error("rollback", zap.Error(err))
			}
			return
		}
		if err := tx.Commit(ctx); err != nil {
			t.log.Error("commit", zap.Error(err))
			txErr = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(txCtx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}
