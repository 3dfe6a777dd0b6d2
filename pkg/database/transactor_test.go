package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakePool struct {
	PgxIface
	begun int
	tx    *fakeTx
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	p.begun++
	p.tx = &fakeTx{}
	return p.tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	pool := &fakePool{}
	tr := NewTransactor(pool, zap.NewNop())

	err := tr.WithTx(context.Background(), func(ctx context.Context) error {
		tx, ok := txFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, pool.tx, tx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, pool.tx.committed)
	assert.False(t, pool.tx.rolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	pool := &fakePool{}
	tr := NewTransactor(pool, zap.NewNop())
	boom := errors.New("boom")

	err := tr.WithTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, pool.tx.rolledBack)
	assert.False(t, pool.tx.committed)
}

func TestWithTxNestedJoinsOuter(t *testing.T) {
	pool := &fakePool{}
	tr := NewTransactor(pool, zap.NewNop())

	err := tr.WithTx(context.Background(), func(ctx context.Context) error {
		return tr.WithTx(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, pool.begun)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	pool := &fakePool{}
	tr := NewTransactor(pool, zap.NewNop())

	assert.Panics(t, func() {
		_ = tr.WithTx(context.Background(), func(context.Context) error {
			panic("boom")
		})
	})
	assert.True(t, pool.tx.rolledBack)
}
