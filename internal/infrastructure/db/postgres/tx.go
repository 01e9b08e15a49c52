package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

const txTimeout = 10 * time.Second

// TxRunner implements ports.LedgerTxRunner over a pgx pool. Each evaluation
// runs against a ledger bound to one read-committed transaction, so the
// classify-then-mutate sequence cannot be interleaved with a competing write
// it never saw.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(ports.SpotLedger) error) error {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return mapTransient(fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSpotLedger(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapTransient(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}
