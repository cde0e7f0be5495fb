package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El repo de registros bloquea la fila al leerla, así dos
// envíos concurrentes del mismo registro se serializan en la base.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.RecordRepository,
	cargoRepo repository.CargoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recordRepo := &RecordRepo{q: tx, lockOnRead: true}
	cargoRepo := NewCargoRepository(tx)

	if err := fn(recordRepo, cargoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
