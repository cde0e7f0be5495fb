package memory

import (
	"context"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner da atomicidad sobre el almacén en memoria: toma el mutex en
// exclusiva, copia el estado y, si la función falla, lo restaura íntegro.
// Al sostener el mutex durante toda la transacción, los envíos concurrentes
// quedan serializados y ningún lector ve deltas a medio aplicar.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner con el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios atados a la transacción y hace
// commit (dejar el estado) o rollback (restaurar la instantánea).
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.RecordRepository,
	cargoRepo repository.CargoRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()

	recordRepo := &RecordRepo{store: r.store, tx: true}
	cargoRepo := &CargoRepo{store: r.store, tx: true}

	if err := fn(recordRepo, cargoRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
