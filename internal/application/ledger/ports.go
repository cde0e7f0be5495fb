package ledger

import (
	"context"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del backend de
// persistencia, pasando repositorios atados a esa transacción. Es la pieza
// que da atomicidad al envío: o todas las líneas del registro aplican su
// delta, o ninguna queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.RecordRepository,
		cargoRepo repository.CargoRepository,
	) error) error
}

// RecordPDFGenerator genera el comprobante imprimible de un registro de
// movimiento.
type RecordPDFGenerator interface {
	GenerateRecordPDF(ctx context.Context, record *entity.Record) ([]byte, error)
}
