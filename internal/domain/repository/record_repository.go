package repository

import "github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"

// RecordRepository define el puerto de persistencia para Record y su árbol
// de detalle. El árbol se persiste completo: Update reemplaza el detalle.
type RecordRepository interface {
	Create(record *entity.Record) error
	// GetByID devuelve el registro con su detalle cargado, o nil si no existe.
	GetByID(id string) (*entity.Record, error)
	// List filtra por tipo y estado; cadena vacía = sin filtro.
	List(recordType, status string, limit, offset int) ([]*entity.Record, error)
	Update(record *entity.Record) error
	Delete(id string) error
}
