package memory

import (
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo implementación en memoria de RecordRepository.
type RecordRepo struct {
	store *Store
	tx    bool
}

// NewRecordRepository construye el adaptador sobre el almacén.
func NewRecordRepository(store *Store) *RecordRepo {
	return &RecordRepo{store: store}
}

func (r *RecordRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create persiste un registro nuevo con su detalle.
func (r *RecordRepo) Create(record *entity.Record) error {
	defer r.lock()()
	if _, ok := r.store.records[record.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.records[record.ID] = cloneRecord(record)
	r.store.recordOrder = append(r.store.recordOrder, record.ID)
	return nil
}

// GetByID devuelve una copia del registro con su detalle, o nil.
func (r *RecordRepo) GetByID(id string) (*entity.Record, error) {
	defer r.lock()()
	rec, ok := r.store.records[id]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

// List devuelve registros del más reciente al más antiguo, filtrando por
// tipo y estado (cadena vacía = sin filtro).
func (r *RecordRepo) List(recordType, status string, limit, offset int) ([]*entity.Record, error) {
	defer r.lock()()
	var out []*entity.Record
	for i := len(r.store.recordOrder) - 1; i >= 0; i-- {
		rec := r.store.records[r.store.recordOrder[i]]
		if recordType != "" && rec.Type != recordType {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return paginate(out, limit, offset), nil
}

// Update reemplaza el registro completo (estado y árbol de detalle).
func (r *RecordRepo) Update(record *entity.Record) error {
	defer r.lock()()
	if _, ok := r.store.records[record.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	r.store.records[record.ID] = cloneRecord(record)
	return nil
}

// Delete elimina un registro.
func (r *RecordRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.records[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.store.records, id)
	r.store.recordOrder = remove(r.store.recordOrder, id)
	return nil
}
