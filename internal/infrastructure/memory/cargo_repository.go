package memory

import (
	"strings"
	"time"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ repository.CargoRepository = (*CargoRepo)(nil)

// CargoRepo implementación en memoria de CargoRepository. Con tx=true los
// métodos no toman el mutex: el TxRunner ya lo posee.
type CargoRepo struct {
	store *Store
	tx    bool
}

// NewCargoRepository construye el adaptador sobre el almacén.
func NewCargoRepository(store *Store) *CargoRepo {
	return &CargoRepo{store: store}
}

func (r *CargoRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create persiste un cargo nuevo con sus modelos.
func (r *CargoRepo) Create(cargo *entity.Cargo) error {
	defer r.lock()()
	if _, ok := r.store.cargos[cargo.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.cargos[cargo.ID] = cloneCargo(cargo)
	r.store.cargoOrder = append(r.store.cargoOrder, cargo.ID)
	return nil
}

// GetByID devuelve una copia del cargo con sus modelos, o nil.
func (r *CargoRepo) GetByID(id string) (*entity.Cargo, error) {
	defer r.lock()()
	c, ok := r.store.cargos[id]
	if !ok {
		return nil, nil
	}
	return cloneCargo(c), nil
}

// GetByName busca por nombre exacto.
func (r *CargoRepo) GetByName(name string) (*entity.Cargo, error) {
	defer r.lock()()
	for _, id := range r.store.cargoOrder {
		if c := r.store.cargos[id]; c.Name == name {
			return cloneCargo(c), nil
		}
	}
	return nil, nil
}

// List devuelve los cargos en orden de inserción.
func (r *CargoRepo) List(limit, offset int) ([]*entity.Cargo, error) {
	defer r.lock()()
	out := make([]*entity.Cargo, 0, len(r.store.cargoOrder))
	for _, id := range r.store.cargoOrder {
		out = append(out, cloneCargo(r.store.cargos[id]))
	}
	return paginate(out, limit, offset), nil
}

// SearchByName filtra por subcadena del nombre, sin distinguir mayúsculas.
func (r *CargoRepo) SearchByName(q string, limit, offset int) ([]*entity.Cargo, error) {
	defer r.lock()()
	q = strings.ToLower(q)
	var out []*entity.Cargo
	for _, id := range r.store.cargoOrder {
		c := r.store.cargos[id]
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, cloneCargo(c))
		}
	}
	return paginate(out, limit, offset), nil
}

// Update persiste los campos del cargo sin tocar sus modelos.
func (r *CargoRepo) Update(cargo *entity.Cargo) error {
	defer r.lock()()
	existing, ok := r.store.cargos[cargo.ID]
	if !ok {
		return domain.ErrCargoNotFound
	}
	existing.Name = cargo.Name
	existing.CategoryID = cargo.CategoryID
	existing.BrandID = cargo.BrandID
	existing.UnitID = cargo.UnitID
	existing.Price = cargo.Price
	existing.Description = cargo.Description
	existing.UpdatedAt = cargo.UpdatedAt
	return nil
}

// Delete elimina el cargo y en cascada sus modelos.
func (r *CargoRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.cargos[id]; !ok {
		return domain.ErrCargoNotFound
	}
	delete(r.store.cargos, id)
	r.store.cargoOrder = remove(r.store.cargoOrder, id)
	return nil
}

// CreateModel agrega una variante al final de la lista de su cargo.
func (r *CargoRepo) CreateModel(model *entity.Model) error {
	defer r.lock()()
	cargo, ok := r.store.cargos[model.CargoID]
	if !ok {
		return domain.ErrCargoNotFound
	}
	mc := *model
	cargo.Models = append(cargo.Models, &mc)
	return nil
}

// GetModel devuelve una copia de la variante, o nil.
func (r *CargoRepo) GetModel(cargoID, modelID string) (*entity.Model, error) {
	defer r.lock()()
	cargo, ok := r.store.cargos[cargoID]
	if !ok {
		return nil, nil
	}
	m := cargo.FindModel(modelID)
	if m == nil {
		return nil, nil
	}
	mc := *m
	return &mc, nil
}

// UpdateModel persiste la especificación/nombre de una variante.
func (r *CargoRepo) UpdateModel(model *entity.Model) error {
	defer r.lock()()
	cargo, ok := r.store.cargos[model.CargoID]
	if !ok {
		return domain.ErrCargoNotFound
	}
	existing := cargo.FindModel(model.ID)
	if existing == nil {
		return domain.ErrModelNotFound
	}
	existing.Name = model.Name
	existing.Value = model.Value
	existing.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteModel elimina una variante individual.
func (r *CargoRepo) DeleteModel(cargoID, modelID string) error {
	defer r.lock()()
	cargo, ok := r.store.cargos[cargoID]
	if !ok {
		return domain.ErrCargoNotFound
	}
	for i, m := range cargo.Models {
		if m.ID == modelID {
			cargo.Models = append(cargo.Models[:i], cargo.Models[i+1:]...)
			return nil
		}
	}
	return domain.ErrModelNotFound
}

// AdjustModelQuantity suma delta a la existencia bajo el mutex del almacén:
// lectura y escritura son una sola sección crítica, así que dos ajustes
// concurrentes sobre el mismo modelo nunca pierden una actualización.
func (r *CargoRepo) AdjustModelQuantity(cargoID, modelID string, delta int64) (int64, error) {
	defer r.lock()()
	cargo, ok := r.store.cargos[cargoID]
	if !ok {
		return 0, domain.ErrCargoNotFound
	}
	model := cargo.FindModel(modelID)
	if model == nil {
		return 0, domain.ErrModelNotFound
	}
	now := time.Now()
	model.Quantity += delta
	model.UpdatedAt = now
	cargo.UpdatedAt = now
	return model.Quantity, nil
}
