package memory

import (
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct{ store *Store }

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(store *Store) *CategoryRepo { return &CategoryRepo{store: store} }

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cc := *c
	r.store.categories[c.ID] = &cc
	r.store.catOrder = append(r.store.catOrder, c.ID)
	return nil
}

// GetByID devuelve la categoría o nil.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

// GetByName busca por nombre exacto.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range r.store.catOrder {
		if c := r.store.categories[id]; c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

// List devuelve las categorías en orden de inserción.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.store.catOrder))
	for _, id := range r.store.catOrder {
		cc := *r.store.categories[id]
		out = append(out, &cc)
	}
	return out, nil
}

// Update persiste los campos de una categoría.
func (r *CategoryRepo) Update(c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cc := *c
	r.store.categories[c.ID] = &cc
	return nil
}

// Delete elimina una categoría.
func (r *CategoryRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.categories, id)
	r.store.catOrder = remove(r.store.catOrder, id)
	return nil
}

// BrandRepo implementación en memoria de BrandRepository.
type BrandRepo struct{ store *Store }

// NewBrandRepository construye el adaptador.
func NewBrandRepository(store *Store) *BrandRepo { return &BrandRepo{store: store} }

// Create persiste una marca nueva.
func (r *BrandRepo) Create(b *entity.Brand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.brands[b.ID]; ok {
		return domain.ErrDuplicate
	}
	bc := *b
	r.store.brands[b.ID] = &bc
	r.store.brandOrder = append(r.store.brandOrder, b.ID)
	return nil
}

// GetByID devuelve la marca o nil.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.brands[id]
	if !ok {
		return nil, nil
	}
	bc := *b
	return &bc, nil
}

// GetByName busca por nombre exacto.
func (r *BrandRepo) GetByName(name string) (*entity.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range r.store.brandOrder {
		if b := r.store.brands[id]; b.Name == name {
			bc := *b
			return &bc, nil
		}
	}
	return nil, nil
}

// List devuelve las marcas en orden de inserción.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Brand, 0, len(r.store.brandOrder))
	for _, id := range r.store.brandOrder {
		bc := *r.store.brands[id]
		out = append(out, &bc)
	}
	return out, nil
}

// Update persiste los campos de una marca.
func (r *BrandRepo) Update(b *entity.Brand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.brands[b.ID]; !ok {
		return domain.ErrNotFound
	}
	bc := *b
	r.store.brands[b.ID] = &bc
	return nil
}

// Delete elimina una marca.
func (r *BrandRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.brands[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.brands, id)
	r.store.brandOrder = remove(r.store.brandOrder, id)
	return nil
}

// UnitRepo implementación en memoria de UnitRepository.
type UnitRepo struct{ store *Store }

// NewUnitRepository construye el adaptador.
func NewUnitRepository(store *Store) *UnitRepo { return &UnitRepo{store: store} }

// Create persiste una unidad nueva.
func (r *UnitRepo) Create(u *entity.Unit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.units[u.ID]; ok {
		return domain.ErrDuplicate
	}
	uc := *u
	r.store.units[u.ID] = &uc
	r.store.unitOrder = append(r.store.unitOrder, u.ID)
	return nil
}

// GetByID devuelve la unidad o nil.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.units[id]
	if !ok {
		return nil, nil
	}
	uc := *u
	return &uc, nil
}

// GetByName busca por nombre exacto.
func (r *UnitRepo) GetByName(name string) (*entity.Unit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range r.store.unitOrder {
		if u := r.store.units[id]; u.Name == name {
			uc := *u
			return &uc, nil
		}
	}
	return nil, nil
}

// List devuelve las unidades en orden de inserción.
func (r *UnitRepo) List() ([]*entity.Unit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Unit, 0, len(r.store.unitOrder))
	for _, id := range r.store.unitOrder {
		uc := *r.store.units[id]
		out = append(out, &uc)
	}
	return out, nil
}

// Update persiste los campos de una unidad.
func (r *UnitRepo) Update(u *entity.Unit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	uc := *u
	r.store.units[u.ID] = &uc
	return nil
}

// Delete elimina una unidad.
func (r *UnitRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.units[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.units, id)
	r.store.unitOrder = remove(r.store.unitOrder, id)
	return nil
}
