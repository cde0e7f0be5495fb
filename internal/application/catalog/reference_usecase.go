package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// ReferenceUseCase CRUD de datos de referencia del catálogo: categorías,
// marcas y unidades. Única invariante: nombre no vacío y único por tipo.
type ReferenceUseCase struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	units      repository.UnitRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	units repository.UnitRepository,
) *ReferenceUseCase {
	return &ReferenceUseCase{categories: categories, brands: brands, units: units}
}

// CreateCategory crea una categoría con nombre único.
func (uc *ReferenceUseCase) CreateCategory(in dto.ReferenceRequest) (*dto.ReferenceResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(cat); err != nil {
		return nil, err
	}
	return &dto.ReferenceResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt}, nil
}

// ListCategories lista todas las categorías.
func (uc *ReferenceUseCase) ListCategories() ([]dto.ReferenceResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ReferenceResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
	}
	return out, nil
}

// UpdateCategory renombra o cambia la descripción de una categoría.
func (uc *ReferenceUseCase) UpdateCategory(id string, in dto.ReferenceRequest) (*dto.ReferenceResponse, error) {
	cat, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != cat.Name {
		other, err := uc.categories.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicateName
		}
		cat.Name = in.Name
	}
	cat.Description = in.Description
	cat.UpdatedAt = time.Now()
	if err := uc.categories.Update(cat); err != nil {
		return nil, err
	}
	return &dto.ReferenceResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt}, nil
}

// DeleteCategory elimina una categoría. Los cargos que la referenciaban
// quedan sin categoría (la vista agrupada los muestra bajo "Sin categoría").
func (uc *ReferenceUseCase) DeleteCategory(id string) error {
	return uc.categories.Delete(id)
}

// CreateBrand crea una marca con nombre único.
func (uc *ReferenceUseCase) CreateBrand(in dto.ReferenceRequest) (*dto.ReferenceResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.brands.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	b := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.brands.Create(b); err != nil {
		return nil, err
	}
	return &dto.ReferenceResponse{ID: b.ID, Name: b.Name, Description: b.Description, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}, nil
}

// ListBrands lista todas las marcas.
func (uc *ReferenceUseCase) ListBrands() ([]dto.ReferenceResponse, error) {
	list, err := uc.brands.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ReferenceResponse{ID: b.ID, Name: b.Name, Description: b.Description, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt})
	}
	return out, nil
}

// DeleteBrand elimina una marca.
func (uc *ReferenceUseCase) DeleteBrand(id string) error {
	return uc.brands.Delete(id)
}

// CreateUnit crea una unidad de medida con nombre único.
func (uc *ReferenceUseCase) CreateUnit(in dto.ReferenceRequest) (*dto.ReferenceResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.units.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	u := &entity.Unit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.units.Create(u); err != nil {
		return nil, err
	}
	return &dto.ReferenceResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
}

// ListUnits lista todas las unidades.
func (uc *ReferenceUseCase) ListUnits() ([]dto.ReferenceResponse, error) {
	list, err := uc.units.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ReferenceResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt})
	}
	return out, nil
}

// DeleteUnit elimina una unidad.
func (uc *ReferenceUseCase) DeleteUnit(id string) error {
	return uc.units.Delete(id)
}
