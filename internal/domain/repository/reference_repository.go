package repository

import "github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}

// BrandRepository puerto de persistencia para marcas.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	GetByName(name string) (*entity.Brand, error)
	List() ([]*entity.Brand, error)
	Update(brand *entity.Brand) error
	Delete(id string) error
}

// UnitRepository puerto de persistencia para unidades de medida.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	GetByName(name string) (*entity.Unit, error)
	List() ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
	Delete(id string) error
}
