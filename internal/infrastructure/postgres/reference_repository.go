package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.BrandRepository = (*BrandRepo)(nil)
var _ repository.UnitRepository = (*UnitRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories WHERE name = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// List lista todas las categorías por fecha de creación.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción de la categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la categoría. Los cargos que la referencian quedan sin
// categoría (FK ON DELETE SET NULL).
func (r *CategoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una nueva marca.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Description, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	return r.scanOne("WHERE id = $1", id, "get brand")
}

// GetByName obtiene una marca por nombre exacto.
func (r *BrandRepo) GetByName(name string) (*entity.Brand, error) {
	return r.scanOne("WHERE name = $1", name, "get brand by name")
}

func (r *BrandRepo) scanOne(where, arg, op string) (*entity.Brand, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM brands ` + where
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// List lista todas las marcas por fecha de creación.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM brands ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción de la marca.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	query := `
		UPDATE brands SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Description, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la marca (FK ON DELETE SET NULL en cargos).
func (r *BrandRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una nueva unidad de medida.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	return r.scanOne("WHERE id = $1", id, "get unit")
}

// GetByName obtiene una unidad por nombre exacto.
func (r *UnitRepo) GetByName(name string) (*entity.Unit, error) {
	return r.scanOne("WHERE name = $1", name, "get unit by name")
}

func (r *UnitRepo) scanOne(where, arg, op string) (*entity.Unit, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM units ` + where
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// List lista todas las unidades por fecha de creación.
func (r *UnitRepo) List() ([]*entity.Unit, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM units ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza el nombre de la unidad.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	query := `
		UPDATE units SET name = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, unit.ID, unit.Name, unit.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la unidad (FK ON DELETE SET NULL en cargos).
func (r *UnitRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
