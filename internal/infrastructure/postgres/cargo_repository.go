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

var _ repository.CargoRepository = (*CargoRepo)(nil)

// CargoRepo implementación del puerto CargoRepository sobre PostgreSQL
// (usable con pool o tx). Los modelos se ordenan por seq (orden de alta).
type CargoRepo struct {
	q Querier
}

// NewCargoRepository construye el adaptador de persistencia para cargos.
// Pasar pool o tx (Querier).
func NewCargoRepository(q Querier) *CargoRepo {
	return &CargoRepo{q: q}
}

// Create persiste un cargo nuevo con sus modelos iniciales.
func (r *CargoRepo) Create(cargo *entity.Cargo) error {
	query := `
		INSERT INTO cargos (id, name, category_id, brand_id, unit_id, price, description, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		cargo.ID, cargo.Name, cargo.CategoryID, cargo.BrandID, cargo.UnitID,
		cargo.Price, cargo.Description, cargo.CreatedAt, cargo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert cargo: %w", err)
	}
	for _, m := range cargo.Models {
		if err := r.CreateModel(m); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un cargo con sus modelos cargados, o nil si no existe.
func (r *CargoRepo) GetByID(id string) (*entity.Cargo, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByName obtiene un cargo por nombre exacto, o nil.
func (r *CargoRepo) GetByName(name string) (*entity.Cargo, error) {
	return r.getOne(`WHERE name = $1`, name)
}

func (r *CargoRepo) getOne(where string, arg any) (*entity.Cargo, error) {
	query := `
		SELECT id, name, COALESCE(category_id, ''), COALESCE(brand_id, ''), COALESCE(unit_id, ''),
		       price, description, created_at, updated_at
		FROM cargos ` + where
	var c entity.Cargo
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.CategoryID, &c.BrandID, &c.UnitID,
		&c.Price, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cargo: %w", err)
	}
	if err := r.loadModels(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CargoRepo) loadModels(c *entity.Cargo) error {
	query := `
		SELECT id, cargo_id, name, value, quantity, created_at, updated_at
		FROM models WHERE cargo_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, c.ID)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Model
		if err := rows.Scan(&m.ID, &m.CargoID, &m.Name, &m.Value, &m.Quantity, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return fmt.Errorf("scan model: %w", err)
		}
		c.Models = append(c.Models, &m)
	}
	return rows.Err()
}

// List lista cargos en orden de alta con paginación.
func (r *CargoRepo) List(limit, offset int) ([]*entity.Cargo, error) {
	return r.list(`
		SELECT id, name, COALESCE(category_id, ''), COALESCE(brand_id, ''), COALESCE(unit_id, ''),
		       price, description, created_at, updated_at
		FROM cargos ORDER BY created_at, id LIMIT $1 OFFSET $2`, limit, offset)
}

// SearchByName filtra por subcadena del nombre (case-insensitive).
func (r *CargoRepo) SearchByName(q string, limit, offset int) ([]*entity.Cargo, error) {
	return r.list(`
		SELECT id, name, COALESCE(category_id, ''), COALESCE(brand_id, ''), COALESCE(unit_id, ''),
		       price, description, created_at, updated_at
		FROM cargos WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at, id LIMIT $2 OFFSET $3`, q, limit, offset)
}

func (r *CargoRepo) list(query string, args ...any) ([]*entity.Cargo, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cargo
	for rows.Next() {
		var c entity.Cargo
		if err := rows.Scan(&c.ID, &c.Name, &c.CategoryID, &c.BrandID, &c.UnitID,
			&c.Price, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		if err := r.loadModels(c); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Update actualiza los campos de un cargo; los modelos se manejan aparte.
func (r *CargoRepo) Update(cargo *entity.Cargo) error {
	query := `
		UPDATE cargos SET name = $2, category_id = NULLIF($3, ''), brand_id = NULLIF($4, ''),
		       unit_id = NULLIF($5, ''), price = $6, description = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cargo.ID, cargo.Name, cargo.CategoryID, cargo.BrandID, cargo.UnitID,
		cargo.Price, cargo.Description, cargo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update cargo: %w", err)
	}
	return nil
}

// Delete elimina un cargo; los modelos caen por ON DELETE CASCADE.
func (r *CargoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cargo: %w", err)
	}
	return nil
}

// CreateModel persiste una variante nueva de un cargo.
func (r *CargoRepo) CreateModel(model *entity.Model) error {
	query := `
		INSERT INTO models (id, cargo_id, name, value, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		model.ID, model.CargoID, model.Name, model.Value, model.Quantity,
		model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSpec
		}
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}

// GetModel obtiene una variante, o nil si no existe.
func (r *CargoRepo) GetModel(cargoID, modelID string) (*entity.Model, error) {
	query := `
		SELECT id, cargo_id, name, value, quantity, created_at, updated_at
		FROM models WHERE cargo_id = $1 AND id = $2`
	var m entity.Model
	err := r.q.QueryRow(context.Background(), query, cargoID, modelID).Scan(
		&m.ID, &m.CargoID, &m.Name, &m.Value, &m.Quantity, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return &m, nil
}

// UpdateModel persiste la especificación y el nombre de una variante.
func (r *CargoRepo) UpdateModel(model *entity.Model) error {
	query := `
		UPDATE models SET name = $3, value = $4, updated_at = $5
		WHERE cargo_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		model.CargoID, model.ID, model.Name, model.Value, model.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSpec
		}
		return fmt.Errorf("update model: %w", err)
	}
	return nil
}

// DeleteModel elimina una variante individual.
func (r *CargoRepo) DeleteModel(cargoID, modelID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM models WHERE cargo_id = $1 AND id = $2`, cargoID, modelID)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

// AdjustModelQuantity suma delta a la existencia como un solo incremento
// atómico en la fila (UPDATE ... RETURNING): dos ajustes concurrentes sobre
// el mismo modelo se serializan en el lock de fila de PostgreSQL. Actualiza
// también updated_at del cargo padre.
func (r *CargoRepo) AdjustModelQuantity(cargoID, modelID string, delta int64) (int64, error) {
	var newQty int64
	err := r.q.QueryRow(context.Background(),
		`UPDATE models SET quantity = quantity + $3, updated_at = now()
		 WHERE cargo_id = $1 AND id = $2 RETURNING quantity`,
		cargoID, modelID, delta,
	).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrModelNotFound
		}
		return 0, fmt.Errorf("adjust model quantity: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`UPDATE cargos SET updated_at = now() WHERE id = $1`, cargoID); err != nil {
		return 0, fmt.Errorf("touch cargo: %w", err)
	}
	return newQty, nil
}
