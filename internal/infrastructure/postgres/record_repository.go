package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo implementación de RecordRepository sobre PostgreSQL. El árbol
// de detalle se persiste como JSONB: siempre se guarda y se lee completo, y
// JSON preserva el orden de las líneas. Con lockOnRead (repos atados a una
// tx del TxRunner) GetByID bloquea la fila (SELECT FOR UPDATE): dos envíos
// concurrentes del mismo registro se serializan y el segundo ve el estado
// submitted.
type RecordRepo struct {
	q          Querier
	lockOnRead bool
}

// NewRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// Create persiste un registro nuevo.
func (r *RecordRepo) Create(record *entity.Record) error {
	details, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	query := `
		INSERT INTO records (id, type, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(context.Background(), query,
		record.ID, record.Type, record.Status, details, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro con su detalle, o nil si no existe.
func (r *RecordRepo) GetByID(id string) (*entity.Record, error) {
	query := `
		SELECT id, type, status, details, created_at, updated_at
		FROM records WHERE id = $1`
	if r.lockOnRead {
		query += " FOR UPDATE"
	}
	rec, err := scanRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List lista registros del más reciente al más antiguo, filtrando por tipo
// y estado (cadena vacía = sin filtro).
func (r *RecordRepo) List(recordType, status string, limit, offset int) ([]*entity.Record, error) {
	query := `
		SELECT id, type, status, details, created_at, updated_at
		FROM records
		WHERE ($1 = '' OR type = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, recordType, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	var list []*entity.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Update reemplaza estado y árbol de detalle.
func (r *RecordRepo) Update(record *entity.Record) error {
	details, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	query := `
		UPDATE records SET type = $2, status = $3, details = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		record.ID, record.Type, record.Status, details, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// Delete elimina un registro.
func (r *RecordRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*entity.Record, error) {
	var rec entity.Record
	var details []byte
	if err := row.Scan(&rec.ID, &rec.Type, &rec.Status, &details, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return nil, fmt.Errorf("unmarshal details: %w", err)
		}
	}
	return &rec, nil
}
