// Package ledger implementa el libro de registros de movimientos: la máquina
// de estados draft -> submitted y la aplicación transaccional de los deltas
// de existencia sobre el catálogo.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/quantity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// Policy políticas configurables del libro.
type Policy struct {
	// AllowNegativeStock permite que una salida deje existencias negativas.
	// Con false, el envío que produciría subdesbordamiento falla con
	// domain.ErrInsufficientStock y no aplica ningún delta.
	AllowNegativeStock bool
}

// UseCase casos de uso del libro de registros.
type UseCase struct {
	txRunner   TxRunner
	recordRepo repository.RecordRepository
	policy     Policy
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, recordRepo repository.RecordRepository, policy Policy) *UseCase {
	return &UseCase{txRunner: txRunner, recordRepo: recordRepo, policy: policy}
}

// CreateDraft crea un registro vacío en borrador para el tipo dado.
func (uc *UseCase) CreateDraft(recordType string) (*entity.Record, error) {
	if !entity.ValidRecordType(recordType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	record := &entity.Record{
		ID:        uuid.New().String(),
		Type:      recordType,
		Status:    entity.RecordStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateDraftWithDetails crea un borrador ya poblado (finalización de una
// sesión de selección).
func (uc *UseCase) CreateDraftWithDetails(recordType string, details []*entity.RecordDetail) (*entity.Record, error) {
	record, err := uc.CreateDraft(recordType)
	if err != nil {
		return nil, err
	}
	if err := uc.SaveDraft(record.ID, details); err != nil {
		return nil, err
	}
	return uc.GetRecord(record.ID)
}

// SaveDraft reemplaza el árbol de detalle de un borrador. Entre ediciones
// concurrentes del mismo borrador gana la última (sin token de concurrencia
// optimista). Sin efecto sobre el stock. Falla con domain.ErrRecordNotFound
// o domain.ErrRecordNotDraft.
func (uc *UseCase) SaveDraft(recordID string, details []*entity.RecordDetail) error {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrRecordNotFound
	}
	if !record.IsDraft() {
		return domain.ErrRecordNotDraft
	}
	record.Details = normalizeDetails(details)
	record.UpdatedAt = time.Now()
	return uc.recordRepo.Update(record)
}

// Submit envía un borrador: aplica cada delta de sus líneas al catálogo
// dentro de una sola transacción y lo marca como submitted. Si cualquier
// ajuste falla (por ejemplo, la variante destino ya no existe) la
// transacción se revierte completa y el registro sigue en borrador, listo
// para reintentar.
func (uc *UseCase) Submit(ctx context.Context, recordID string) (*entity.Record, error) {
	var submitted *entity.Record
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.RecordRepository,
		cargoRepo repository.CargoRepository,
	) error {
		record, err := recordRepo.GetByID(recordID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrRecordNotFound
		}
		if !record.IsDraft() {
			return domain.ErrRecordNotDraft
		}
		if countModelLines(record) == 0 {
			return domain.ErrEmptyRecord
		}

		for _, detail := range record.Details {
			for _, line := range detail.Models {
				if err := uc.applyLine(cargoRepo, record.Type, detail.CargoID, line); err != nil {
					return err
				}
			}
		}

		record.Status = entity.RecordStatusSubmitted
		record.UpdatedAt = time.Now()
		if err := recordRepo.Update(record); err != nil {
			return err
		}
		submitted = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submitted, nil
}

// applyLine aplica el delta de una línea según el tipo de movimiento:
// entrada suma, salida resta, traslado resta del origen y suma al destino.
func (uc *UseCase) applyLine(cargoRepo repository.CargoRepository, recordType, cargoID string, line *entity.RecordDetailModel) error {
	switch recordType {
	case entity.RecordTypeInbound:
		_, err := uc.adjust(cargoRepo, cargoID, line.ModelID, line.Quantity)
		return err
	case entity.RecordTypeOutbound:
		_, err := uc.adjust(cargoRepo, cargoID, line.ModelID, -line.Quantity)
		return err
	case entity.RecordTypeTransfer:
		if line.ToModelID == "" {
			return fmt.Errorf("%w: traslado sin variante destino", domain.ErrStockApplication)
		}
		if _, err := uc.adjust(cargoRepo, cargoID, line.ModelID, -line.Quantity); err != nil {
			return err
		}
		_, err := uc.adjust(cargoRepo, cargoID, line.ToModelID, line.Quantity)
		return err
	default:
		return domain.ErrInvalidInput
	}
}

func (uc *UseCase) adjust(cargoRepo repository.CargoRepository, cargoID, modelID string, delta int64) (int64, error) {
	newQty, err := cargoRepo.AdjustModelQuantity(cargoID, modelID, delta)
	if err != nil {
		return 0, fmt.Errorf("%w: modelo %s: %w", domain.ErrStockApplication, modelID, err)
	}
	if delta < 0 && newQty < 0 && !uc.policy.AllowNegativeStock {
		return 0, domain.ErrInsufficientStock
	}
	return newQty, nil
}

// DeleteDraft elimina un borrador. Los registros enviados son historial
// inmutable: borrarlos está vetado y nunca revertiría su efecto de stock.
func (uc *UseCase) DeleteDraft(recordID string) error {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrRecordNotFound
	}
	if !record.IsDraft() {
		return domain.ErrRecordSubmitted
	}
	return uc.recordRepo.Delete(recordID)
}

// GetRecord obtiene un registro por ID, o domain.ErrRecordNotFound.
func (uc *UseCase) GetRecord(recordID string) (*entity.Record, error) {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

// ListRecords lista registros filtrando por tipo y estado (vacío = todos).
func (uc *UseCase) ListRecords(recordType, status string, limit, offset int) ([]*entity.Record, error) {
	return uc.recordRepo.List(recordType, status, limit, offset)
}

// RecordQuantityTotal suma todas las cantidades de las líneas de modelo del
// registro. La vacuidad de un registro se decide por número de líneas, no
// por este total: una línea con cantidad 0 cuenta como línea.
func RecordQuantityTotal(record *entity.Record) int64 {
	var values []int64
	for _, detail := range record.Details {
		for _, line := range detail.Models {
			values = append(values, line.Quantity)
		}
	}
	return quantity.Sum(values...)
}

func countModelLines(record *entity.Record) int {
	n := 0
	for _, detail := range record.Details {
		n += len(detail.Models)
	}
	return n
}

// normalizeDetails funde líneas duplicadas: una sola línea por cargo dentro
// del registro y una sola línea por modelo dentro de cada cargo, sumando
// cantidades. Preserva el orden de primera aparición.
func normalizeDetails(details []*entity.RecordDetail) []*entity.RecordDetail {
	var order []string
	byCargo := make(map[string]*entity.RecordDetail)
	for _, d := range details {
		merged, ok := byCargo[d.CargoID]
		if !ok {
			merged = &entity.RecordDetail{
				CargoID:   d.CargoID,
				CargoName: d.CargoName,
				Unit:      d.Unit,
			}
			byCargo[d.CargoID] = merged
			order = append(order, d.CargoID)
		}
		for _, line := range d.Models {
			if existing := findModelLine(merged.Models, line.ModelID); existing != nil {
				existing.Quantity = quantity.Sum(existing.Quantity, line.Quantity)
				continue
			}
			merged.Models = append(merged.Models, &entity.RecordDetailModel{
				ModelID:     line.ModelID,
				ModelName:   line.ModelName,
				Quantity:    line.Quantity,
				ToModelID:   line.ToModelID,
				ToModelName: line.ToModelName,
			})
		}
	}
	out := make([]*entity.RecordDetail, 0, len(order))
	for _, cargoID := range order {
		out = append(out, byCargo[cargoID])
	}
	return out
}

func findModelLine(lines []*entity.RecordDetailModel, modelID string) *entity.RecordDetailModel {
	for _, l := range lines {
		if l.ModelID == modelID {
			return l
		}
	}
	return nil
}
