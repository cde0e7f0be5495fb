// Package draft implementa el constructor de borradores: una sesión
// acumuladora en memoria donde el usuario va escogiendo pares cargo/modelo
// y cantidades. Selecciones repetidas del mismo par se funden en una sola
// línea sumando cantidades; el orden de inserción se conserva para que el
// detalle final sea estable.
package draft

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/quantity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// DefaultUnit etiqueta de unidad cuando el cargo no tiene unidad asignada.
const DefaultUnit = "unidad"

// Session es una sesión de borrador propiedad del llamador: acumula las
// selecciones de un registro en curso sin persistir nada hasta finalizar.
// Cada sesión es independiente; varias pueden convivir sin interferirse.
type Session struct {
	mu sync.Mutex

	id         string
	recordType string

	cargoRepo repository.CargoRepository
	unitRepo  repository.UnitRepository

	selectedCargoID string
	selectedModelID string
	selectedUnit    string // etiqueta de unidad copiada al seleccionar cargo
	destModelID     string // solo traslados
	destModelName   string

	cargoOrder []string              // orden de inserción de cargos
	lines      map[string]*cargoLine // cargoID -> línea acumulada
}

type cargoLine struct {
	cargoName  string
	unit       string
	modelOrder []string
	models     map[string]*modelLine
}

type modelLine struct {
	modelName   string
	qty         int64
	toModelID   string
	toModelName string
}

// NewSession abre una sesión para un tipo de movimiento.
func NewSession(recordType string, cargoRepo repository.CargoRepository, unitRepo repository.UnitRepository) (*Session, error) {
	if !entity.ValidRecordType(recordType) {
		return nil, domain.ErrInvalidInput
	}
	return &Session{
		id:         uuid.New().String(),
		recordType: recordType,
		cargoRepo:  cargoRepo,
		unitRepo:   unitRepo,
		lines:      make(map[string]*cargoLine),
	}, nil
}

// ID devuelve el identificador de la sesión.
func (s *Session) ID() string { return s.id }

// Type devuelve el tipo de movimiento de la sesión.
func (s *Session) Type() string { return s.recordType }

// SelectCargo fija el cargo activo, limpia la variante seleccionada y toma
// una copia de la etiqueta de unidad del cargo.
func (s *Session) SelectCargo(cargoID string) error {
	cargo, err := s.cargoRepo.GetByID(cargoID)
	if err != nil {
		return err
	}
	if cargo == nil {
		return domain.ErrCargoNotFound
	}
	unit := DefaultUnit
	if cargo.UnitID != "" && s.unitRepo != nil {
		if u, err := s.unitRepo.GetByID(cargo.UnitID); err == nil && u != nil {
			unit = u.Name
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCargoID = cargoID
	s.selectedModelID = ""
	s.selectedUnit = unit
	s.destModelID = ""
	s.destModelName = ""
	return nil
}

// SelectModel fija la variante activa. Falla con domain.ErrNoCargoSelected si
// aún no hay cargo seleccionado.
func (s *Session) SelectModel(modelID string) error {
	s.mu.Lock()
	cargoID := s.selectedCargoID
	s.mu.Unlock()
	if cargoID == "" {
		return domain.ErrNoCargoSelected
	}
	model, err := s.cargoRepo.GetModel(cargoID, modelID)
	if err != nil {
		return err
	}
	if model == nil {
		return domain.ErrModelNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedModelID = modelID
	return nil
}

// SelectDestination fija la variante destino de un traslado. Solo es válido
// en sesiones de tipo transfer y con un cargo seleccionado.
func (s *Session) SelectDestination(modelID string) error {
	if s.recordType != entity.RecordTypeTransfer {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	cargoID := s.selectedCargoID
	s.mu.Unlock()
	if cargoID == "" {
		return domain.ErrNoCargoSelected
	}
	model, err := s.cargoRepo.GetModel(cargoID, modelID)
	if err != nil {
		return err
	}
	if model == nil {
		return domain.ErrModelNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.destModelID = modelID
	s.destModelName = model.Name
	return nil
}

// AddPick acumula la selección actual con la cantidad en texto. Si el par
// (cargo, modelo) ya tiene línea, suma la cantidad en la existente; si no,
// inserta una nueva preservando el orden. Al terminar limpia la selección
// para forzar una re-selección explícita antes de la próxima adición.
func (s *Session) AddPick(quantityText string) error {
	qty, err := quantity.Parse(quantityText)
	if err != nil {
		return err
	}

	s.mu.Lock()
	cargoID := s.selectedCargoID
	modelID := s.selectedModelID
	destID := s.destModelID
	s.mu.Unlock()

	if cargoID == "" || modelID == "" {
		return domain.ErrNoSelection
	}
	if s.recordType == entity.RecordTypeTransfer {
		if destID == "" {
			return domain.ErrNoSelection
		}
		if destID == modelID {
			return domain.ErrInvalidInput
		}
	}

	// Copia de nombres al momento de la selección: el historial no se
	// reescribe si el catálogo cambia después.
	cargo, err := s.cargoRepo.GetByID(cargoID)
	if err != nil {
		return err
	}
	if cargo == nil {
		return domain.ErrCargoNotFound
	}
	model := cargo.FindModel(modelID)
	if model == nil {
		return domain.ErrModelNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// El nodo de cargo se crea en la primera adición, no en la selección:
	// el orden del detalle final sigue el orden de las adiciones.
	line, ok := s.lines[cargoID]
	if !ok {
		line = &cargoLine{
			cargoName: cargo.Name,
			unit:      s.selectedUnit,
			models:    make(map[string]*modelLine),
		}
		s.cargoOrder = append(s.cargoOrder, cargoID)
		s.lines[cargoID] = line
	}

	if existing, ok := line.models[modelID]; ok {
		existing.qty = quantity.Sum(existing.qty, qty)
		if s.destModelID != "" {
			existing.toModelID = s.destModelID
			existing.toModelName = s.destModelName
		}
	} else {
		line.modelOrder = append(line.modelOrder, modelID)
		line.models[modelID] = &modelLine{
			modelName:   model.Name,
			qty:         qty,
			toModelID:   s.destModelID,
			toModelName: s.destModelName,
		}
	}

	s.selectedCargoID = ""
	s.selectedModelID = ""
	s.selectedUnit = ""
	s.destModelID = ""
	s.destModelName = ""
	return nil
}

// ToDetailList aplana el acumulado en el árbol de detalle del registro,
// respetando el orden de inserción de cargos y de modelos.
func (s *Session) ToDetailList() []*entity.RecordDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	details := make([]*entity.RecordDetail, 0, len(s.cargoOrder))
	for _, cargoID := range s.cargoOrder {
		line := s.lines[cargoID]
		detail := &entity.RecordDetail{
			CargoID:   cargoID,
			CargoName: line.cargoName,
			Unit:      line.unit,
			Models:    make([]*entity.RecordDetailModel, 0, len(line.modelOrder)),
		}
		for _, modelID := range line.modelOrder {
			m := line.models[modelID]
			detail.Models = append(detail.Models, &entity.RecordDetailModel{
				ModelID:     modelID,
				ModelName:   m.modelName,
				Quantity:    m.qty,
				ToModelID:   m.toModelID,
				ToModelName: m.toModelName,
			})
		}
		details = append(details, detail)
	}
	return details
}

// Selected devuelve la selección activa (cargo, modelo).
func (s *Session) Selected() (cargoID, modelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCargoID, s.selectedModelID
}

// Reset limpia todo el estado acumulado de la sesión.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCargoID = ""
	s.selectedModelID = ""
	s.selectedUnit = ""
	s.destModelID = ""
	s.destModelName = ""
	s.cargoOrder = nil
	s.lines = make(map[string]*cargoLine)
}
