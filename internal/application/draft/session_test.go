package draft_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/draft"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *draft.Store
	cargo *memory.CargoRepo
}

// seed levanta un catálogo mínimo: dos cargos, el primero con unidad "caja"
// y dos variantes, el segundo sin unidad y con una variante.
func seed(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	cargoRepo := memory.NewCargoRepository(st)
	unitRepo := memory.NewUnitRepository(st)

	now := time.Now()
	require.NoError(t, unitRepo.Create(&entity.Unit{ID: "u1", Name: "caja", CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, cargoRepo.Create(&entity.Cargo{
		ID: "c1", Name: "Tornillo M8", UnitID: "u1",
		Models: []*entity.Model{
			{ID: "m1", CargoID: "c1", Name: "rojo"},
			{ID: "m2", CargoID: "c1", Name: "azul"},
		},
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, cargoRepo.Create(&entity.Cargo{
		ID: "c2", Name: "Tuerca M8",
		Models: []*entity.Model{
			{ID: "m3", CargoID: "c2", Name: "galvanizada"},
		},
		CreatedAt: now, UpdatedAt: now,
	}))

	return &fixture{store: draft.NewStore(cargoRepo, unitRepo), cargo: cargoRepo}
}

func pick(t *testing.T, s *draft.Session, cargoID, modelID, qty string) {
	t.Helper()
	require.NoError(t, s.SelectCargo(cargoID))
	require.NoError(t, s.SelectModel(modelID))
	require.NoError(t, s.AddPick(qty))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de selección
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_TipoInvalido(t *testing.T) {
	f := seed(t)
	_, err := f.store.Open("bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddPick_SinCargoNiModeloSeleccionado(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddPick("5"), domain.ErrNoSelection)

	require.NoError(t, s.SelectCargo("c1"))
	assert.ErrorIs(t, s.AddPick("5"), domain.ErrNoSelection, "falta la variante")
}

func TestSelectModel_SinCargoSeleccionado(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SelectModel("m1"), domain.ErrNoCargoSelected)
}

func TestAddPick_CantidadInvalidaNoMutaNada(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	require.NoError(t, s.SelectCargo("c1"))
	require.NoError(t, s.SelectModel("m1"))
	assert.ErrorIs(t, s.AddPick("01"), domain.ErrInvalidQuantity)

	assert.Empty(t, s.ToDetailList(), "una cantidad inválida no agrega líneas")
	cargoID, modelID := s.Selected()
	assert.Equal(t, "c1", cargoID, "la selección sobrevive al error")
	assert.Equal(t, "m1", modelID)
}

func TestAddPick_LimpiaLaSeleccionTrasAgregar(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	pick(t, s, "c1", "m1", "5")

	cargoID, modelID := s.Selected()
	assert.Empty(t, cargoID, "la selección se limpia tras agregar")
	assert.Empty(t, modelID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fusión y orden
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPick_FusionaParesRepetidosSumando(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	pick(t, s, "c1", "m1", "5")
	pick(t, s, "c1", "m1", "5")

	details := s.ToDetailList()
	require.Len(t, details, 1)
	require.Len(t, details[0].Models, 1, "el par repetido se funde en una sola línea")
	assert.Equal(t, int64(10), details[0].Models[0].Quantity)
}

func TestToDetailList_OrdenDeInsercionPorPrimeraAdicion(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	// Seleccionar c2 primero sin agregar no le gana el puesto: el nodo nace
	// con la primera adición.
	require.NoError(t, s.SelectCargo("c2"))
	pick(t, s, "c1", "m1", "1")
	pick(t, s, "c2", "m3", "2")
	pick(t, s, "c1", "m2", "3")

	details := s.ToDetailList()
	require.Len(t, details, 2)
	assert.Equal(t, "c1", details[0].CargoID)
	assert.Equal(t, "c2", details[1].CargoID)
	require.Len(t, details[0].Models, 2)
	assert.Equal(t, "m1", details[0].Models[0].ModelID)
	assert.Equal(t, "m2", details[0].Models[1].ModelID)
}

func TestToDetailList_CopiaNombresYUnidad(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	pick(t, s, "c1", "m1", "5")
	pick(t, s, "c2", "m3", "2")

	details := s.ToDetailList()
	require.Len(t, details, 2)
	assert.Equal(t, "Tornillo M8", details[0].CargoName)
	assert.Equal(t, "caja", details[0].Unit)
	assert.Equal(t, draft.DefaultUnit, details[1].Unit, "sin unidad asignada cae a la etiqueta por defecto")
	assert.Equal(t, "rojo", details[0].Models[0].ModelName)
}

func TestReset_VaciaElAcumulado(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	pick(t, s, "c1", "m1", "5")
	s.Reset()

	assert.Empty(t, s.ToDetailList())
	cargoID, _ := s.Selected()
	assert.Empty(t, cargoID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_RequiereDestino(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeTransfer)
	require.NoError(t, err)

	require.NoError(t, s.SelectCargo("c1"))
	require.NoError(t, s.SelectModel("m1"))
	assert.ErrorIs(t, s.AddPick("5"), domain.ErrNoSelection, "traslado sin destino")
}

func TestTransfer_DestinoIgualAlOrigen(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeTransfer)
	require.NoError(t, err)

	require.NoError(t, s.SelectCargo("c1"))
	require.NoError(t, s.SelectModel("m1"))
	require.NoError(t, s.SelectDestination("m1"))
	assert.ErrorIs(t, s.AddPick("5"), domain.ErrInvalidInput)
}

func TestTransfer_LineaConDestino(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeTransfer)
	require.NoError(t, err)

	require.NoError(t, s.SelectCargo("c1"))
	require.NoError(t, s.SelectModel("m1"))
	require.NoError(t, s.SelectDestination("m2"))
	require.NoError(t, s.AddPick("4"))

	details := s.ToDetailList()
	require.Len(t, details, 1)
	require.Len(t, details[0].Models, 1)
	line := details[0].Models[0]
	assert.Equal(t, "m1", line.ModelID)
	assert.Equal(t, "m2", line.ToModelID)
	assert.Equal(t, "azul", line.ToModelName)
	assert.Equal(t, int64(4), line.Quantity)
}

func TestSelectDestination_SoloEnTraslados(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeInbound)
	require.NoError(t, err)

	require.NoError(t, s.SelectCargo("c1"))
	assert.ErrorIs(t, s.SelectDestination("m2"), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Store de sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_GetYClose(t *testing.T) {
	f := seed(t)
	s, err := f.store.Open(entity.RecordTypeOutbound)
	require.NoError(t, err)

	got, err := f.store.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	f.store.Close(s.ID())
	_, err = f.store.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
