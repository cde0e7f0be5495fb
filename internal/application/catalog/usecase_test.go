package catalog_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/catalog"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/modelspec"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newCargoUC(t *testing.T) *catalog.CargoUseCase {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewCargoUseCase(memory.NewCargoRepository(store))
}

func specRojo() []modelspec.Attribute {
	return []modelspec.Attribute{{Key: "color", Value: "rojo"}}
}

func specAzul() []modelspec.Attribute {
	return []modelspec.Attribute{{Key: "color", Value: "azul"}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cargos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCargo_ConVariantesIniciales(t *testing.T) {
	uc := newCargoUC(t)

	out, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Price:  decimal.NewFromInt(1200),
		Models: [][]modelspec.Attribute{specRojo(), specAzul()},
	})
	require.NoError(t, err)
	require.Len(t, out.Models, 2)
	assert.Equal(t, "rojo", out.Models[0].Name, "el nombre se deriva de la especificación")
	assert.Equal(t, int64(0), out.Models[0].Quantity, "las variantes nacen con existencia cero")
	assert.Equal(t, int64(0), out.OnHandTotal)
}

func TestCreateCargo_NombreDuplicado(t *testing.T) {
	uc := newCargoUC(t)

	_, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	require.NoError(t, err)

	_, err = uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateCargo_EspecificacionInicialDuplicada(t *testing.T) {
	uc := newCargoUC(t)

	_, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo(), specRojo()},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSpec)
}

func TestCreateCargo_PrecioNegativo(t *testing.T) {
	uc := newCargoUC(t)

	_, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:  "Tornillo M8",
		Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCargo_RenombrarANombreOcupado(t *testing.T) {
	uc := newCargoUC(t)

	_, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	require.NoError(t, err)
	b, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tuerca M8"})
	require.NoError(t, err)

	nuevo := "Tornillo M8"
	_, err = uc.UpdateCargo(b.ID, dto.UpdateCargoRequest{Name: &nuevo})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDeleteCargo_EliminaEnCascada(t *testing.T) {
	uc := newCargoUC(t)

	out, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo()},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCargo(out.ID))

	got, err := uc.GetCargo(out.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "el cargo y sus variantes dejan de existir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Variantes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateModel_EspecificacionDuplicadaBajoElMismoCargo(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo()},
	})
	require.NoError(t, err)

	_, err = uc.CreateModel(cargo.ID, dto.CreateModelRequest{Spec: specRojo()})
	assert.ErrorIs(t, err, domain.ErrDuplicateSpec)

	// La misma especificación bajo otro cargo sí es válida.
	otro, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tuerca M8"})
	require.NoError(t, err)
	_, err = uc.CreateModel(otro.ID, dto.CreateModelRequest{Spec: specRojo()})
	assert.NoError(t, err)
}

func TestCreateModel_ActualizaElCargoPadre(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	require.NoError(t, err)

	_, err = uc.CreateModel(cargo.ID, dto.CreateModelRequest{Spec: specAzul()})
	require.NoError(t, err)

	got, err := uc.GetCargo(cargo.ID)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(cargo.UpdatedAt), "agregar variante toca el UpdatedAt del cargo")
	require.Len(t, got.Models, 1)
}

func TestUpdateModel_RechazaEspecificacionDeHermano(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo(), specAzul()},
	})
	require.NoError(t, err)

	_, err = uc.UpdateModel(cargo.ID, cargo.Models[1].ID, dto.UpdateModelRequest{Spec: specRojo()})
	assert.ErrorIs(t, err, domain.ErrDuplicateSpec)
}

func TestAdjustModelQuantity_AcumulaYSeReflejaEnElTotal(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo()},
	})
	require.NoError(t, err)
	modelID := cargo.Models[0].ID

	newQty, err := uc.AdjustModelQuantity(cargo.ID, modelID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), newQty)

	newQty, err = uc.AdjustModelQuantity(cargo.ID, modelID, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), newQty)

	got, err := uc.GetCargo(cargo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.OnHandTotal)
}

func TestAdjustModelQuantity_TocaLosUpdatedAt(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo()},
	})
	require.NoError(t, err)

	_, err = uc.AdjustModelQuantity(cargo.ID, cargo.Models[0].ID, 1)
	require.NoError(t, err)

	got, err := uc.GetCargo(cargo.ID)
	require.NoError(t, err)
	assert.False(t, got.Models[0].UpdatedAt.Before(cargo.Models[0].UpdatedAt))
	assert.False(t, got.UpdatedAt.Before(cargo.UpdatedAt), "el ajuste toca también el cargo")
}

func TestAdjustModelQuantity_AjustesConcurrentesNoSePisan(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{
		Name:   "Tornillo M8",
		Models: [][]modelspec.Attribute{specRojo()},
	})
	require.NoError(t, err)
	modelID := cargo.Models[0].ID

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AdjustModelQuantity(cargo.ID, modelID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.GetCargo(cargo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.OnHandTotal, "ningún ajuste concurrente se pierde")
}

func TestAdjustModelQuantity_VarianteInexistente(t *testing.T) {
	uc := newCargoUC(t)

	cargo, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	require.NoError(t, err)

	_, err = uc.AdjustModelQuantity(cargo.ID, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestSearchCargo_PorSubcadena(t *testing.T) {
	uc := newCargoUC(t)

	_, err := uc.CreateCargo(dto.CreateCargoRequest{Name: "Tornillo M8"})
	require.NoError(t, err)
	_, err = uc.CreateCargo(dto.CreateCargoRequest{Name: "Tuerca M8"})
	require.NoError(t, err)
	_, err = uc.CreateCargo(dto.CreateCargoRequest{Name: "Arandela"})
	require.NoError(t, err)

	out, err := uc.SearchCargo("m8", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2, "la búsqueda no distingue mayúsculas")
}
