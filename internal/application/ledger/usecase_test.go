package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *ledger.UseCase
	cargo *memory.CargoRepo
}

// seed levanta el libro sobre el backend en memoria con un cargo de dos
// variantes: m1 con 10 unidades y m2 con 0.
func seed(t *testing.T, policy ledger.Policy) *fixture {
	t.Helper()
	st := memory.NewStore()
	cargoRepo := memory.NewCargoRepository(st)
	recordRepo := memory.NewRecordRepository(st)

	now := time.Now()
	require.NoError(t, cargoRepo.Create(&entity.Cargo{
		ID: "c1", Name: "Tornillo M8",
		Models: []*entity.Model{
			{ID: "m1", CargoID: "c1", Name: "rojo", Quantity: 10},
			{ID: "m2", CargoID: "c1", Name: "azul", Quantity: 0},
		},
		CreatedAt: now, UpdatedAt: now,
	}))

	return &fixture{
		uc:    ledger.NewUseCase(memory.NewTxRunner(st), recordRepo, policy),
		cargo: cargoRepo,
	}
}

func detail(lines ...*entity.RecordDetailModel) []*entity.RecordDetail {
	return []*entity.RecordDetail{{
		CargoID: "c1", CargoName: "Tornillo M8", Unit: "unidad", Models: lines,
	}}
}

func line(modelID string, qty int64) *entity.RecordDetailModel {
	return &entity.RecordDetailModel{ModelID: modelID, ModelName: modelID, Quantity: qty}
}

func (f *fixture) quantityOf(t *testing.T, modelID string) int64 {
	t.Helper()
	m, err := f.cargo.GetModel("c1", modelID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

func (f *fixture) draftWith(t *testing.T, recordType string, details []*entity.RecordDetail) *entity.Record {
	t.Helper()
	record, err := f.uc.CreateDraftWithDetails(recordType, details)
	require.NoError(t, err)
	return record
}

// ──────────────────────────────────────────────────────────────────────────────
// Borradores
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDraft_TipoInvalido(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})
	_, err := f.uc.CreateDraft("bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveDraft_NoTocaElStock(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	f.draftWith(t, entity.RecordTypeOutbound, detail(line("m1", 9)))

	assert.Equal(t, int64(10), f.quantityOf(t, "m1"), "guardar borrador no aplica deltas")
}

func TestSaveDraft_FundeLineasDuplicadas(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, append(
		detail(line("m1", 3), line("m1", 4)),
		detail(line("m2", 1))...,
	))

	require.Len(t, record.Details, 1, "líneas del mismo cargo se funden")
	require.Len(t, record.Details[0].Models, 2)
	assert.Equal(t, int64(7), record.Details[0].Models[0].Quantity, "cantidades del mismo modelo se suman")
	assert.Equal(t, int64(8), ledger.RecordQuantityTotal(record))
}

func TestSaveDraft_RegistroInexistente(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})
	err := f.uc.SaveDraft("no-existe", nil)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EntradaSumaExistencias(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5), line("m2", 2)))

	out, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RecordStatusSubmitted, out.Status)
	assert.Equal(t, int64(15), f.quantityOf(t, "m1"))
	assert.Equal(t, int64(2), f.quantityOf(t, "m2"))
}

func TestSubmit_SalidaRestaExistencias(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeOutbound, detail(line("m1", 4)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.quantityOf(t, "m1"))
}

func TestSubmit_TrasladoMueveEntreVariantes(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	l := line("m1", 4)
	l.ToModelID = "m2"
	l.ToModelName = "azul"
	record := f.draftWith(t, entity.RecordTypeTransfer, detail(l))

	_, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.quantityOf(t, "m1"))
	assert.Equal(t, int64(4), f.quantityOf(t, "m2"))
}

func TestSubmit_TrasladoSinDestinoFalla(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeTransfer, detail(line("m1", 4)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	assert.ErrorIs(t, err, domain.ErrStockApplication)
	assert.Equal(t, int64(10), f.quantityOf(t, "m1"), "nada se aplica")
}

func TestSubmit_RegistroVacio(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record, err := f.uc.CreateDraft(entity.RecordTypeInbound)
	require.NoError(t, err)

	_, err = f.uc.Submit(context.Background(), record.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyRecord)
}

func TestSubmit_DobleEnvio(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)

	_, err = f.uc.Submit(context.Background(), record.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotDraft, "un registro enviado no se reenvía")
	assert.Equal(t, int64(15), f.quantityOf(t, "m1"), "los deltas aplican exactamente una vez")
}

func TestSubmit_FalloRevierteTodo(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	// La primera línea es aplicable; la segunda referencia una variante
	// inexistente y debe tirar abajo la transacción completa.
	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5), line("fantasma", 1)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	require.ErrorIs(t, err, domain.ErrStockApplication)

	assert.Equal(t, int64(10), f.quantityOf(t, "m1"), "el delta aplicado se revierte")

	got, err := f.uc.GetRecord(record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RecordStatusDraft, got.Status, "el registro sigue en borrador, listo para reintentar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de existencias negativas
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SalidaPuedeDejarNegativoConPoliticaPermisiva(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeOutbound, detail(line("m1", 12)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), f.quantityOf(t, "m1"))
}

func TestSubmit_SubdesbordamientoConPoliticaEstricta(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: false})

	record := f.draftWith(t, entity.RecordTypeOutbound, detail(line("m1", 12)))

	_, err := f.uc.Submit(context.Background(), record.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.quantityOf(t, "m1"), "la salida rechazada no toca el stock")

	got, err := f.uc.GetRecord(record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RecordStatusDraft, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteDraft_BorradorSeElimina(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5)))

	require.NoError(t, f.uc.DeleteDraft(record.ID))
	_, err := f.uc.GetRecord(record.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDeleteDraft_EnviadoEsInmutable(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5)))
	_, err := f.uc.Submit(context.Background(), record.ID)
	require.NoError(t, err)

	err = f.uc.DeleteDraft(record.ID)
	assert.ErrorIs(t, err, domain.ErrRecordSubmitted)

	got, err := f.uc.GetRecord(record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RecordStatusSubmitted, got.Status, "el registro sigue intacto")
	assert.Equal(t, int64(15), f.quantityOf(t, "m1"), "el stock no se revierte jamás")
}

func TestListRecords_FiltraPorTipoYEstado(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	in := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 1)))
	f.draftWith(t, entity.RecordTypeOutbound, detail(line("m1", 1)))
	_, err := f.uc.Submit(context.Background(), in.ID)
	require.NoError(t, err)

	enviados, err := f.uc.ListRecords("", entity.RecordStatusSubmitted, 20, 0)
	require.NoError(t, err)
	require.Len(t, enviados, 1)
	assert.Equal(t, in.ID, enviados[0].ID)

	salidas, err := f.uc.ListRecords(entity.RecordTypeOutbound, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, salidas, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EnviosConcurrentesSobreElMismoModelo(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	const n = 8
	records := make([]*entity.Record, n)
	for i := range records {
		records[i] = f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 1)))
	}

	var wg sync.WaitGroup
	for _, r := range records {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.uc.Submit(context.Background(), id)
			assert.NoError(t, err)
		}(r.ID)
	}
	wg.Wait()

	assert.Equal(t, int64(10+n), f.quantityOf(t, "m1"), "ningún delta se pierde bajo concurrencia")
}

func TestSubmit_ConcurrenciaDelMismoRegistro(t *testing.T) {
	f := seed(t, ledger.Policy{AllowNegativeStock: true})

	record := f.draftWith(t, entity.RecordTypeInbound, detail(line("m1", 5)))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Submit(context.Background(), record.ID)
		}(i)
	}
	wg.Wait()

	// Exactamente un envío gana; el otro ve el registro ya enviado.
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], domain.ErrRecordNotDraft)
	} else {
		assert.NoError(t, errs[1])
		assert.ErrorIs(t, errs[0], domain.ErrRecordNotDraft)
	}
	assert.Equal(t, int64(15), f.quantityOf(t, "m1"), "el delta aplica exactamente una vez")
}
