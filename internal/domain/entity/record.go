package entity

import "time"

// Tipos de movimiento de un registro.
const (
	RecordTypeInbound  = "inbound"  // entrada
	RecordTypeOutbound = "outbound" // salida
	RecordTypeTransfer = "transfer" // traslado entre variantes origen/destino
)

// Estados del registro. Un registro enviado es historial inmutable.
const (
	RecordStatusDraft     = "draft"
	RecordStatusSubmitted = "submitted"
)

// ValidRecordType indica si el tipo de movimiento es conocido.
func ValidRecordType(t string) bool {
	return t == RecordTypeInbound || t == RecordTypeOutbound || t == RecordTypeTransfer
}

// Record es un documento de movimiento de stock (entrada, salida o traslado).
// Nace en borrador; al enviarse aplica sus deltas al catálogo exactamente una
// vez y queda congelado. Borrar un registro enviado no revierte su efecto.
type Record struct {
	ID        string
	Type      string // inbound | outbound | transfer
	Status    string // draft | submitted
	Details   []*RecordDetail
	CreatedAt time.Time
	UpdatedAt time.Time // última edición del borrador o momento del envío
}

// IsDraft indica si el registro sigue editable.
func (r *Record) IsDraft() bool { return r.Status == RecordStatusDraft }

// RecordDetail es la línea por cargo de un registro. CargoName y Unit son
// copias tomadas al finalizar el borrador: renombrar el cargo después no
// reescribe el historial. CargoID es solo clave de búsqueda, nunca propiedad.
type RecordDetail struct {
	CargoID   string
	CargoName string
	Unit      string
	Models    []*RecordDetailModel
}

// RecordDetailModel es la línea por variante dentro de un detalle. Para
// traslados, ToModelID/ToModelName llevan la variante destino; la cantidad se
// resta del origen y se suma al destino dentro de la misma transacción.
type RecordDetailModel struct {
	ModelID     string
	ModelName   string
	Quantity    int64
	ToModelID   string // solo traslados
	ToModelName string // solo traslados
}
