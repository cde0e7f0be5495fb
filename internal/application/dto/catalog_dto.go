package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/modelspec"
)

// CreateCargoRequest alta de un cargo; Models es opcional (especificaciones
// iniciales, una por variante).
type CreateCargoRequest struct {
	Name        string                 `json:"name"`
	CategoryID  string                 `json:"category_id"`
	BrandID     string                 `json:"brand_id"`
	UnitID      string                 `json:"unit_id"`
	Price       decimal.Decimal        `json:"price"`
	Description string                 `json:"description"`
	Models      [][]modelspec.Attribute `json:"models"`
}

// UpdateCargoRequest edición parcial de un cargo (campos nil no cambian).
type UpdateCargoRequest struct {
	Name        *string          `json:"name"`
	CategoryID  *string          `json:"category_id"`
	BrandID     *string          `json:"brand_id"`
	UnitID      *string          `json:"unit_id"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// CreateModelRequest alta de una variante bajo un cargo.
type CreateModelRequest struct {
	Spec []modelspec.Attribute `json:"spec"`
}

// UpdateModelRequest edición de la especificación de una variante.
type UpdateModelRequest struct {
	Spec []modelspec.Attribute `json:"spec"`
}

// AdjustQuantityRequest ajuste directo de existencia de una variante.
type AdjustQuantityRequest struct {
	Delta int64 `json:"delta"`
}

// ModelResponse variante en respuestas.
type ModelResponse struct {
	ID        string    `json:"id"`
	CargoID   string    `json:"cargo_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CargoResponse cargo con sus variantes.
type CargoResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id,omitempty"`
	BrandID     string          `json:"brand_id,omitempty"`
	UnitID      string          `json:"unit_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Models      []ModelResponse `json:"models"`
	OnHandTotal int64           `json:"on_hand_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CargoListResponse listado paginado de cargos.
type CargoListResponse struct {
	Items []CargoResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CategoryGroupResponse sección de cargos agrupados por categoría.
type CategoryGroupResponse struct {
	Category string          `json:"category"`
	Items    []CargoResponse `json:"items"`
}

// ReferenceRequest alta/edición de categoría, marca o unidad.
type ReferenceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReferenceResponse categoría, marca o unidad en respuestas.
type ReferenceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
