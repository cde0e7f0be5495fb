package dto

import "time"

// CreateDraftRequest alta de un registro en borrador.
type CreateDraftRequest struct {
	Type string `json:"type"` // inbound | outbound | transfer
}

// RecordDetailModelDTO línea por variante dentro de un detalle.
type RecordDetailModelDTO struct {
	ModelID     string `json:"model_id"`
	ModelName   string `json:"model_name"`
	Quantity    int64  `json:"quantity"`
	ToModelID   string `json:"to_model_id,omitempty"`
	ToModelName string `json:"to_model_name,omitempty"`
}

// RecordDetailDTO línea por cargo de un registro.
type RecordDetailDTO struct {
	CargoID   string                 `json:"cargo_id"`
	CargoName string                 `json:"cargo_name"`
	Unit      string                 `json:"unit"`
	Models    []RecordDetailModelDTO `json:"models"`
}

// SaveDraftRequest reemplaza el árbol de detalle de un borrador.
type SaveDraftRequest struct {
	Details []RecordDetailDTO `json:"details"`
}

// RecordResponse registro con su detalle y total de cantidades.
type RecordResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	Details       []RecordDetailDTO `json:"details"`
	QuantityTotal int64             `json:"quantity_total"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// RecordListRequest filtros de listado de registros.
type RecordListRequest struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	PageRequest
}

// RecordListResponse listado paginado de registros.
type RecordListResponse struct {
	Items []RecordResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
