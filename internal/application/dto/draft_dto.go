package dto

// CreateSessionRequest abre una sesión de borrador para un tipo de movimiento.
type CreateSessionRequest struct {
	Type string `json:"type"` // inbound | outbound | transfer
}

// SelectCargoRequest selecciona el cargo activo de la sesión.
type SelectCargoRequest struct {
	CargoID string `json:"cargo_id"`
}

// SelectModelRequest selecciona la variante activa de la sesión.
type SelectModelRequest struct {
	ModelID string `json:"model_id"`
}

// AddPickRequest acumula la selección actual con la cantidad en texto tal
// como la tecleó el usuario; el motor la parsea con reglas estrictas.
type AddPickRequest struct {
	Quantity string `json:"quantity"`
}

// SessionResponse estado visible de una sesión de borrador.
type SessionResponse struct {
	ID              string            `json:"id"`
	Type            string            `json:"type"`
	SelectedCargoID string            `json:"selected_cargo_id,omitempty"`
	SelectedModelID string            `json:"selected_model_id,omitempty"`
	Details         []RecordDetailDTO `json:"details"`
}

// FinalizeResponse resultado de finalizar una sesión: el borrador creado.
type FinalizeResponse struct {
	Record RecordResponse `json:"record"`
}
