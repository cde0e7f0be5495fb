package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Catálogo.
	ErrDuplicateName = errors.New("ya existe un cargo con ese nombre")
	ErrDuplicateSpec = errors.New("ya existe un modelo con esa especificación")
	ErrCargoNotFound = errors.New("cargo no encontrado")
	ErrModelNotFound = errors.New("modelo no encontrado")

	// Borrador (sesión de selección).
	ErrInvalidQuantity = errors.New("cantidad inválida")
	ErrNoCargoSelected = errors.New("no hay cargo seleccionado")
	ErrNoSelection     = errors.New("no hay cargo o modelo seleccionado")

	// Libro de registros.
	ErrRecordNotFound    = errors.New("registro no encontrado")
	ErrRecordNotDraft    = errors.New("el registro no está en borrador")
	ErrRecordSubmitted   = errors.New("un registro enviado es historial inmutable")
	ErrEmptyRecord       = errors.New("el registro no tiene líneas de detalle")
	ErrStockApplication  = errors.New("fallo al aplicar el stock del registro")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
