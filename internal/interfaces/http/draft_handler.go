package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/draft"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
)

// DraftHandler maneja las sesiones de construcción de borradores (protegido).
// Una sesión acumula selecciones en memoria; al finalizar se convierte en un
// registro en borrador del libro.
type DraftHandler struct {
	store  *draft.Store
	ledger *ledger.UseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(store *draft.Store, ledgerUC *ledger.UseCase) *DraftHandler {
	return &DraftHandler{store: store, ledger: ledgerUC}
}

func draftError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	}
	if errors.Is(err, domain.ErrCargoNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cargo no encontrado"})
	}
	if errors.Is(err, domain.ErrModelNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
	}
	if errors.Is(err, domain.ErrNoCargoSelected) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_CARGO", Message: "seleccione primero un cargo"})
	}
	if errors.Is(err, domain.ErrNoSelection) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SELECTION", Message: "seleccione cargo y variante antes de agregar"})
	}
	if errors.Is(err, domain.ErrInvalidQuantity) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrEmptyRecord) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_RECORD", Message: "la sesión no tiene líneas"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Open godoc
// @Summary      Abrir sesión de borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "type: inbound | outbound | transfer"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.store.Open(in.Type)
	if err != nil {
		return draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(s))
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(toSessionResponse(s))
}

// SelectCargo godoc
// @Summary      Seleccionar cargo activo
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectCargoRequest  true  "cargo_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/select-cargo [post]
func (h *DraftHandler) SelectCargo(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	var in dto.SelectCargoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.SelectCargo(in.CargoID); err != nil {
		return draftError(c, err)
	}
	return c.JSON(toSessionResponse(s))
}

// SelectModel godoc
// @Summary      Seleccionar variante activa
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectModelRequest  true  "model_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/select-model [post]
func (h *DraftHandler) SelectModel(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	var in dto.SelectModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.SelectModel(in.ModelID); err != nil {
		return draftError(c, err)
	}
	return c.JSON(toSessionResponse(s))
}

// SelectDestination godoc
// @Summary      Seleccionar variante destino (solo traslados)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectModelRequest  true  "model_id destino"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/select-destination [post]
func (h *DraftHandler) SelectDestination(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	var in dto.SelectModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.SelectDestination(in.ModelID); err != nil {
		return draftError(c, err)
	}
	return c.JSON(toSessionResponse(s))
}

// AddPick godoc
// @Summary      Agregar la selección actual al acumulado
// @Description  La cantidad viaja como texto y se valida con reglas
//
//	estrictas (sin ceros a la izquierda, sin decimales). Líneas
//	repetidas del mismo par cargo/variante se funden sumando.
//
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.AddPickRequest  true  "quantity en texto"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/picks [post]
func (h *DraftHandler) AddPick(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	var in dto.AddPickRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.AddPick(in.Quantity); err != nil {
		return draftError(c, err)
	}
	return c.JSON(toSessionResponse(s))
}

// Reset godoc
// @Summary      Vaciar la sesión
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/reset [post]
func (h *DraftHandler) Reset(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	s.Reset()
	return c.JSON(toSessionResponse(s))
}

// Finalize godoc
// @Summary      Finalizar la sesión en un registro borrador
// @Description  Convierte el acumulado en un registro del libro (estado
//
//	draft) y descarta la sesión. El stock no cambia hasta el
//	envío del registro.
//
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      201  {object}  dto.FinalizeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/finalize [post]
func (h *DraftHandler) Finalize(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return draftError(c, err)
	}
	details := s.ToDetailList()
	if len(details) == 0 {
		return draftError(c, domain.ErrEmptyRecord)
	}
	record, err := h.ledger.CreateDraftWithDetails(s.Type(), details)
	if err != nil {
		return draftError(c, err)
	}
	h.store.Close(s.ID())
	return c.Status(fiber.StatusCreated).JSON(dto.FinalizeResponse{Record: *toRecordResponse(record)})
}

// Cancel godoc
// @Summary      Cancelar la sesión
// @Tags         drafts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Cancel(c *fiber.Ctx) error {
	if _, err := h.store.Get(c.Params("id")); err != nil {
		return draftError(c, err)
	}
	h.store.Close(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func toSessionResponse(s *draft.Session) dto.SessionResponse {
	cargoID, modelID := s.Selected()
	return dto.SessionResponse{
		ID:              s.ID(),
		Type:            s.Type(),
		SelectedCargoID: cargoID,
		SelectedModelID: modelID,
		Details:         toRecordResponseDetails(s.ToDetailList()),
	}
}

func toRecordResponseDetails(details []*entity.RecordDetail) []dto.RecordDetailDTO {
	out := make([]dto.RecordDetailDTO, 0, len(details))
	for _, d := range details {
		models := make([]dto.RecordDetailModelDTO, 0, len(d.Models))
		for _, m := range d.Models {
			models = append(models, dto.RecordDetailModelDTO{
				ModelID:     m.ModelID,
				ModelName:   m.ModelName,
				Quantity:    m.Quantity,
				ToModelID:   m.ToModelID,
				ToModelName: m.ToModelName,
			})
		}
		out = append(out, dto.RecordDetailDTO{
			CargoID:   d.CargoID,
			CargoName: d.CargoName,
			Unit:      d.Unit,
			Models:    models,
		})
	}
	return out
}
