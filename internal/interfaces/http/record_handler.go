package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
)

// RecordHandler maneja las peticiones HTTP del libro de registros (protegido).
type RecordHandler struct {
	uc  *ledger.UseCase
	pdf ledger.RecordPDFGenerator
}

// NewRecordHandler construye el handler.
func NewRecordHandler(uc *ledger.UseCase, pdf ledger.RecordPDFGenerator) *RecordHandler {
	return &RecordHandler{uc: uc, pdf: pdf}
}

func recordError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento inválido"})
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	if errors.Is(err, domain.ErrRecordNotDraft) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_DRAFT", Message: "el registro ya no es un borrador"})
	}
	if errors.Is(err, domain.ErrRecordSubmitted) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUBMITTED", Message: "un registro enviado es historial inmutable"})
	}
	if errors.Is(err, domain.ErrEmptyRecord) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_RECORD", Message: "el borrador no tiene líneas"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "existencia insuficiente"})
	}
	if errors.Is(err, domain.ErrStockApplication) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_APPLICATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// CreateDraft godoc
// @Summary      Crear registro en borrador
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  true  "type: inbound | outbound | transfer"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/records [post]
func (h *RecordHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.CreateDraft(in.Type)
	if err != nil {
		return recordError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(record))
}

// SaveDraft godoc
// @Summary      Guardar el detalle de un borrador
// @Description  Reemplaza el árbol de detalle completo. Sin efecto sobre el
//
//	stock hasta el envío.
//
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.SaveDraftRequest  true  "Árbol de detalle"
// @Success      200   {object}  dto.RecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/records/{id} [put]
func (h *RecordHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.SaveDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	if err := h.uc.SaveDraft(id, toDetailEntities(in.Details)); err != nil {
		return recordError(c, err)
	}
	record, err := h.uc.GetRecord(id)
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(toRecordResponse(record))
}

// Submit godoc
// @Summary      Enviar un borrador
// @Description  Aplica todos los deltas al catálogo en una sola transacción
//
//	y congela el registro. Si algún ajuste falla no se aplica
//	ninguno y el registro sigue en borrador.
//
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/records/{id}/submit [post]
func (h *RecordHandler) Submit(c *fiber.Ctx) error {
	record, err := h.uc.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(toRecordResponse(record))
}

// Delete godoc
// @Summary      Eliminar un borrador
// @Description  Solo borradores: los registros enviados son historial
//
//	inmutable y eliminarlos está vetado.
//
// @Tags         records
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/records/{id} [delete]
func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteDraft(c.Params("id")); err != nil {
		return recordError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id} [get]
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.GetRecord(c.Params("id"))
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(toRecordResponse(record))
}

// List godoc
// @Summary      Listar registros
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "inbound | outbound | transfer"
// @Param        status  query  string  false  "draft | submitted"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.RecordListResponse
// @Router       /api/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.ListRecords(c.Query("type"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return recordError(c, err)
	}
	items := make([]dto.RecordResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecordResponse(r))
	}
	return c.JSON(dto.RecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetPDF godoc
// @Summary      Comprobante PDF del registro
// @Tags         records
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id}/pdf [get]
func (h *RecordHandler) GetPDF(c *fiber.Ctx) error {
	record, err := h.uc.GetRecord(c.Params("id"))
	if err != nil {
		return recordError(c, err)
	}
	data, err := h.pdf.GenerateRecordPDF(c.Context(), record)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="registro-`+record.ID+`.pdf"`)
	return c.Send(data)
}

// ── mapeo entidad <-> DTO ─────────────────────────────────────────────────────

func toRecordResponse(r *entity.Record) *dto.RecordResponse {
	details := make([]dto.RecordDetailDTO, 0, len(r.Details))
	for _, d := range r.Details {
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
		details = append(details, dto.RecordDetailDTO{
			CargoID:   d.CargoID,
			CargoName: d.CargoName,
			Unit:      d.Unit,
			Models:    models,
		})
	}
	return &dto.RecordResponse{
		ID:            r.ID,
		Type:          r.Type,
		Status:        r.Status,
		Details:       details,
		QuantityTotal: ledger.RecordQuantityTotal(r),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toDetailEntities(details []dto.RecordDetailDTO) []*entity.RecordDetail {
	out := make([]*entity.RecordDetail, 0, len(details))
	for _, d := range details {
		models := make([]*entity.RecordDetailModel, 0, len(d.Models))
		for _, m := range d.Models {
			models = append(models, &entity.RecordDetailModel{
				ModelID:     m.ModelID,
				ModelName:   m.ModelName,
				Quantity:    m.Quantity,
				ToModelID:   m.ToModelID,
				ToModelName: m.ToModelName,
			})
		}
		out = append(out, &entity.RecordDetail{
			CargoID:   d.CargoID,
			CargoName: d.CargoName,
			Unit:      d.Unit,
			Models:    models,
		})
	}
	return out
}
