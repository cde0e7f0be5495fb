package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/catalog"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/views"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
)

// CargoHandler maneja las peticiones HTTP de cargos y variantes (protegido).
type CargoHandler struct {
	uc    *catalog.CargoUseCase
	views *views.UseCase
}

// NewCargoHandler construye el handler.
func NewCargoHandler(uc *catalog.CargoUseCase, viewsUC *views.UseCase) *CargoHandler {
	return &CargoHandler{uc: uc, views: viewsUC}
}

func cargoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrDuplicateName) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: "ya existe un cargo con ese nombre"})
	}
	if errors.Is(err, domain.ErrDuplicateSpec) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SPEC", Message: "ya existe una variante con esa especificación"})
	}
	if errors.Is(err, domain.ErrCargoNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cargo no encontrado"})
	}
	if errors.Is(err, domain.ErrModelNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Crear cargo
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCargoRequest  true  "Datos del cargo y especificaciones iniciales"
// @Success      201   {object}  dto.CargoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cargos [post]
func (h *CargoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCargoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCargo(in)
	if err != nil {
		return cargoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cargo por ID
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cargo"
// @Success      200  {object}  dto.CargoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cargos/{id} [get]
func (h *CargoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetCargo(c.Params("id"))
	if err != nil {
		return cargoError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cargo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cargos
// @Description  Con q filtra por subcadena del nombre; sin q lista paginado.
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Subcadena del nombre"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CargoListResponse
// @Router       /api/cargos [get]
func (h *CargoHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	q := c.Query("q")

	var (
		out *dto.CargoListResponse
		err error
	)
	if q != "" {
		out, err = h.uc.SearchCargo(q, page)
	} else {
		out, err = h.uc.ListCargo(page)
	}
	if err != nil {
		return cargoError(c, err)
	}
	return c.JSON(out)
}

// Grouped godoc
// @Summary      Listar cargos agrupados por categoría
// @Description  Secciones en orden de primera aparición; los cargos sin
//
//	categoría caen bajo "Sin categoría".
//
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.CategoryGroupResponse
// @Router       /api/cargos/grouped [get]
func (h *CargoHandler) Grouped(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.views.CargoGroupedByCategory(page)
	if err != nil {
		return cargoError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cargo (parcial)
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cargo"
// @Param        body  body  dto.UpdateCargoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CargoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cargos/{id} [put]
func (h *CargoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCargoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCargo(c.Params("id"), in)
	if err != nil {
		return cargoError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cargo y sus variantes
// @Tags         cargos
// @Security     Bearer
// @Param        id  path  string  true  "ID del cargo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cargos/{id} [delete]
func (h *CargoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCargo(c.Params("id")); err != nil {
		return cargoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateModel godoc
// @Summary      Agregar variante a un cargo
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cargo"
// @Param        body  body  dto.CreateModelRequest  true  "Especificación (pares clave/valor ordenados)"
// @Success      201   {object}  dto.ModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cargos/{id}/models [post]
func (h *CargoHandler) CreateModel(c *fiber.Ctx) error {
	var in dto.CreateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateModel(c.Params("id"), in)
	if err != nil {
		return cargoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateModel godoc
// @Summary      Cambiar la especificación de una variante
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del cargo"
// @Param        modelId  path  string  true  "ID de la variante"
// @Param        body     body  dto.UpdateModelRequest  true  "Nueva especificación"
// @Success      200      {object}  dto.ModelResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/cargos/{id}/models/{modelId} [put]
func (h *CargoHandler) UpdateModel(c *fiber.Ctx) error {
	var in dto.UpdateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateModel(c.Params("id"), c.Params("modelId"), in)
	if err != nil {
		return cargoError(c, err)
	}
	return c.JSON(out)
}

// DeleteModel godoc
// @Summary      Eliminar una variante
// @Tags         cargos
// @Security     Bearer
// @Param        id       path  string  true  "ID del cargo"
// @Param        modelId  path  string  true  "ID de la variante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cargos/{id}/models/{modelId} [delete]
func (h *CargoHandler) DeleteModel(c *fiber.Ctx) error {
	if err := h.uc.DeleteModel(c.Params("id"), c.Params("modelId")); err != nil {
		return cargoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustQuantity godoc
// @Summary      Ajustar existencia de una variante
// @Description  Aplica un delta directo a la existencia, fuera del flujo de
//
//	registros. Devuelve la cantidad resultante.
//
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del cargo"
// @Param        modelId  path  string  true  "ID de la variante"
// @Param        body     body  dto.AdjustQuantityRequest  true  "delta (positivo o negativo)"
// @Success      200      {object}  map[string]int64
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/cargos/{id}/models/{modelId}/quantity [patch]
func (h *CargoHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQty, err := h.uc.AdjustModelQuantity(c.Params("id"), c.Params("modelId"), in.Delta)
	if err != nil {
		return cargoError(c, err)
	}
	return c.JSON(fiber.Map{"quantity": newQty})
}
