package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/catalog"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
)

// ReferenceHandler maneja las peticiones HTTP de categorías, marcas y
// unidades (protegido).
type ReferenceHandler struct {
	uc *catalog.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *catalog.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func referenceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if errors.Is(err, domain.ErrDuplicateName) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el nombre ya existe"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReferenceRequest  true  "name, description"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCategory(in)
	if err != nil {
		return referenceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReferenceResponse
// @Router       /api/categories [get]
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories()
	if err != nil {
		return referenceError(c, err)
	}
	return c.JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.ReferenceRequest  true  "name, description"
// @Success      200   {object}  dto.ReferenceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *ReferenceHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCategory(c.Params("id"), in)
	if err != nil {
		return referenceError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *ReferenceHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Params("id")); err != nil {
		return referenceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReferenceRequest  true  "name, description"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *ReferenceHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBrand(in)
	if err != nil {
		return referenceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReferenceResponse
// @Router       /api/brands [get]
func (h *ReferenceHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.uc.ListBrands()
	if err != nil {
		return referenceError(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Eliminar marca
// @Tags         brands
// @Security     Bearer
// @Param        id  path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *ReferenceHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.uc.DeleteBrand(c.Params("id")); err != nil {
		return referenceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnit godoc
// @Summary      Crear unidad de medida
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReferenceRequest  true  "name"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *ReferenceHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateUnit(in)
	if err != nil {
		return referenceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits godoc
// @Summary      Listar unidades de medida
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReferenceResponse
// @Router       /api/units [get]
func (h *ReferenceHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListUnits()
	if err != nil {
		return referenceError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit godoc
// @Summary      Eliminar unidad de medida
// @Tags         units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la unidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [delete]
func (h *ReferenceHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.uc.DeleteUnit(c.Params("id")); err != nil {
		return referenceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
