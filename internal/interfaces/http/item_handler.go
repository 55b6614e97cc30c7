package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/pkg/logger"
)

// ItemHandler maneja las peticiones HTTP para Item (protegido).
type ItemHandler struct {
	uc  *item.UseCase
	log *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *item.UseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(out))
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.ItemRequest  true  "Datos completos del artículo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewItemResponse(out))
}

// Delete godoc
// @Summary      Desactivar artículo (borrado lógico)
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/restore [put]
func (h *ItemHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewItemResponse(out))
}

// PermanentlyDelete godoc
// @Summary      Eliminar artículo definitivamente
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/permanent [delete]
func (h *ItemHandler) PermanentlyDelete(c *fiber.Ctx) error {
	if err := h.uc.PermanentlyDelete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener artículo por ID (incluye inactivos)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewItemResponse(out))
}

// GetBySKU godoc
// @Summary      Obtener artículo por SKU
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/sku/{sku} [get]
func (h *ItemHandler) GetBySKU(c *fiber.Ctx) error {
	out, err := h.uc.GetBySKU(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewItemResponse(out))
}

// List godoc
// @Summary      Listar artículos activos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Página (desde 0)"  default(0)
// @Param        size     query  int     false  "Tamaño"            default(10)
// @Param        sortBy   query  string  false  "Campo"             default(name)
// @Param        sortDir  query  string  false  "asc | desc"        default(asc)
// @Success      200  {object}  dto.PageResponse[dto.ItemResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewItemResponse))
}

// ListAll godoc
// @Summary      Listar todos los artículos activos (sin paginar)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/all [get]
func (h *ItemHandler) ListAll(c *fiber.Ctx) error {
	return h.list(c, h.uc.ListAll)
}

// Search godoc
// @Summary      Buscar artículos activos por nombre o SKU
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Término"
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño"
// @Success      200  {object}  dto.PageResponse[dto.ItemResponse]
// @Router       /api/items/search [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	page, err := h.uc.Search(c.UserContext(), c.Query("q"), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewItemResponse))
}

// GetByType godoc
// @Summary      Listar artículos activos por tipo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        type  path   string  true   "GOODS | SERVICE"
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño"
// @Success      200  {object}  dto.PageResponse[dto.ItemResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/type/{type} [get]
func (h *ItemHandler) GetByType(c *fiber.Ctx) error {
	page, err := h.uc.GetByType(c.UserContext(), c.Params("type"), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewItemResponse))
}

// GetSellable godoc
// @Summary      Artículos activos vendibles
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/sellable [get]
func (h *ItemHandler) GetSellable(c *fiber.Ctx) error {
	return h.list(c, h.uc.GetSellable)
}

// GetPurchasable godoc
// @Summary      Artículos activos comprables
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/purchasable [get]
func (h *ItemHandler) GetPurchasable(c *fiber.Ctx) error {
	return h.list(c, h.uc.GetPurchasable)
}

// GetLowStock godoc
// @Summary      Bienes activos con stock bajo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) GetLowStock(c *fiber.Ctx) error {
	return h.list(c, h.uc.GetLowStock)
}

// GetStatistics godoc
// @Summary      Estadísticas de artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ItemStatisticsResponse
// @Router       /api/items/statistics [get]
func (h *ItemHandler) GetStatistics(c *fiber.Ctx) error {
	out, err := h.uc.GetStatistics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *ItemHandler) list(c *fiber.Ctx, fn func(context.Context) ([]*entity.Item, error)) error {
	list, err := fn(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapList(list, dto.NewItemResponse))
}
