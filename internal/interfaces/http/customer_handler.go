package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/pkg/logger"
)

// CustomerHandler maneja las peticiones HTTP para Customer (protegido).
type CustomerHandler struct {
	uc  *customer.UseCase
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(out))
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos completos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewCustomerResponse(out))
}

// Delete godoc
// @Summary      Desactivar cliente (borrado lógico)
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/restore [put]
func (h *CustomerHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewCustomerResponse(out))
}

// PermanentlyDelete godoc
// @Summary      Eliminar cliente definitivamente
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/permanent [delete]
func (h *CustomerHandler) PermanentlyDelete(c *fiber.Ctx) error {
	if err := h.uc.PermanentlyDelete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener cliente por ID (incluye inactivos)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewCustomerResponse(out))
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Página (desde 0)"  default(0)
// @Param        size     query  int     false  "Tamaño"            default(10)
// @Param        sortBy   query  string  false  "Campo"             default(displayName)
// @Param        sortDir  query  string  false  "asc | desc"        default(asc)
// @Success      200  {object}  dto.PageResponse[dto.CustomerResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewCustomerResponse))
}

// ListAll godoc
// @Summary      Listar todos los clientes activos (sin paginar, para selectores)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers/all [get]
func (h *CustomerHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapList(list, dto.NewCustomerResponse))
}

// Search godoc
// @Summary      Buscar clientes activos por display name, email o empresa
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Término"
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño"
// @Success      200  {object}  dto.PageResponse[dto.CustomerResponse]
// @Router       /api/customers/search [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	page, err := h.uc.Search(c.UserContext(), c.Query("q"), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewCustomerResponse))
}

// GetByType godoc
// @Summary      Listar clientes activos por tipo
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        type  path   string  true   "BUSINESS | INDIVIDUAL"
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño"
// @Success      200  {object}  dto.PageResponse[dto.CustomerResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers/type/{type} [get]
func (h *CustomerHandler) GetByType(c *fiber.Ctx) error {
	page, err := h.uc.GetByType(c.UserContext(), c.Params("type"), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapPage(page, dto.NewCustomerResponse))
}

// GetOutstanding godoc
// @Summary      Clientes activos con saldo por cobrar
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers/outstanding [get]
func (h *CustomerHandler) GetOutstanding(c *fiber.Ctx) error {
	list, err := h.uc.GetOutstanding(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MapList(list, dto.NewCustomerResponse))
}

// GetStatistics godoc
// @Summary      Estadísticas de clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerStatisticsResponse
// @Router       /api/customers/statistics [get]
func (h *CustomerHandler) GetStatistics(c *fiber.Ctx) error {
	out, err := h.uc.GetStatistics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
