package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/pkg/logger"
)

// writeError traduce errores de dominio a la respuesta HTTP.
// Los fallos de almacenamiento se registran y no filtran el detalle del driver.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var vErr *domain.ValidationError
	var cErr *domain.ConflictError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message, Field: vErr.Field})
	case errors.As(err, &cErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: cErr.Message, Field: cErr.Field})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pageQuery lee page, size, sortBy y sortDir de la query string.
func pageQuery(c *fiber.Ctx) lifecycle.PageQuery {
	return lifecycle.PageQuery{
		Page:    c.QueryInt("page", 0),
		Size:    c.QueryInt("size", lifecycle.DefaultPageSize),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
	}
}
