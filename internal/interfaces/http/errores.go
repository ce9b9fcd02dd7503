package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/domain"
)

// responderError mapea errores de dominio a códigos HTTP. Cualquier otro error
// proviene del gateway de persistencia y se reporta como no disponible, con
// pista de remediación: en este diseño no hay más fuentes de fallo.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCodigoNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrCredenciales):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: err.Error()})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "STORE_UNAVAILABLE",
			Message: "almacén de datos inaccesible: verifique conectividad y permisos (" + err.Error() + ")",
		})
	}
}
