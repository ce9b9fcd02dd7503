package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// EntradaHandler maneja el registro de entradas de mercadería.
type EntradaHandler struct {
	almacen *inventario.Almacen
}

// NewEntradaHandler construye el handler.
func NewEntradaHandler(almacen *inventario.Almacen) *EntradaHandler {
	return &EntradaHandler{almacen: almacen}
}

// Registrar godoc
// @Summary      Registrar una entrada de mercadería
// @Description  Crea el código o la partida que corresponda y anota un
//               movimiento "entrada" en el diario. En códigos existentes los
//               datos del producto son inmutables: solo cantidad, fecha de
//               vencimiento y stock mínimo se toman del cuerpo.
// @Tags         entradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaRequest  true  "datos de la recepción"
// @Success      201   {object}  dto.EntradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/entradas [post]
func (h *EntradaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.EntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.almacen.RegistrarEntrada(c.Context(), inventario.EntradaInput{
		Codigo:           in.Codigo,
		Nombre:           in.Nombre,
		Marca:            in.Marca,
		Cantidad:         in.Cantidad,
		FechaVencimiento: in.FechaVencimiento,
		PrecioCosto:      in.PrecioCosto,
		PrecioVenta:      in.PrecioVenta,
		StockMinimo:      in.StockMinimo,
	})
	if err != nil {
		return responderError(c, err)
	}

	mensaje := fmt.Sprintf("se agregaron %d unidades a la partida existente", in.Cantidad)
	if res.CodigoNuevo {
		mensaje = fmt.Sprintf("producto %s creado con éxito", in.Nombre)
	} else if res.PartidaNueva {
		mensaje = fmt.Sprintf("se creó una nueva partida con %d unidades", in.Cantidad)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EntradaResponse{
		Mensaje:      mensaje,
		CodigoNuevo:  res.CodigoNuevo,
		PartidaNueva: res.PartidaNueva,
		StockTotal:   res.StockTotal,
	})
}
