package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// SalidaHandler maneja el flujo de salida: consulta de disponibilidad y
// confirmación del carrito.
type SalidaHandler struct {
	almacen *inventario.Almacen
}

// NewSalidaHandler construye el handler.
func NewSalidaHandler(almacen *inventario.Almacen) *SalidaHandler {
	return &SalidaHandler{almacen: almacen}
}

// Disponible godoc
// @Summary      Consultar stock disponible de un código
// @Description  El paso de escaneo del flujo de salida: valida que el código
//               exista y devuelve su stock agregado.
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "código del producto"
// @Success      200  {object}  dto.DisponibleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salidas/disponible/{codigo} [get]
func (h *SalidaHandler) Disponible(c *fiber.Ctx) error {
	disp, err := h.almacen.ConsultarDisponible(c.Context(), c.Params("codigo"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.DisponibleResponse{
		Codigo:     disp.Codigo,
		Nombre:     disp.Nombre,
		Marca:      disp.Marca,
		StockTotal: disp.StockTotal,
	})
}

// Confirmar godoc
// @Summary      Confirmar una salida (carrito completo)
// @Description  Consume stock en orden FIFO por vencimiento, un movimiento
//               "salida" por lote tocado. Si alguna línea excede el stock
//               disponible se rechaza el carrito completo con 409.
// @Tags         salidas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaRequest  true  "líneas del carrito"
// @Success      201   {object}  dto.SalidaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salidas [post]
func (h *SalidaHandler) Confirmar(c *fiber.Ctx) error {
	var in dto.SalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventario.SalidaInput{}
	for _, ln := range in.Lineas {
		input.Lineas = append(input.Lineas, inventario.LineaSalida{Codigo: ln.Codigo, Cantidad: ln.Cantidad})
	}
	res, err := h.almacen.ConfirmarSalida(c.Context(), input)
	if err != nil {
		return responderError(c, err)
	}

	out := dto.SalidaResponse{
		Operacion:     res.Operacion,
		TotalUnidades: res.TotalUnidades,
		Tomas:         []dto.TomaDTO{},
	}
	for _, t := range res.Tomas {
		out.Tomas = append(out.Tomas, dto.TomaDTO{
			Codigo:           t.Codigo,
			Nombre:           t.Nombre,
			Cantidad:         t.Cantidad,
			FechaVencimiento: t.FechaVencimiento,
			PrecioCosto:      t.PrecioCosto,
			PrecioVenta:      t.PrecioVenta,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
