package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// MovimientosHandler historial del diario de movimientos.
type MovimientosHandler struct {
	almacen *inventario.Almacen
}

// NewMovimientosHandler construye el handler.
func NewMovimientosHandler(almacen *inventario.Almacen) *MovimientosHandler {
	return &MovimientosHandler{almacen: almacen}
}

// Historial godoc
// @Summary      Historial de movimientos filtrado
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "YYYY-MM-DD inclusive"
// @Param        hasta   query  string  false  "YYYY-MM-DD inclusive (día completo)"
// @Param        tipo    query  string  false  "entrada | salida; vacío = todos"
// @Param        codigo  query  string  false  "filtrar por código"
// @Success      200  {object}  dto.HistorialResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovimientosHandler) Historial(c *fiber.Ctx) error {
	movs, err := h.almacen.Historial(c.Context(), inventario.FiltroHistorial{
		Desde:  c.Query("desde"),
		Hasta:  c.Query("hasta"),
		Tipo:   c.Query("tipo"),
		Codigo: c.Query("codigo"),
	})
	if err != nil {
		return responderError(c, err)
	}
	out := dto.HistorialResponse{Total: len(movs), Movimientos: []dto.MovimientoDTO{}}
	for _, m := range movs {
		out.Movimientos = append(out.Movimientos, dto.MovimientoDTO{
			Timestamp:        m.Timestamp,
			Tipo:             m.Tipo,
			Codigo:           m.Codigo,
			Nombre:           m.Nombre,
			Cantidad:         m.Cantidad,
			FechaVencimiento: m.FechaVencimiento,
			PrecioCosto:      m.PrecioCosto,
			PrecioVenta:      m.PrecioVenta,
		})
	}
	return c.JSON(out)
}
