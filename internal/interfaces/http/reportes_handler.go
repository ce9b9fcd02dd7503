package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// Umbrales de vencimiento por defecto, en días.
const (
	diasCriticosDef    = 3
	diasAdvertenciaDef = 7
	diasPreventivosDef = 12
)

// ReportesHandler reportes de niveles de stock y alertas de vencimiento.
type ReportesHandler struct {
	almacen *inventario.Almacen
}

// NewReportesHandler construye el handler.
func NewReportesHandler(almacen *inventario.Almacen) *ReportesHandler {
	return &ReportesHandler{almacen: almacen}
}

// NivelesStock godoc
// @Summary      Semáforo de niveles de stock por código
// @Description  Unión externa de códigos con stock y códigos con mínimo
//               configurado; estado crítico/advertencia/óptimo por código.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        buscar  query  string  false  "filtrar por código"
// @Success      200  {object}  dto.NivelesResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reportes/stock [get]
func (h *ReportesHandler) NivelesStock(c *fiber.Ctx) error {
	rep, err := h.almacen.NivelesStock(c.Context(), c.Query("buscar"))
	if err != nil {
		return responderError(c, err)
	}
	out := dto.NivelesResponse{
		Criticos:     rep.Criticos,
		Advertencias: rep.Advertencias,
		Optimos:      rep.Optimos,
		Filas:        []dto.NivelStockDTO{},
	}
	for _, f := range rep.Filas {
		out.Filas = append(out.Filas, dto.NivelStockDTO{
			Codigo:     f.Codigo,
			Nombre:     f.Nombre,
			StockTotal: f.StockTotal,
			StockMin:   f.StockMin,
			Estado:     string(f.Estado),
		})
	}
	return c.JSON(out)
}

// Vencimientos godoc
// @Summary      Alertas de vencimiento por lote
// @Description  Clasifica cada lote con fecha contra los tres umbrales de días
//               (configurables por query; por defecto 3/7/12). Lotes sin fecha
//               nunca se alertan.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        criticos     query  int  false  "días para alerta crítica (def. 3)"
// @Param        advertencia  query  int  false  "días para advertencia (def. 7)"
// @Param        preventivos  query  int  false  "días para preventiva (def. 12)"
// @Success      200  {array}  dto.AlertaVencimientoDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reportes/vencimientos [get]
func (h *ReportesHandler) Vencimientos(c *fiber.Ctx) error {
	alertas, err := h.almacen.AlertasVencimiento(c.Context(),
		consultaEntera(c, "criticos", diasCriticosDef),
		consultaEntera(c, "advertencia", diasAdvertenciaDef),
		consultaEntera(c, "preventivos", diasPreventivosDef),
	)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.AlertaVencimientoDTO, 0, len(alertas))
	for _, a := range alertas {
		out = append(out, dto.AlertaVencimientoDTO{
			Estado:           string(a.Estado),
			FechaVencimiento: a.FechaVencimiento,
			DiasRestantes:    a.DiasRestantes,
			Codigo:           a.Codigo,
			Nombre:           a.Nombre,
			Cantidad:         a.Cantidad,
		})
	}
	return c.JSON(out)
}

func consultaEntera(c *fiber.Ctx, clave string, def int) int {
	if v := c.Query(clave); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
