package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// InventarioHandler visor de inventario y selector de productos (solo lectura).
type InventarioHandler struct {
	almacen *inventario.Almacen
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(almacen *inventario.Almacen) *InventarioHandler {
	return &InventarioHandler{almacen: almacen}
}

// Listar godoc
// @Summary      Inventario completo, un lote por fila
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        buscar  query  string  false  "filtro por código, nombre o marca (insensible a acentos)"
// @Success      200  {object}  dto.InventarioResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *InventarioHandler) Listar(c *fiber.Ctx) error {
	vista, err := h.almacen.VerInventario(c.Context(), c.Query("buscar"))
	if err != nil {
		return responderError(c, err)
	}
	out := dto.InventarioResponse{
		TotalFilas:    vista.TotalFilas,
		TotalUnidades: vista.TotalUnidades,
		Filas:         []dto.FilaInventarioDTO{},
	}
	for _, f := range vista.Filas {
		out.Filas = append(out.Filas, dto.FilaInventarioDTO{
			Codigo:           f.Codigo,
			Nombre:           f.Nombre,
			Marca:            f.Marca,
			Cantidad:         f.Cantidad,
			FechaVencimiento: f.FechaVencimiento,
			PrecioCosto:      f.PrecioCosto,
			PrecioVenta:      f.PrecioVenta,
		})
	}
	return c.JSON(out)
}

// Productos godoc
// @Summary      Lista de productos (código, nombre, marca) ordenada por nombre
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *InventarioHandler) Productos(c *fiber.Ctx) error {
	productos, err := h.almacen.ListarProductos(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.ProductoDTO, 0, len(productos))
	for _, p := range productos {
		out = append(out, dto.ProductoDTO{Codigo: p.Codigo, Nombre: p.Nombre, Marca: p.Marca})
	}
	return c.JSON(out)
}
