package dto

import "github.com/shopspring/decimal"

// EntradaRequest body para POST /api/entradas. En códigos existentes solo
// cantidad, fecha_vencimiento y stock_min se toman en cuenta; el resto de
// campos del producto es inmutable. StockMinimo es puntero para distinguir
// "no enviado" (se conserva el umbral vigente) de un 0 explícito.
type EntradaRequest struct {
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre,omitempty"`
	Marca            string          `json:"marca,omitempty"`
	Cantidad         int             `json:"cantidad"`
	FechaVencimiento string          `json:"fecha_vencimiento,omitempty"`
	PrecioCosto      decimal.Decimal `json:"precio_costo,omitempty"`
	PrecioVenta      decimal.Decimal `json:"precio_venta,omitempty"`
	StockMinimo      *int            `json:"stock_min,omitempty"`
}

// EntradaResponse resultado de la entrada.
type EntradaResponse struct {
	Mensaje      string `json:"mensaje"`
	CodigoNuevo  bool   `json:"codigo_nuevo"`
	PartidaNueva bool   `json:"partida_nueva"`
	StockTotal   int    `json:"stock_total"`
}

// LineaSalidaRequest una línea del carrito.
type LineaSalidaRequest struct {
	Codigo   string `json:"codigo"`
	Cantidad int    `json:"cantidad"`
}

// SalidaRequest body para POST /api/salidas: el carrito completo.
type SalidaRequest struct {
	Lineas []LineaSalidaRequest `json:"lineas"`
}

// TomaDTO una extracción contra un lote concreto.
type TomaDTO struct {
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Cantidad         int             `json:"cantidad"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	PrecioCosto      decimal.Decimal `json:"precio_costo"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
}

// SalidaResponse resultado de la salida confirmada.
type SalidaResponse struct {
	Operacion     string    `json:"operacion"`
	TotalUnidades int       `json:"total_unidades"`
	Tomas         []TomaDTO `json:"tomas"`
}

// DisponibleResponse stock consultable de un código (paso de escaneo).
type DisponibleResponse struct {
	Codigo     string `json:"codigo"`
	Nombre     string `json:"nombre"`
	Marca      string `json:"marca"`
	StockTotal int    `json:"stock_total"`
}

// FilaInventarioDTO un lote del visor de inventario.
type FilaInventarioDTO struct {
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Marca            string          `json:"marca"`
	Cantidad         int             `json:"cantidad"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	PrecioCosto      decimal.Decimal `json:"precio_costo"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
}

// InventarioResponse visor de inventario con métricas.
type InventarioResponse struct {
	TotalFilas    int                 `json:"total_filas"`
	TotalUnidades int                 `json:"total_unidades"`
	Filas         []FilaInventarioDTO `json:"filas"`
}

// ProductoDTO entrada del selector de productos.
type ProductoDTO struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Marca  string `json:"marca"`
}

// NivelStockDTO una fila del reporte del semáforo de stock.
type NivelStockDTO struct {
	Codigo     string `json:"codigo"`
	Nombre     string `json:"nombre"`
	StockTotal int    `json:"stock_total"`
	StockMin   int    `json:"stock_min"`
	Estado     string `json:"estado"`
}

// NivelesResponse reporte de niveles con contadores.
type NivelesResponse struct {
	Criticos     int             `json:"criticos"`
	Advertencias int             `json:"advertencias"`
	Optimos      int             `json:"optimos"`
	Filas        []NivelStockDTO `json:"filas"`
}

// AlertaVencimientoDTO un lote alertado por vencimiento.
type AlertaVencimientoDTO struct {
	Estado           string `json:"estado"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	DiasRestantes    int    `json:"dias_restantes"`
	Codigo           string `json:"codigo"`
	Nombre           string `json:"nombre"`
	Cantidad         int    `json:"cantidad"`
}

// MovimientoDTO una fila del historial.
type MovimientoDTO struct {
	Timestamp        string          `json:"timestamp"`
	Tipo             string          `json:"tipo"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Cantidad         int             `json:"cantidad"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	PrecioCosto      decimal.Decimal `json:"precio_costo"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
}

// HistorialResponse historial filtrado.
type HistorialResponse struct {
	Total       int             `json:"total"`
	Movimientos []MovimientoDTO `json:"movimientos"`
}
