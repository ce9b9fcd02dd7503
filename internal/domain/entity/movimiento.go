package entity

import "github.com/shopspring/decimal"

// Tipos de movimiento del diario. Los literales viajan tal cual a la tabla movimientos.
const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
)

// Movimiento es un hecho inmutable del diario: una entrada o salida de stock.
// Una salida que consume varios lotes genera un movimiento por lote tocado,
// cada uno con el costo/precio de ESE lote (conserva el costo histórico de venta).
type Movimiento struct {
	Timestamp        string // ISO-8601 segundos, zona fija UTC-3
	Tipo             string // TipoEntrada | TipoSalida
	Codigo           string
	Nombre           string
	Cantidad         int
	FechaVencimiento string
	PrecioCosto      decimal.Decimal
	PrecioVenta      decimal.Decimal
}
