package entity

import "github.com/shopspring/decimal"

// Lote representa una partida de stock de un código: cantidad recibida en una fecha
// de vencimiento concreta, con el costo y precio vigentes al momento de la entrada.
// Nombre y Marca están desnormalizados: todos los lotes de un mismo código deben
// llevar los mismos valores (el primero del código es el autoritativo).
type Lote struct {
	Nombre           string          // nombre de exhibición del producto
	Marca            string
	Cantidad         int             // unidades, nunca negativo
	FechaVencimiento string          // "YYYY-MM-DD", o "" = sin vencimiento
	PrecioCosto      decimal.Decimal
	PrecioVenta      decimal.Decimal
}

// MismaPartida indica si una fecha de vencimiento identifica este lote.
// Dos lotes de un código son la misma partida sii sus fechas coinciden como
// cadenas, incluido el caso de ambas vacías.
func (l *Lote) MismaPartida(fechaVencimiento string) bool {
	return l.FechaVencimiento == fechaVencimiento
}
