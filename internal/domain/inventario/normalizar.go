package inventario

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Funciones totales de normalización: las celdas remotas llegan como texto libre
// (números con decimales, fechas con hora, vacíos) y aquí se degradan a valores
// seguros en lugar de propagar errores. Una celda ilegible nunca tumba una carga.

// NormalizarFecha lleva una fecha-texto a "YYYY-MM-DD": recorta espacios y
// descarta la hora cortando en el primer espacio o 'T'. Vacío queda vacío.
func NormalizarFecha(valor string) string {
	v := strings.TrimSpace(valor)
	if v == "" {
		return ""
	}
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	return v
}

// FechaISO formatea un time.Time como "YYYY-MM-DD".
func FechaISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// AEntero convierte una celda a entero: vacío o ilegible -> porDefecto.
// Acepta decimales ("3.0", "3.7") truncando, igual que una conversión int(float).
func AEntero(valor string, porDefecto int) int {
	v := strings.TrimSpace(valor)
	if v == "" {
		return porDefecto
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return porDefecto
}

// ADecimal convierte una celda a decimal: vacío o ilegible -> porDefecto.
// Tolera separador de miles con coma ("1,5" se lee como "1.5").
func ADecimal(valor string, porDefecto decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(valor)
	if v == "" {
		return porDefecto
	}
	if d, err := decimal.NewFromString(v); err == nil {
		return d
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ".")); err == nil {
		return d
	}
	return porDefecto
}
