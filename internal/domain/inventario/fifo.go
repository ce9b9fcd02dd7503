package inventario

import (
	"sort"
	"time"

	"github.com/bymsoft/inventario-lotes/internal/domain/entity"
)

// Toma registra cuántas unidades se consumieron de un lote en una salida.
// El lote se copia por valor: conserva el costo y precio históricos aunque
// el lote original se agote y desaparezca del almacén.
type Toma struct {
	Lote     entity.Lote
	Cantidad int
}

// claveFIFO ordena por fecha de vencimiento parseada; lote sin fecha (o con
// fecha ilegible) vence "al final del tiempo" y se consume de último.
func claveFIFO(l *entity.Lote) (time.Time, bool) {
	if l.FechaVencimiento == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", l.FechaVencimiento)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OrdenarLotesFIFO devuelve una copia del slice ordenada por vencimiento
// ascendente, lotes sin fecha al final, empates en orden estable de llegada.
func OrdenarLotesFIFO(lotes []*entity.Lote) []*entity.Lote {
	orden := make([]*entity.Lote, len(lotes))
	copy(orden, lotes)
	sort.SliceStable(orden, func(i, j int) bool {
		ti, oki := claveFIFO(orden[i])
		tj, okj := claveFIFO(orden[j])
		if oki != okj {
			return oki // con fecha antes que sin fecha
		}
		if !oki {
			return false // ambos sin fecha: estable
		}
		return ti.Before(tj)
	})
	return orden
}

// Depletar consume `cantidad` unidades recorriendo los lotes en orden FIFO,
// mutando sus cantidades. Devuelve las tomas realizadas, los lotes que
// conservan unidades (en el orden recorrido) y el sobrante no satisfecho.
//
// El motor confía en el caller: no rechaza pedidos mayores al stock total,
// simplemente agota lo disponible y devuelve sobrante > 0. El tope contra el
// stock disponible lo aplica el caso de uso de salida antes de llamar aquí.
func Depletar(lotes []*entity.Lote, cantidad int) (tomas []Toma, restantes []*entity.Lote, sobrante int) {
	sobrante = cantidad
	for _, l := range OrdenarLotesFIFO(lotes) {
		if sobrante > 0 {
			toma := l.Cantidad
			if sobrante < toma {
				toma = sobrante
			}
			if toma > 0 {
				l.Cantidad -= toma
				sobrante -= toma
				tomas = append(tomas, Toma{Lote: entity.Lote{
					Nombre:           l.Nombre,
					Marca:            l.Marca,
					Cantidad:         toma,
					FechaVencimiento: l.FechaVencimiento,
					PrecioCosto:      l.PrecioCosto,
					PrecioVenta:      l.PrecioVenta,
				}, Cantidad: toma})
			}
		}
		// Lote agotado: desaparece del resultado.
		if l.Cantidad > 0 {
			restantes = append(restantes, l)
		}
	}
	return tomas, restantes, sobrante
}

// StockTotal suma las cantidades de todos los lotes.
func StockTotal(lotes []*entity.Lote) int {
	total := 0
	for _, l := range lotes {
		total += l.Cantidad
	}
	return total
}

// BuscarPartida localiza el lote cuya fecha de vencimiento coincide exactamente
// (igualdad de cadenas, incluida la cadena vacía). nil si no hay partida.
func BuscarPartida(lotes []*entity.Lote, fechaVencimiento string) *entity.Lote {
	for _, l := range lotes {
		if l.MismaPartida(fechaVencimiento) {
			return l
		}
	}
	return nil
}
