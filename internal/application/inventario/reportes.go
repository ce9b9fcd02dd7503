package inventario

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bymsoft/inventario-lotes/internal/domain/entity"
	domInv "github.com/bymsoft/inventario-lotes/internal/domain/inventario"
)

// FilaInventario una fila del visor de inventario: un lote aplanado con su código.
type FilaInventario struct {
	Codigo           string
	Nombre           string
	Marca            string
	Cantidad         int
	FechaVencimiento string
	PrecioCosto      decimal.Decimal
	PrecioVenta      decimal.Decimal
}

// VistaInventario listado filtrado más sus métricas de cabecera.
type VistaInventario struct {
	Filas         []FilaInventario
	TotalFilas    int
	TotalUnidades int
}

// Producto entrada del selector de productos (el desplegable de "buscar").
type Producto struct {
	Codigo string
	Nombre string
	Marca  string
}

// NivelStock una fila del reporte de niveles: stock agregado vs mínimo.
type NivelStock struct {
	Codigo     string
	Nombre     string
	StockTotal int
	StockMin   int
	Estado     domInv.EstadoStock
}

// ReporteNiveles reporte completo con los contadores del semáforo.
type ReporteNiveles struct {
	Filas        []NivelStock
	Criticos     int
	Advertencias int
	Optimos      int
}

// AlertaVencimiento un lote próximo a vencer (o vencido).
type AlertaVencimiento struct {
	Estado           domInv.EstadoVencimiento
	FechaVencimiento string
	DiasRestantes    int
	Codigo           string
	Nombre           string
	Cantidad         int
}

// FiltroHistorial criterios del visor de movimientos. Fechas "YYYY-MM-DD";
// vacías = sin límite. Tipo "" = todos. Codigo "" = todos.
type FiltroHistorial struct {
	Desde  string
	Hasta  string // inclusive: el corte real es hasta+1 día
	Tipo   string
	Codigo string
}

// plegar normaliza para búsqueda: minúsculas y sin diacríticos, de modo que
// "Almendón" matchee "almendon".
func plegar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// contiene búsqueda por subcadena insensible a mayúsculas y acentos.
func contiene(campo, buscar string) bool {
	return strings.Contains(plegar(campo), plegar(buscar))
}

// VerInventario recarga y devuelve el inventario aplanado (una fila por lote),
// opcionalmente filtrado por texto libre sobre código, nombre o marca.
func (a *Almacen) VerInventario(ctx context.Context, buscar string) (*VistaInventario, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	vista := &VistaInventario{Filas: []FilaInventario{}}
	for _, codigo := range codigosOrdenados(a.inventario) {
		for _, l := range a.inventario[codigo] {
			if buscar != "" && !contiene(codigo, buscar) && !contiene(l.Nombre, buscar) && !contiene(l.Marca, buscar) {
				continue
			}
			vista.Filas = append(vista.Filas, FilaInventario{
				Codigo:           codigo,
				Nombre:           l.Nombre,
				Marca:            l.Marca,
				Cantidad:         l.Cantidad,
				FechaVencimiento: l.FechaVencimiento,
				PrecioCosto:      l.PrecioCosto,
				PrecioVenta:      l.PrecioVenta,
			})
			vista.TotalUnidades += l.Cantidad
		}
	}
	vista.TotalFilas = len(vista.Filas)
	return vista, nil
}

// ListarProductos recarga y devuelve (código, nombre, marca) por cada código,
// ordenado por nombre. Nombre/marca salen del primer lote del código.
func (a *Almacen) ListarProductos(ctx context.Context) ([]Producto, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	productos := make([]Producto, 0, len(a.inventario))
	for codigo, lotes := range a.inventario {
		if len(lotes) == 0 {
			continue
		}
		productos = append(productos, Producto{
			Codigo: codigo,
			Nombre: lotes[0].Nombre,
			Marca:  lotes[0].Marca,
		})
	}
	sort.Slice(productos, func(i, j int) bool {
		if productos[i].Nombre != productos[j].Nombre {
			return productos[i].Nombre < productos[j].Nombre
		}
		return productos[i].Codigo < productos[j].Codigo
	})
	return productos, nil
}

// NivelesStock recarga y arma el reporte del semáforo: unión externa de los
// códigos con stock y los códigos con mínimo configurado (puede haber mínimos
// de códigos sin stock y stock de códigos sin mínimo; ambos aparecen).
func (a *Almacen) NivelesStock(ctx context.Context, buscar string) (*ReporteNiveles, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	codigos := make(map[string]struct{}, len(a.inventario)+len(a.stockMinimo))
	for c := range a.inventario {
		codigos[c] = struct{}{}
	}
	for c := range a.stockMinimo {
		codigos[c] = struct{}{}
	}

	rep := &ReporteNiveles{Filas: []NivelStock{}}
	for c := range codigos {
		nombre := "Sin nombre"
		if lotes := a.inventario[c]; len(lotes) > 0 {
			nombre = lotes[0].Nombre
		}
		fila := NivelStock{
			Codigo:     c,
			Nombre:     nombre,
			StockTotal: domInv.StockTotal(a.inventario[c]),
			StockMin:   a.stockMinimo[c],
		}
		fila.Estado = domInv.ClasificarStock(fila.StockTotal, fila.StockMin)

		switch fila.Estado {
		case domInv.StockCritico:
			rep.Criticos++
		case domInv.StockAdvertencia:
			rep.Advertencias++
		default:
			rep.Optimos++
		}

		if buscar != "" && !contiene(c, buscar) {
			continue
		}
		rep.Filas = append(rep.Filas, fila)
	}

	// Primero lo urgente: críticos, advertencias, óptimos; dentro de cada
	// estado, menor stock primero.
	peso := map[domInv.EstadoStock]int{
		domInv.StockCritico:     0,
		domInv.StockAdvertencia: 1,
		domInv.StockOptimo:      2,
	}
	sort.Slice(rep.Filas, func(i, j int) bool {
		if peso[rep.Filas[i].Estado] != peso[rep.Filas[j].Estado] {
			return peso[rep.Filas[i].Estado] < peso[rep.Filas[j].Estado]
		}
		if rep.Filas[i].StockTotal != rep.Filas[j].StockTotal {
			return rep.Filas[i].StockTotal < rep.Filas[j].StockTotal
		}
		return rep.Filas[i].Codigo < rep.Filas[j].Codigo
	})
	return rep, nil
}

// AlertasVencimiento recarga y clasifica cada lote con fecha contra los tres
// umbrales, en días contados desde hoy. Los lotes sin fecha o con fecha
// ilegible quedan fuera (nunca se alertan), igual que los de estado Ninguna.
func (a *Almacen) AlertasVencimiento(ctx context.Context, criticos, advertencia, preventivos int) ([]AlertaVencimiento, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	hoy := a.ahora().In(zonaLocal)
	hoy = time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)

	alertas := []AlertaVencimiento{}
	for codigo, lotes := range a.inventario {
		for _, l := range lotes {
			if l.FechaVencimiento == "" {
				continue
			}
			fv, err := time.Parse("2006-01-02", l.FechaVencimiento)
			if err != nil {
				continue
			}
			dias := int(fv.Sub(hoy).Hours() / 24)
			estado := domInv.ClasificarVencimiento(dias, criticos, advertencia, preventivos)
			if estado == domInv.VencimientoNinguno {
				continue
			}
			alertas = append(alertas, AlertaVencimiento{
				Estado:           estado,
				FechaVencimiento: l.FechaVencimiento,
				DiasRestantes:    dias,
				Codigo:           codigo,
				Nombre:           l.Nombre,
				Cantidad:         l.Cantidad,
			})
		}
	}
	sort.Slice(alertas, func(i, j int) bool {
		if alertas[i].DiasRestantes != alertas[j].DiasRestantes {
			return alertas[i].DiasRestantes < alertas[j].DiasRestantes
		}
		return alertas[i].Codigo < alertas[j].Codigo
	})
	return alertas, nil
}

// Historial recarga y filtra el diario por rango de fechas, tipo y código.
// El rango incluye el día Hasta completo. Timestamps ilegibles solo pasan el
// filtro cuando no hay rango configurado.
func (a *Almacen) Historial(ctx context.Context, filtro FiltroHistorial) ([]entity.Movimiento, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	var desde, hasta time.Time
	if filtro.Desde != "" {
		desde, _ = time.Parse("2006-01-02", filtro.Desde)
	}
	if filtro.Hasta != "" {
		if t, err := time.Parse("2006-01-02", filtro.Hasta); err == nil {
			hasta = t.AddDate(0, 0, 1) // exclusivo: el día completo entra
		}
	}

	out := []entity.Movimiento{}
	for _, m := range a.movimientos {
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if filtro.Codigo != "" && m.Codigo != filtro.Codigo {
			continue
		}
		if !desde.IsZero() || !hasta.IsZero() {
			ts, err := time.Parse("2006-01-02T15:04:05", m.Timestamp)
			if err != nil {
				continue
			}
			if !desde.IsZero() && ts.Before(desde) {
				continue
			}
			if !hasta.IsZero() && !ts.Before(hasta) {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func codigosOrdenados(inventario map[string][]*entity.Lote) []string {
	codigos := make([]string, 0, len(inventario))
	for c := range inventario {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)
	return codigos
}
