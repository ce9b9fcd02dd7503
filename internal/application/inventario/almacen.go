package inventario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bymsoft/inventario-lotes/internal/domain/entity"
	domInv "github.com/bymsoft/inventario-lotes/internal/domain/inventario"
	"github.com/bymsoft/inventario-lotes/pkg/logger"
)

// zonaLocal: el negocio opera en UTC-3 fijo; los timestamps del diario se
// registran en esa zona con precisión de segundos y sin sufijo de offset.
var zonaLocal = time.FixedZone("UTC-3", -3*60*60)

// Almacen es la copia en memoria del estado autoritativo remoto: el mapa
// código -> lotes, la tabla de stock mínimo y el diario de movimientos.
// La memoria es solo caché: cada ciclo de trabajo recarga todo desde el
// TableStore antes de mutar y reescribe las tablas completas al terminar.
//
// El mutex serializa el ciclo recargar-mutar-persistir dentro del proceso,
// de modo que dos peticiones concurrentes no se pisen las escrituras. Entre
// procesos distintos la carrera de actualización perdida sigue abierta: el
// despliegue asume un único escritor activo.
type Almacen struct {
	mu    sync.Mutex
	store TableStore
	log   *logger.Logger
	ahora func() time.Time

	inventario  map[string][]*entity.Lote
	stockMinimo map[string]int
	movimientos []entity.Movimiento
}

// NewAlmacen construye el almacén vacío; Recargar lo puebla.
func NewAlmacen(store TableStore, log *logger.Logger) *Almacen {
	return &Almacen{
		store:       store,
		log:         log,
		ahora:       time.Now,
		inventario:  make(map[string][]*entity.Lote),
		stockMinimo: make(map[string]int),
	}
}

// FijarReloj reemplaza la fuente de tiempo. Para tests.
func (a *Almacen) FijarReloj(f func() time.Time) {
	a.ahora = f
}

// marcaTiempo devuelve el timestamp del diario: ISO-8601 a segundos en UTC-3.
func (a *Almacen) marcaTiempo() string {
	return a.ahora().In(zonaLocal).Format("2006-01-02T15:04:05")
}

// Recargar recarga las tres tablas desde el gateway, descartando el estado en
// memoria. Un fallo de conectividad interrumpe el ciclo; las celdas ilegibles
// se absorben con valores por defecto y las filas sin código se saltan.
func (a *Almacen) Recargar(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recargar(ctx)
}

// recargar requiere a.mu tomado.
func (a *Almacen) recargar(ctx context.Context) error {
	if err := a.store.EnsureTables(ctx); err != nil {
		return fmt.Errorf("verificar tablas: %w", err)
	}

	inv, err := a.store.LoadTable(ctx, TablaInventario)
	if err != nil {
		return fmt.Errorf("leer inventario: %w", err)
	}
	min, err := a.store.LoadTable(ctx, TablaStockMinimo)
	if err != nil {
		return fmt.Errorf("leer stock mínimo: %w", err)
	}
	mov, err := a.store.LoadTable(ctx, TablaMovimientos)
	if err != nil {
		return fmt.Errorf("leer movimientos: %w", err)
	}

	a.inventario = make(map[string][]*entity.Lote)
	a.stockMinimo = make(map[string]int)
	a.movimientos = a.movimientos[:0]

	for _, fila := range saltarCabecera(inv) {
		fila = rellenar(fila, len(CabeceraInventario))
		codigo := fila[0]
		if codigo == "" {
			continue // fila sin código: tolerancia intencional, no error
		}
		lote := &entity.Lote{
			Nombre:           fila[1],
			Marca:            fila[2],
			Cantidad:         domInv.AEntero(fila[3], 0),
			FechaVencimiento: domInv.NormalizarFecha(fila[4]),
			PrecioCosto:      domInv.ADecimal(fila[5], decimal.Zero),
			PrecioVenta:      domInv.ADecimal(fila[6], decimal.Zero),
		}
		a.inventario[codigo] = append(a.inventario[codigo], lote)
	}

	for _, fila := range saltarCabecera(min) {
		fila = rellenar(fila, len(CabeceraStockMinimo))
		if fila[0] == "" {
			continue
		}
		a.stockMinimo[fila[0]] = domInv.AEntero(fila[1], 0)
	}

	for _, fila := range saltarCabecera(mov) {
		fila = rellenar(fila, len(CabeceraMovimientos))
		a.movimientos = append(a.movimientos, entity.Movimiento{
			Timestamp:        fila[0],
			Tipo:             fila[1],
			Codigo:           fila[2],
			Nombre:           fila[3],
			Cantidad:         domInv.AEntero(fila[4], 0),
			FechaVencimiento: domInv.NormalizarFecha(fila[5]),
			PrecioCosto:      domInv.ADecimal(fila[6], decimal.Zero),
			PrecioVenta:      domInv.ADecimal(fila[7], decimal.Zero),
		})
	}

	return nil
}

// StockTotal devuelve el stock agregado de un código; 0 si no existe.
func (a *Almacen) StockTotal(codigo string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domInv.StockTotal(a.inventario[codigo])
}

// Lotes devuelve una copia de los lotes de un código (nil si no existe).
func (a *Almacen) Lotes(codigo string) []entity.Lote {
	a.mu.Lock()
	defer a.mu.Unlock()
	lotes := a.inventario[codigo]
	out := make([]entity.Lote, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, *l)
	}
	return out
}

// Movimientos devuelve una copia del diario en orden de inserción.
func (a *Almacen) Movimientos() []entity.Movimiento {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]entity.Movimiento, len(a.movimientos))
	copy(out, a.movimientos)
	return out
}

// StockMinimo devuelve el umbral configurado y si existe.
func (a *Almacen) StockMinimo(codigo string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.stockMinimo[codigo]
	return m, ok
}

// guardarInventario reescribe la tabla inventario completa: una fila por lote,
// códigos en orden alfabético para una salida determinista. Requiere a.mu.
func (a *Almacen) guardarInventario(ctx context.Context) error {
	codigos := make([]string, 0, len(a.inventario))
	for c := range a.inventario {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)

	filas := make([][]string, 0, len(codigos))
	for _, c := range codigos {
		for _, l := range a.inventario[c] {
			filas = append(filas, []string{
				c, l.Nombre, l.Marca, strconv.Itoa(l.Cantidad),
				l.FechaVencimiento, l.PrecioCosto.String(), l.PrecioVenta.String(),
			})
		}
	}
	if err := a.store.ReplaceTable(ctx, TablaInventario, CabeceraInventario, filas); err != nil {
		return fmt.Errorf("guardar inventario: %w", err)
	}
	return nil
}

// guardarStockMinimo reescribe la tabla stock_minimo completa. Requiere a.mu.
func (a *Almacen) guardarStockMinimo(ctx context.Context) error {
	codigos := make([]string, 0, len(a.stockMinimo))
	for c := range a.stockMinimo {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)

	filas := make([][]string, 0, len(codigos))
	for _, c := range codigos {
		filas = append(filas, []string{c, strconv.Itoa(a.stockMinimo[c])})
	}
	if err := a.store.ReplaceTable(ctx, TablaStockMinimo, CabeceraStockMinimo, filas); err != nil {
		return fmt.Errorf("guardar stock mínimo: %w", err)
	}
	return nil
}

// registrarMovimiento construye el registro con el timestamp actual, lo anexa
// al diario remoto (fila única, nunca rewrite) y luego a la copia en memoria.
// Requiere a.mu.
func (a *Almacen) registrarMovimiento(ctx context.Context, tipo, codigo, nombre string, cantidad int, fechaVencimiento string, precioCosto, precioVenta decimal.Decimal) error {
	mov := entity.Movimiento{
		Timestamp:        a.marcaTiempo(),
		Tipo:             tipo,
		Codigo:           codigo,
		Nombre:           nombre,
		Cantidad:         cantidad,
		FechaVencimiento: fechaVencimiento,
		PrecioCosto:      precioCosto,
		PrecioVenta:      precioVenta,
	}
	fila := []string{
		mov.Timestamp, mov.Tipo, mov.Codigo, mov.Nombre,
		strconv.Itoa(mov.Cantidad), mov.FechaVencimiento,
		mov.PrecioCosto.String(), mov.PrecioVenta.String(),
	}
	if err := a.store.AppendRow(ctx, TablaMovimientos, fila); err != nil {
		return fmt.Errorf("registrar movimiento: %w", err)
	}
	a.movimientos = append(a.movimientos, mov)
	return nil
}

// saltarCabecera descarta la primera fila si existe.
func saltarCabecera(filas [][]string) [][]string {
	if len(filas) == 0 {
		return nil
	}
	return filas[1:]
}

// rellenar extiende una fila con celdas vacías hasta el ancho de la cabecera.
func rellenar(fila []string, ancho int) []string {
	for len(fila) < ancho {
		fila = append(fila, "")
	}
	return fila
}

// juntar combina errores de escritura independientes: no hay atomicidad entre
// tablas, así que un fallo en una no revierte las demás y todos se reportan.
func juntar(errs ...error) error {
	return errors.Join(errs...)
}
