package inventario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bymsoft/inventario-lotes/internal/domain"
	"github.com/bymsoft/inventario-lotes/internal/domain/entity"
	domInv "github.com/bymsoft/inventario-lotes/internal/domain/inventario"
)

// LineaSalida una línea del carrito: cuántas unidades sacar de un código.
type LineaSalida struct {
	Codigo   string
	Cantidad int
}

// SalidaInput el carrito confirmado. Líneas repetidas de un mismo código se suman.
type SalidaInput struct {
	Lineas []LineaSalida
}

// TomaSalida una extracción concreta contra un lote: lleva la fecha y los
// precios de ese lote, no los "actuales" del código.
type TomaSalida struct {
	Codigo           string
	Nombre           string
	Cantidad         int
	FechaVencimiento string
	PrecioCosto      decimal.Decimal
	PrecioVenta      decimal.Decimal
}

// SalidaResultado resumen de la operación confirmada.
type SalidaResultado struct {
	Operacion     string // uuid de la operación, para trazar las tomas en el log
	Tomas         []TomaSalida
	TotalUnidades int
}

// Disponible stock consultable antes de armar el carrito.
type Disponible struct {
	Codigo     string
	Nombre     string
	Marca      string
	StockTotal int
}

// ConsultarDisponible recarga y devuelve el stock agregado de un código
// (el paso de escaneo del flujo de salida).
func (a *Almacen) ConsultarDisponible(ctx context.Context, codigo string) (*Disponible, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}
	lotes, ok := a.inventario[codigo]
	if !ok {
		return nil, domain.ErrCodigoNoEncontrado
	}
	base := lotes[0]
	return &Disponible{
		Codigo:     codigo,
		Nombre:     base.Nombre,
		Marca:      base.Marca,
		StockTotal: domInv.StockTotal(lotes),
	}, nil
}

// ConfirmarSalida ejecuta el ciclo completo de una salida: recarga, valida que
// cada código tenga stock suficiente para lo pedido, y consume lote a lote en
// orden FIFO por vencimiento (los lotes sin fecha se agotan de último).
//
// El tope contra el stock disponible se aplica aquí, ANTES de invocar el motor
// de depleción: si alguna línea excede el stock agregado la salida completa se
// rechaza con ErrStockInsuficiente y nada se persiste. El motor en sí conserva
// su contrato de confiar en el caller.
//
// Cada toma contra un lote genera un movimiento "salida" propio en el diario,
// con el costo y precio de ese lote. Los lotes que quedan en cero se eliminan;
// un código sin lotes desaparece del almacén (su stock mínimo se conserva).
func (a *Almacen) ConfirmarSalida(ctx context.Context, in SalidaInput) (*SalidaResultado, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	// Sumar líneas repetidas preservando el orden de primera aparición.
	pedido := make(map[string]int)
	var orden []string
	for _, ln := range in.Lineas {
		if ln.Codigo == "" || ln.Cantidad <= 0 {
			return nil, domain.ErrEntradaInvalida
		}
		if _, visto := pedido[ln.Codigo]; !visto {
			orden = append(orden, ln.Codigo)
		}
		pedido[ln.Codigo] += ln.Cantidad
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	// Validación previa de todo el carrito: o sale todo, o no sale nada.
	for _, codigo := range orden {
		lotes, ok := a.inventario[codigo]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrCodigoNoEncontrado, codigo)
		}
		if disp := domInv.StockTotal(lotes); pedido[codigo] > disp {
			return nil, fmt.Errorf("%w: %s (pedido %d, disponible %d)",
				domain.ErrStockInsuficiente, codigo, pedido[codigo], disp)
		}
	}

	res := &SalidaResultado{Operacion: uuid.New().String()}
	for _, codigo := range orden {
		lotes := a.inventario[codigo]
		nombre := lotes[0].Nombre

		tomas, restantes, sobrante := domInv.Depletar(lotes, pedido[codigo])
		if sobrante > 0 {
			// Imposible tras la validación previa; si ocurre, el estado remoto
			// cambió bajo nuestros pies y se aborta sin persistir.
			return nil, fmt.Errorf("%w: %s", domain.ErrStockInsuficiente, codigo)
		}
		if len(restantes) == 0 {
			delete(a.inventario, codigo)
		} else {
			a.inventario[codigo] = restantes
		}

		for _, t := range tomas {
			if err := a.registrarMovimiento(ctx, entity.TipoSalida, codigo, nombre,
				t.Cantidad, t.Lote.FechaVencimiento, t.Lote.PrecioCosto, t.Lote.PrecioVenta); err != nil {
				return nil, err
			}
			res.Tomas = append(res.Tomas, TomaSalida{
				Codigo:           codigo,
				Nombre:           nombre,
				Cantidad:         t.Cantidad,
				FechaVencimiento: t.Lote.FechaVencimiento,
				PrecioCosto:      t.Lote.PrecioCosto,
				PrecioVenta:      t.Lote.PrecioVenta,
			})
			res.TotalUnidades += t.Cantidad
		}
	}

	if err := a.guardarInventario(ctx); err != nil {
		return nil, err
	}

	a.log.Info().
		Str("operacion", res.Operacion).
		Int("lineas", len(orden)).
		Int("unidades", res.TotalUnidades).
		Msg("salida confirmada")

	return res, nil
}
