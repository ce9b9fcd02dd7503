package inventario

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bymsoft/inventario-lotes/internal/domain"
	"github.com/bymsoft/inventario-lotes/internal/domain/entity"
	domInv "github.com/bymsoft/inventario-lotes/internal/domain/inventario"
)

// EntradaInput datos de una recepción de mercadería.
// En códigos ya existentes, Nombre/Marca/PrecioCosto/PrecioVenta se ignoran:
// los valores autoritativos son los del primer lote del código (los campos son
// inmutables por esta operación; no hay vía para corregirlos una vez creados).
// StockMinimo en nil significa "conservar el umbral vigente"; un valor
// explícito (incluido 0) lo sobreescribe donde la regla de partida lo permite.
type EntradaInput struct {
	Codigo           string
	Nombre           string
	Marca            string
	Cantidad         int
	FechaVencimiento string // texto libre; se normaliza a "YYYY-MM-DD" o ""
	PrecioCosto      decimal.Decimal
	PrecioVenta      decimal.Decimal
	StockMinimo      *int
}

// EntradaResultado describe qué produjo la entrada.
type EntradaResultado struct {
	CodigoNuevo  bool
	PartidaNueva bool
	StockTotal   int // stock agregado del código tras la entrada
}

// RegistrarEntrada ejecuta el ciclo completo de una entrada: recarga el estado,
// aplica la recepción sobre el lote correspondiente y persiste (reescritura de
// inventario y stock_minimo más un único movimiento "entrada" en el diario).
//
// Reglas de partida:
//   - código nuevo: se crea con un solo lote y se fija su stock mínimo
//     (0 si no viene en el input);
//   - partida existente (misma fecha de vencimiento): solo incrementa cantidad,
//     el stock mínimo NO se toca (asimetría intencional del contrato);
//   - partida nueva de un código existente: lote adicional que hereda
//     nombre/marca/precios del código; el stock mínimo se sobreescribe solo si
//     el input trae un valor, si no se conserva el vigente.
func (a *Almacen) RegistrarEntrada(ctx context.Context, in EntradaInput) (*EntradaResultado, error) {
	if in.Codigo == "" || in.Cantidad <= 0 {
		return nil, domain.ErrEntradaInvalida
	}
	fv := domInv.NormalizarFecha(in.FechaVencimiento)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.recargar(ctx); err != nil {
		return nil, err
	}

	res := &EntradaResultado{}
	nombre, costo, venta := in.Nombre, in.PrecioCosto, in.PrecioVenta

	lotes, existe := a.inventario[in.Codigo]
	switch {
	case !existe:
		a.inventario[in.Codigo] = []*entity.Lote{{
			Nombre:           in.Nombre,
			Marca:            in.Marca,
			Cantidad:         in.Cantidad,
			FechaVencimiento: fv,
			PrecioCosto:      in.PrecioCosto,
			PrecioVenta:      in.PrecioVenta,
		}}
		a.stockMinimo[in.Codigo] = 0
		if in.StockMinimo != nil {
			a.stockMinimo[in.Codigo] = *in.StockMinimo
		}
		res.CodigoNuevo = true
		res.PartidaNueva = true

	default:
		base := lotes[0]
		nombre, costo, venta = base.Nombre, base.PrecioCosto, base.PrecioVenta

		if partida := domInv.BuscarPartida(lotes, fv); partida != nil {
			partida.Cantidad += in.Cantidad
		} else {
			a.inventario[in.Codigo] = append(lotes, &entity.Lote{
				Nombre:           base.Nombre,
				Marca:            base.Marca,
				Cantidad:         in.Cantidad,
				FechaVencimiento: fv,
				PrecioCosto:      base.PrecioCosto,
				PrecioVenta:      base.PrecioVenta,
			})
			if in.StockMinimo != nil {
				a.stockMinimo[in.Codigo] = *in.StockMinimo
			}
			res.PartidaNueva = true
		}
	}

	res.StockTotal = domInv.StockTotal(a.inventario[in.Codigo])

	// Persistencia sin atomicidad entre tablas: cada fallo se reporta, ninguno
	// revierte a los demás.
	err := juntar(
		a.guardarInventario(ctx),
		a.guardarStockMinimo(ctx),
		a.registrarMovimiento(ctx, entity.TipoEntrada, in.Codigo, nombre, in.Cantidad, fv, costo, venta),
	)
	if err != nil {
		return nil, fmt.Errorf("persistir entrada: %w", err)
	}

	a.log.Info().
		Str("codigo", in.Codigo).
		Int("cantidad", in.Cantidad).
		Str("fecha_vencimiento", fv).
		Bool("codigo_nuevo", res.CodigoNuevo).
		Bool("partida_nueva", res.PartidaNueva).
		Msg("entrada registrada")

	return res, nil
}
