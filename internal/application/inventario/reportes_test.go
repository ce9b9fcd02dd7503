package inventario_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
	domInv "github.com/bymsoft/inventario-lotes/internal/domain/inventario"
)

func TestVerInventario_BusquedaSinAcentos(t *testing.T) {
	alm, store := nuevoAlmacen(t)
	ctx := context.Background()

	sembrarLotes(t, store, [][]string{
		{"A1", "Almendón", "Ñandú", "5", "2026-12-01", "100", "150"},
		{"B2", "Yerba", "B&M", "3", "", "80", "120"},
	})

	vista, err := alm.VerInventario(ctx, "almendon")
	require.NoError(t, err)
	require.Len(t, vista.Filas, 1)
	assert.Equal(t, "A1", vista.Filas[0].Codigo)
	assert.Equal(t, 5, vista.TotalUnidades)

	// También matchea por marca, plegando el lado del inventario.
	vista, err = alm.VerInventario(ctx, "ÑANDU")
	require.NoError(t, err)
	require.Len(t, vista.Filas, 1)

	vista, err = alm.VerInventario(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, vista.TotalFilas)
	assert.Equal(t, 8, vista.TotalUnidades)
}

func TestListarProductos_UnoPorCodigoOrdenadoPorNombre(t *testing.T) {
	alm, store := nuevoAlmacen(t)
	ctx := context.Background()

	sembrarLotes(t, store, [][]string{
		{"C3", "Zanahoria", "Huerta", "2", "", "10", "20"},
		{"A1", "Yerba", "B&M", "5", "2026-12-01", "100", "150"},
		{"A1", "Yerba", "B&M", "3", "2027-01-01", "100", "150"},
	})

	productos, err := alm.ListarProductos(ctx)
	require.NoError(t, err)
	require.Len(t, productos, 2, "un código con varios lotes aparece una sola vez")
	assert.Equal(t, "Yerba", productos[0].Nombre)
	assert.Equal(t, "Zanahoria", productos[1].Nombre)
}

func TestNivelesStock_UnionYSemaforo(t *testing.T) {
	alm, store := nuevoAlmacen(t)
	ctx := context.Background()

	sembrarLotes(t, store, [][]string{
		{"A1", "Yerba", "B&M", "10", "", "1", "2"},   // min 10 -> crítico
		{"B2", "Mate", "B&M", "15", "", "1", "2"},    // min 10 -> advertencia
		{"C3", "Bombilla", "B&M", "50", "", "1", "2"}, // sin mínimo -> óptimo
	})
	require.NoError(t, store.ReplaceTable(ctx, inventario.TablaStockMinimo,
		inventario.CabeceraStockMinimo, [][]string{
			{"A1", "10"},
			{"B2", "10"},
			{"D4", "5"}, // mínimo sin stock: entra por la unión, crítico
		}))

	rep, err := alm.NivelesStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, rep.Filas, 4)
	assert.Equal(t, 2, rep.Criticos)
	assert.Equal(t, 1, rep.Advertencias)
	assert.Equal(t, 1, rep.Optimos)

	// Orden: críticos primero, dentro del estado por stock ascendente.
	assert.Equal(t, "D4", rep.Filas[0].Codigo)
	assert.Equal(t, "Sin nombre", rep.Filas[0].Nombre)
	assert.Equal(t, domInv.StockCritico, rep.Filas[0].Estado)
	assert.Equal(t, "A1", rep.Filas[1].Codigo)
	assert.Equal(t, "B2", rep.Filas[2].Codigo)
	assert.Equal(t, "C3", rep.Filas[3].Codigo)

	// La búsqueda filtra filas pero los contadores siguen siendo globales.
	rep, err = alm.NivelesStock(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, rep.Filas, 1)
	assert.Equal(t, 2, rep.Criticos)
	assert.Equal(t, 1, rep.Optimos)
}

func TestAlertasVencimiento_ClasificaYOrdena(t *testing.T) {
	alm, store := nuevoAlmacen(t)
	ctx := context.Background()

	// Hoy (reloj fijo) es 2026-08-28 en UTC-3.
	sembrarLotes(t, store, [][]string{
		{"V1", "Leche", "Tambo", "3", "2026-08-27", "1", "2"},   // -1 día: vencido
		{"V2", "Queso", "Tambo", "4", "2026-08-30", "1", "2"},   // 2 días: crítica
		{"V3", "Crema", "Tambo", "5", "2026-09-04", "1", "2"},   // 7 días: advertencia
		{"V4", "Manteca", "Tambo", "6", "2026-09-09", "1", "2"}, // 12 días: preventiva
		{"V5", "Dulce", "Tambo", "7", "2026-09-10", "1", "2"},   // 13 días: fuera
		{"V6", "Sal", "Mar", "8", "", "1", "2"},                 // sin fecha: fuera
		{"V7", "Azúcar", "Ingenio", "9", "pronto", "1", "2"},    // ilegible: fuera
	})

	alertas, err := alm.AlertasVencimiento(ctx, 3, 7, 12)
	require.NoError(t, err)
	require.Len(t, alertas, 4)

	assert.Equal(t, "V1", alertas[0].Codigo)
	assert.Equal(t, domInv.VencimientoVencido, alertas[0].Estado)
	assert.Equal(t, -1, alertas[0].DiasRestantes)

	assert.Equal(t, "V2", alertas[1].Codigo)
	assert.Equal(t, domInv.VencimientoCritico, alertas[1].Estado)

	assert.Equal(t, "V3", alertas[2].Codigo)
	assert.Equal(t, domInv.VencimientoAdvertencia, alertas[2].Estado)

	assert.Equal(t, "V4", alertas[3].Codigo)
	assert.Equal(t, domInv.VencimientoPreventivo, alertas[3].Estado)
}

func TestHistorial_Filtros(t *testing.T) {
	alm, store := nuevoAlmacen(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureTables(ctx))
	filas := [][]string{
		{"2026-08-26T09:00:00", "entrada", "A1", "Yerba", "10", "2026-12-01", "100", "150"},
		{"2026-08-27T10:30:00", "salida", "A1", "Yerba", "3", "2026-12-01", "100", "150"},
		{"2026-08-28T08:15:00", "entrada", "B2", "Mate", "5", "", "80", "120"},
		{"sin-fecha", "salida", "B2", "Mate", "1", "", "80", "120"},
	}
	require.NoError(t, store.ReplaceTable(ctx, inventario.TablaMovimientos,
		inventario.CabeceraMovimientos, filas))

	// Sin filtros pasa todo, incluido el timestamp ilegible.
	movs, err := alm.Historial(ctx, inventario.FiltroHistorial{})
	require.NoError(t, err)
	assert.Len(t, movs, 4)

	// Rango: Hasta es inclusive del día completo; el ilegible queda fuera.
	movs, err = alm.Historial(ctx, inventario.FiltroHistorial{Desde: "2026-08-27", Hasta: "2026-08-27"})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "2026-08-27T10:30:00", movs[0].Timestamp)

	movs, err = alm.Historial(ctx, inventario.FiltroHistorial{Tipo: "entrada"})
	require.NoError(t, err)
	assert.Len(t, movs, 2)

	movs, err = alm.Historial(ctx, inventario.FiltroHistorial{Codigo: "B2", Tipo: "salida"})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "sin-fecha", movs[0].Timestamp)
}
