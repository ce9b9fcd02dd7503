package inventario

import "context"

// Nombres de tabla del almacén tabular remoto.
const (
	TablaInventario  = "inventario"
	TablaStockMinimo = "stock_minimo"
	TablaMovimientos = "movimientos"
)

// Cabeceras de cada tabla. El orden de columnas es contrato de compatibilidad:
// los adaptadores escriben y leen celdas crudas exactamente en este orden.
var (
	CabeceraInventario  = []string{"codigo", "nombre", "marca", "cantidad", "fecha_vencimiento", "precio_costo", "precio_venta"}
	CabeceraStockMinimo = []string{"codigo", "stock_min"}
	CabeceraMovimientos = []string{"timestamp", "tipo", "codigo", "nombre", "cantidad", "fecha_vencimiento", "precio_costo", "precio_venta"}
)

// TableStore define el puerto del gateway de persistencia: un almacén de hojas
// tabulares con celdas de texto crudo, al estilo planilla. La primera fila de
// cada hoja es la cabecera. No hay atomicidad entre hojas: cada escritura
// falla o persiste por separado (brecha de consistencia conocida, asumible
// con un único escritor activo).
type TableStore interface {
	// EnsureTables crea las hojas que falten, con su fila de cabecera.
	EnsureTables(ctx context.Context) error
	// LoadTable devuelve todas las filas de la hoja, cabecera incluida.
	LoadTable(ctx context.Context, tabla string) ([][]string, error)
	// ReplaceTable sobreescribe la hoja completa: borra y escribe cabecera + filas.
	ReplaceTable(ctx context.Context, tabla string, cabecera []string, filas [][]string) error
	// AppendRow agrega una única fila al final, sin leer el contenido existente.
	// Es la única operación del diario de movimientos: siempre append, nunca rewrite.
	AppendRow(ctx context.Context, tabla string, fila []string) error
}
