package inventario

// EstadoStock es el semáforo de nivel de stock de un código.
type EstadoStock string

const (
	StockCritico     EstadoStock = "critico"
	StockAdvertencia EstadoStock = "advertencia"
	StockOptimo      EstadoStock = "optimo"
)

// ClasificarStock compara el stock agregado contra el mínimo configurado:
//
//	total <= minimo         -> Crítico
//	total <= 1.5 * minimo   -> Advertencia
//	en otro caso            -> Óptimo
//
// El corte 1.5x se evalúa en enteros (2*total <= 3*minimo) para no depender de
// redondeo flotante. Con minimo == 0 cualquier stock positivo queda Óptimo y
// solo el stock cero es Crítico; ese borde es intencional.
func ClasificarStock(total, minimo int) EstadoStock {
	switch {
	case total <= minimo:
		return StockCritico
	case 2*total <= 3*minimo:
		return StockAdvertencia
	default:
		return StockOptimo
	}
}

// EstadoVencimiento es la urgencia de un lote según los días que le quedan.
type EstadoVencimiento string

const (
	VencimientoVencido     EstadoVencimiento = "vencido"
	VencimientoCritico     EstadoVencimiento = "critica"
	VencimientoAdvertencia EstadoVencimiento = "advertencia"
	VencimientoPreventivo  EstadoVencimiento = "preventiva"
	VencimientoNinguno     EstadoVencimiento = "ninguna"
)

// ClasificarVencimiento evalúa los umbrales en orden de prioridad fijo,
// sin exigir que estén ordenados entre sí (una configuración incoherente
// simplemente se evalúa rama a rama):
//
//	dias < 0            -> Vencido
//	dias <= criticos    -> Crítica
//	dias <= advertencia -> Advertencia
//	dias <= preventivos -> Preventiva
//	en otro caso        -> Ninguna (no se alerta)
//
// Los lotes sin fecha de vencimiento no pasan por aquí: nunca se alertan.
func ClasificarVencimiento(dias, criticos, advertencia, preventivos int) EstadoVencimiento {
	switch {
	case dias < 0:
		return VencimientoVencido
	case dias <= criticos:
		return VencimientoCritico
	case dias <= advertencia:
		return VencimientoAdvertencia
	case dias <= preventivos:
		return VencimientoPreventivo
	default:
		return VencimientoNinguno
	}
}
