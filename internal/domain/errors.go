package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrCodigoNoEncontrado = errors.New("código no encontrado")
	ErrEntradaInvalida    = errors.New("entrada inválida")
	ErrStockInsuficiente  = errors.New("stock insuficiente")
	ErrCredenciales       = errors.New("usuario o contraseña incorrectos")
)
