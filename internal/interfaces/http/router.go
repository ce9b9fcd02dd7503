package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/auth"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Almacen   *inventario.Almacen
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Entradas y salidas están abiertas a
// ambos roles; el visor de inventario, el historial y los reportes quedan
// restringidos al administrador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	entradaHandler := NewEntradaHandler(deps.Almacen)
	protected.Post("/entradas", entradaHandler.Registrar)

	salidaHandler := NewSalidaHandler(deps.Almacen)
	protected.Get("/salidas/disponible/:codigo", salidaHandler.Disponible)
	protected.Post("/salidas", salidaHandler.Confirmar)

	inventarioHandler := NewInventarioHandler(deps.Almacen)
	protected.Get("/productos", inventarioHandler.Productos)

	// Solo administrador
	admin := protected.Group("/", RequireRole("administrador"))
	admin.Get("/inventario", inventarioHandler.Listar)

	movimientosHandler := NewMovimientosHandler(deps.Almacen)
	admin.Get("/movimientos", movimientosHandler.Historial)

	reportesHandler := NewReportesHandler(deps.Almacen)
	admin.Get("/reportes/stock", reportesHandler.NivelesStock)
	admin.Get("/reportes/vencimientos", reportesHandler.Vencimientos)
}
