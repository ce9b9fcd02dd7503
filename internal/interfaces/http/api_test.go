package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bymsoft/inventario-lotes/internal/application/auth"
	"github.com/bymsoft/inventario-lotes/internal/application/dto"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
	"github.com/bymsoft/inventario-lotes/internal/infrastructure/sqlite"
	apphttp "github.com/bymsoft/inventario-lotes/internal/interfaces/http"
	"github.com/bymsoft/inventario-lotes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Armar la API completa sobre un store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func hashDe(t *testing.T, contrasena string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	almacen := inventario.NewAlmacen(store, logger.Nop())
	authUC := auth.NewAuthUseCase(
		[]auth.Usuario{
			{Nombre: "admin", Hash: hashDe(t, "admin123"), Rol: "administrador"},
			{Nombre: "carla", Hash: hashDe(t, "carla123"), Rol: "empleado"},
		},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Almacen:   almacen,
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, ruta, token string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, ruta, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, usuario, contrasena string) string {
	t.Helper()
	var out dto.LoginResponse
	code := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Usuario: usuario, Contrasena: contrasena}, &out)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := buildAPI(t)

	var out dto.ErrorResponse
	code := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Usuario: "admin", Contrasena: "incorrecta"}, &out)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Code)

	// Usuario inexistente: misma respuesta, sin filtrar cuál falló.
	code = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Usuario: "nadie", Contrasena: "x"}, &out)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: entrada → disponible → salida → reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompleto(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin", "admin123")

	// Entrada: código nuevo.
	var entrada dto.EntradaResponse
	code := doJSON(t, app, http.MethodPost, "/api/entradas", admin, fiber.Map{
		"codigo": "A1", "nombre": "Yerba", "marca": "B&M", "cantidad": 5,
		"fecha_vencimiento": "2026-12-01", "precio_costo": "100",
		"precio_venta": "150", "stock_min": 4,
	}, &entrada)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, entrada.CodigoNuevo)
	assert.Equal(t, 5, entrada.StockTotal)

	// Segunda partida del mismo código, vence antes: FIFO la consumirá primero.
	code = doJSON(t, app, http.MethodPost, "/api/entradas", admin, fiber.Map{
		"codigo": "A1", "cantidad": 3, "fecha_vencimiento": "2026-10-01",
	}, &entrada)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, entrada.PartidaNueva)
	assert.Equal(t, 8, entrada.StockTotal)

	// Disponible.
	var disp dto.DisponibleResponse
	code = doJSON(t, app, http.MethodGet, "/api/salidas/disponible/A1", admin, nil, &disp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 8, disp.StockTotal)
	assert.Equal(t, "Yerba", disp.Nombre)

	// Salida de 4: agota la partida que vence antes y toma 1 de la otra.
	var salida dto.SalidaResponse
	code = doJSON(t, app, http.MethodPost, "/api/salidas", admin,
		dto.SalidaRequest{Lineas: []dto.LineaSalidaRequest{{Codigo: "A1", Cantidad: 4}}}, &salida)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 4, salida.TotalUnidades)
	require.Len(t, salida.Tomas, 2)
	assert.Equal(t, "2026-10-01", salida.Tomas[0].FechaVencimiento)
	assert.Equal(t, 3, salida.Tomas[0].Cantidad)
	assert.Equal(t, "2026-12-01", salida.Tomas[1].FechaVencimiento)
	assert.Equal(t, 1, salida.Tomas[1].Cantidad)

	// Visor de inventario (admin): queda un solo lote con 4 unidades.
	var inv dto.InventarioResponse
	code = doJSON(t, app, http.MethodGet, "/api/inventario", admin, nil, &inv)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, inv.TotalFilas)
	assert.Equal(t, 4, inv.TotalUnidades)

	// Semáforo: 4 unidades con mínimo 4 = crítico.
	var niveles dto.NivelesResponse
	code = doJSON(t, app, http.MethodGet, "/api/reportes/stock", admin, nil, &niveles)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, niveles.Criticos)
	require.Len(t, niveles.Filas, 1)
	assert.Equal(t, "critico", niveles.Filas[0].Estado)

	// Historial: 2 entradas + 2 tomas de salida.
	var hist dto.HistorialResponse
	code = doJSON(t, app, http.MethodGet, "/api/movimientos", admin, nil, &hist)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, hist.Total)
	assert.Equal(t, "entrada", hist.Movimientos[0].Tipo)
	assert.Equal(t, "salida", hist.Movimientos[3].Tipo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de dominio mapeados a HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SalidaSinStock_Retorna409(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin", "admin123")

	code := doJSON(t, app, http.MethodPost, "/api/entradas", admin, fiber.Map{
		"codigo": "A1", "nombre": "Yerba", "cantidad": 2,
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	var out dto.ErrorResponse
	code = doJSON(t, app, http.MethodPost, "/api/salidas", admin,
		dto.SalidaRequest{Lineas: []dto.LineaSalidaRequest{{Codigo: "A1", Cantidad: 5}}}, &out)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestAPI_CodigoInexistente_Retorna404(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin", "admin123")

	var out dto.ErrorResponse
	code := doJSON(t, app, http.MethodGet, "/api/salidas/disponible/NO-EXISTE", admin, nil, &out)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestAPI_EntradaInvalida_Retorna400(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin", "admin123")

	var out dto.ErrorResponse
	code := doJSON(t, app, http.MethodPost, "/api/entradas", admin, fiber.Map{
		"codigo": "A1", "cantidad": 0,
	}, &out)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reparto de roles sobre las rutas reales
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EmpleadoOperaPeroNoVeReportes(t *testing.T) {
	app := buildAPI(t)
	empleado := login(t, app, "carla", "carla123")

	// El empleado registra entradas y salidas.
	code := doJSON(t, app, http.MethodPost, "/api/entradas", empleado, fiber.Map{
		"codigo": "A1", "nombre": "Yerba", "cantidad": 3,
	}, nil)
	assert.Equal(t, http.StatusCreated, code)

	var productos []dto.ProductoDTO
	code = doJSON(t, app, http.MethodGet, "/api/productos", empleado, nil, &productos)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, productos, 1)

	// Pero el visor, el historial y los reportes son del administrador.
	for _, ruta := range []string{
		"/api/inventario",
		"/api/movimientos",
		"/api/reportes/stock",
		"/api/reportes/vencimientos",
	} {
		var out dto.ErrorResponse
		code = doJSON(t, app, http.MethodGet, ruta, empleado, nil, &out)
		assert.Equal(t, http.StatusForbidden, code, ruta)
		assert.Equal(t, "FORBIDDEN", out.Code, ruta)
	}
}
