package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bymsoft/inventario-lotes/internal/application/auth"
	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
	infrapg "github.com/bymsoft/inventario-lotes/internal/infrastructure/postgres"
	infrasqlite "github.com/bymsoft/inventario-lotes/internal/infrastructure/sqlite"
	httpRouter "github.com/bymsoft/inventario-lotes/internal/interfaces/http"
	"github.com/bymsoft/inventario-lotes/pkg/config"
	"github.com/bymsoft/inventario-lotes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store inventario.TableStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := infrapg.NewPool(ctx, cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = infrapg.NewTableStore(pool)
	case "sqlite":
		st, err := infrasqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir SQLite")
		}
		defer st.Close()
		store = st
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("STORE_DRIVER desconocido")
	}

	almacen := inventario.NewAlmacen(store, log)
	if err := almacen.Recargar(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del inventario")
	}

	usuarios := make([]auth.Usuario, 0, len(cfg.Usuarios))
	for _, u := range cfg.Usuarios {
		usuarios = append(usuarios, auth.Usuario{Nombre: u.Nombre, Hash: u.Hash, Rol: u.Rol})
	}
	authUC := auth.NewAuthUseCase(usuarios, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario B&M API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Almacen:   almacen,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
