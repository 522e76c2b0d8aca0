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

	_ "github.com/jhoicas/tiendita/docs"
	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/application/persist"
	"github.com/jhoicas/tiendita/internal/application/photo"
	"github.com/jhoicas/tiendita/internal/application/report"
	"github.com/jhoicas/tiendita/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/tiendita/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/tiendita/internal/interfaces/http"
	"github.com/jhoicas/tiendita/pkg/config"
	"github.com/jhoicas/tiendita/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	store, err := localstore.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén local")
	}

	// Cada mutación del ledger se refleja en el almacén en segundo plano.
	mirror := persist.NewMirror(store, log.Component("persist"))
	mirror.Start()

	inventory := ledger.New(
		ledger.WithObserver(mirror),
		ledger.WithLogger(log.Component("ledger")),
	)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	inventory.Load(loadCtx, store)
	cancelLoad()
	log.Info().
		Int("items", len(inventory.Items())).
		Int("sales", len(inventory.AllSales())).
		Msg("estado local cargado")

	reportUC := report.NewUseCase(inventory, infrapdf.NewMarotoPDFGenerator(), cfg.App.Name)
	photoSvc := photo.NewService(store, cfg.Photo.MaxDim, log.Component("photo"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tiendita API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:  inventory,
		Reports: reportUC,
		Photos:  photoSvc,
		Log:     log.Component("http"),
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

	// Último volcado antes de cerrar el almacén.
	mirror.Close()
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar almacén local")
	}

	log.Info().Msg("aplicación detenida")
}
