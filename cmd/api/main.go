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

	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/report"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
	domaininv "github.com/jhoicas/inventario-panel/internal/domain/inventory"
	infrapdf "github.com/jhoicas/inventario-panel/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-panel/internal/interfaces/http"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(txRunner, productRepo, log)
	movementUC := inventory.NewMovementUseCase(txRunner, log)
	reconcileUC := inventory.NewReconcileUseCase(txRunner, domaininv.NewNormalizer(), log)
	ledgerUC := inventory.NewLedgerUseCase(movementRepo, inventory.LedgerConfig{
		PageSize:    cfg.Ledger.PageSize,
		AllowDelete: cfg.Ledger.AllowDelete,
	}, log)

	// PDF: informe de stock filtrado
	pdfGenerator := infrapdf.NewMarotoStockReportGenerator(cfg.App.Name)
	reportUC := report.NewUseCase(reportRepo, productRepo, pdfGenerator, report.NewMoneyFormatter(cfg.Report.Currency))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxFileBytes() + 1024*1024, // margen para el envoltorio multipart
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Panel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		Movements:      movementUC,
		Ledger:         ledgerUC,
		Reconcile:      reconcileUC,
		Reports:        reportUC,
		MaxImportBytes: cfg.Import.MaxFileBytes(),
		JWTSecret:      cfg.JWT.Secret,
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
