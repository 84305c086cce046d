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

	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/expense"
	"github.com/papeleria/papeleria-api/internal/application/filters"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/application/report"
	"github.com/papeleria/papeleria-api/internal/application/sales"
	infrapdf "github.com/papeleria/papeleria-api/internal/infrastructure/pdf"
	"github.com/papeleria/papeleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/papeleria/papeleria-api/internal/interfaces/http"
	"github.com/papeleria/papeleria-api/pkg/config"
	"github.com/papeleria/papeleria-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)

	catalogUC := catalog.NewUseCase(txRunner, productRepo)
	ledgerUC := ledger.NewUseCase(txRunner, movementRepo)
	salesUC := sales.NewUseCase(txRunner, saleRepo)
	expenseUC := expense.NewUseCase(expenseRepo)
	reportUC := report.NewUseCase(reportRepo, productRepo, pdfGenerator)
	filtersUC := filters.NewUseCase(productRepo)

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
		Title:    "Papelería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		SalesUC:   salesUC,
		ExpenseUC: expenseUC,
		ReportUC:  reportUC,
		FiltersUC: filtersUC,
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
