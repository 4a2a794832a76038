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

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/auth"
	"github.com/nexile/pharmacy-api/internal/application/directory"
	"github.com/nexile/pharmacy-api/internal/application/insights"
	"github.com/nexile/pharmacy-api/internal/application/pos"
	"github.com/nexile/pharmacy-api/internal/application/ports"
	"github.com/nexile/pharmacy-api/internal/application/reports"
	"github.com/nexile/pharmacy-api/internal/application/usecase"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	infraai "github.com/nexile/pharmacy-api/internal/infrastructure/ai"
	"github.com/nexile/pharmacy-api/internal/infrastructure/badgerstore"
	"github.com/nexile/pharmacy-api/internal/infrastructure/export"
	infrapdf "github.com/nexile/pharmacy-api/internal/infrastructure/pdf"
	"github.com/nexile/pharmacy-api/internal/infrastructure/postgres"
	httpRouter "github.com/nexile/pharmacy-api/internal/interfaces/http"
	"github.com/nexile/pharmacy-api/pkg/config"
	"github.com/nexile/pharmacy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de persistencia: PostgreSQL si hay DATABASE_URL, Badger local
	// en caso contrario.
	var store repository.EntityStore
	if cfg.Store.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStore, err := postgres.NewStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar store PostgreSQL")
		}
		store = pgStore
		log.Info().Msg("store: PostgreSQL")
	} else {
		bStore, err := badgerstore.Open(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir store Badger")
		}
		defer bStore.Close()
		store = bStore
		log.Info().Str("dir", cfg.Store.DataDir).Msg("store: Badger")
	}

	// Proveedor de insights de IA según configuración. Sin API key el caso
	// de uso degrada al análisis offline.
	var insightSvc ports.InsightService
	switch cfg.AI.Provider {
	case "anthropic":
		insightSvc = infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	default:
		insightSvc = infraai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)
	}

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	directoryUC := directory.NewUseCase(store)
	productUC := usecase.NewProductUseCase(store)
	transactionUC := usecase.NewTransactionUseCase(store)
	checkoutUC := pos.NewCheckoutUseCase(store)
	performanceUC := analytics.NewPerformanceUseCase(store)
	statisticalUC := insights.NewStatisticalUseCase(store)
	aiUC := insights.NewAIUseCase(store, insightSvc)
	reportsUC := reports.NewUseCase(
		store, performanceUC,
		infrapdf.NewMarotoSalesReportGenerator(),
		export.NewSpreadsheetExporter(),
	)

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
		Title:    "Nexile Pharmacy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		DirectoryUC:   directoryUC,
		ProductUC:     productUC,
		TransactionUC: transactionUC,
		CheckoutUC:    checkoutUC,
		PerformanceUC: performanceUC,
		StatisticalUC: statisticalUC,
		AIUC:          aiUC,
		ReportsUC:     reportsUC,
		JWTSecret:     cfg.JWT.Secret,
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
