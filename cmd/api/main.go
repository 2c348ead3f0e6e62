package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/config"
	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/internal/infrastructure/catalog"
	"github.com/tofrito/till-api/internal/infrastructure/database"
	infrarepo "github.com/tofrito/till-api/internal/infrastructure/repository"
	"github.com/tofrito/till-api/internal/presentation/http/handler"
	"github.com/tofrito/till-api/internal/presentation/http/routes"
	"github.com/tofrito/till-api/pkg/logging"
	"github.com/tofrito/till-api/pkg/printer"
	"github.com/tofrito/till-api/pkg/utils"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.App.Debug)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	store := buildStore(cfg, logger)

	menu, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}

	prn, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("printer unavailable, tickets will not print", "error", err)
		prn = printer.NewNullPrinter()
	}

	jwtManager := utils.NewJWTManager(cfg.Manager.JWTSecret, cfg.Manager.TokenExpiry)

	// Services
	authService, err := service.NewAuthService(&cfg.Manager, jwtManager, logger)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	ledgerService := service.NewLedgerService(store, logger)
	ledgerService.Load(context.Background())

	cartService := service.NewCartService(menu)
	printerService := service.NewPrinterService(prn, cfg.Printer.Type, cfg.Printer.Width, cfg.Printer.StoreName)
	checkoutService := service.NewCheckoutService(cartService, ledgerService, authService, printerService, logger)
	kitchenService := service.NewKitchenService(ledgerService, store, logger)
	reportService := service.NewReportService(ledgerService)

	// Handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(menu),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Kitchen:  handler.NewKitchenHandler(kitchenService),
		Report:   handler.NewReportHandler(reportService, ledgerService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Store:      store,
	})

	logger.Info("starting till API",
		"name", cfg.App.Name,
		"port", cfg.App.Port,
		"next_ticket", ledgerService.NextTicket(),
	)

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore connects to Postgres when configured and falls back to the
// in-memory store otherwise. The till keeps working without a database,
// it just forgets everything on restart.
func buildStore(cfg *config.Config, logger *slog.Logger) repository.KVStore {
	if !cfg.Database.Enabled {
		logger.Info("database disabled, using in-memory store")
		return infrarepo.NewMemoryKV()
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Warn("database connection failed, using in-memory store", "error", err)
		return infrarepo.NewMemoryKV()
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)
	return infrarepo.NewKVRepository(db)
}
