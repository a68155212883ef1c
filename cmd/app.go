// Package cmd wires the application together: configuration, logger,
// database, repositories, services, controllers and the HTTP server.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kocho-pos/api"
	apicatalog "kocho-pos/api/catalog"
	apicustomer "kocho-pos/api/customer"
	"kocho-pos/api/health"
	apiinventory "kocho-pos/api/inventory"
	apiledger "kocho-pos/api/ledger"
	apiorder "kocho-pos/api/order"
	apireport "kocho-pos/api/report"
	catalogapp "kocho-pos/application/catalog"
	customerapp "kocho-pos/application/customer"
	inventoryapp "kocho-pos/application/inventory"
	ledgerapp "kocho-pos/application/ledger"
	orderapp "kocho-pos/application/order"
	reportapp "kocho-pos/application/report"
	"kocho-pos/config"
	"kocho-pos/infrastructure/persistence/mysql"
	"kocho-pos/infrastructure/persistence/retry"
	"kocho-pos/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App Application instance
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// NewApp builds the application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// Repositories
	orderRepo := mysql.NewOrderRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	catalogRepo := mysql.NewCatalogRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	reportRepo := mysql.NewReportRepository(db)

	uow := mysql.NewUnitOfWork(db)
	uow.SetRetryConfig(retry.FromAppConfig(cfg))

	// Application services
	orderService := orderapp.NewService(uow, orderRepo, inventoryRepo, customerRepo, ledgerRepo, cfg.Business)
	inventoryService := inventoryapp.NewService(uow, inventoryRepo)
	catalogService := catalogapp.NewService(catalogRepo)
	customerService := customerapp.NewService(customerRepo, orderRepo)
	ledgerService := ledgerapp.NewService(uow, ledgerRepo)
	reportService := reportapp.NewService(reportRepo, inventoryRepo)

	// Controllers
	var sqlDB *sql.DB
	if db != nil {
		sqlDB, _ = db.DB()
	}
	router := api.NewRouter(
		cfg,
		health.NewController(cfg, sqlDB),
		apiorder.NewController(orderService),
		apiinventory.NewController(inventoryService),
		apicatalog.NewController(catalogService),
		apicustomer.NewController(customerService),
		apiledger.NewController(ledgerService),
		apireport.NewController(reportService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	dbConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Log.Level,
	}
	return dbConfig.Connect()
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
