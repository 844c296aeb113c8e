package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ledgerUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/ledger"
	payoutUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/payout"
	rateUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/rate"
	reportingUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/reporting"
	sessionUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/session"
	walletUseCase "github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/wallet"

	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/handler"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/routes"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/database"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/database/migration"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/logger"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/repository"
	timeProvider "github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/time"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/worker"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	migrationMgr := migration.NewMigrationManagerWithTimeProvider(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	readerRepo := repository.NewReaderRepository(dbManager.DB(), appLogger)
	sessionRepo := repository.NewSessionRepository(dbManager.DB(), tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)

	// Unit of work coordinates multi-repository writes in one transaction
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Seed demo accounts outside production
	if cfg.Environment != config.Production {
		if err := migration.CreateDefaultAccounts(context.Background(), userRepo, readerRepo, transactionRepo, tp); err != nil {
			appLogger.Error("Failed to create default accounts", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Initialize use cases
	ledger := ledgerUseCase.New(uow, tp, appLogger)
	rateResolver := rateUseCase.NewResolver(readerRepo, appLogger)
	settlementEngine := sessionUseCase.NewEngine(uow, ledger, tp, appLogger)
	sessionService := sessionUseCase.NewService(
		sessionRepo,
		userRepo,
		readerRepo,
		rateResolver,
		settlementEngine,
		tp,
		appLogger,
	)
	payoutService := payoutUseCase.NewService(userRepo, ledger, appLogger)
	walletService := walletUseCase.NewService(userRepo, transactionRepo, ledger, appLogger)
	reportingService := reportingUseCase.NewService(sessionRepo, transactionRepo, userRepo, readerRepo, tp, appLogger)

	// Stale-session reaper force-settles abandoned sessions
	reaper := worker.NewSessionReaper(
		sessionRepo,
		settlementEngine,
		tp,
		appLogger,
		cfg.Session.MaxActiveDuration,
		cfg.Session.ReaperInterval,
	)
	reaper.Start()

	// Initialize API handlers
	sessionHandler := handler.NewSessionHandler(sessionService, appLogger)
	payoutHandler := handler.NewPayoutHandler(payoutService, reportingService, appLogger)
	walletHandler := handler.NewWalletHandler(walletService, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, sessionHandler, payoutHandler, walletHandler, cfg.Auth.JWTSecret, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the reaper before the server so no sweep runs against a
	// half-closed stack
	reaper.Stop()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or SS_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" {
		missingConfigs = append(missingConfigs, "database.port (or SS_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or SS_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or SS_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or SS_DB_NAME environment variable)")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or SS_JWT_SECRET environment variable)")
	}

	if cfg.Session.MaxActiveDuration == 0 {
		missingConfigs = append(missingConfigs, "session.maxActiveDuration")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// In production, flag settings that are risky rather than wrong
	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
