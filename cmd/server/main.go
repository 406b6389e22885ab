package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/database"
	"bankledger/internal/handlers"
	"bankledger/internal/middleware"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to open audit database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to migrate audit database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := repositories.NewAccountRegistry()
	auditRepo := repositories.NewAuditLogRepository(db.DB)

	accountService := services.NewAccountService(
		registry,
		auditRepo,
		services.NewAuditLogger(logger),
		services.NewPrometheusMetrics(),
		models.NewTransactionIDGenerator(),
		logger,
	)

	accountHandler := handlers.NewAccountHandler(accountService, cfg.Bank)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst).Middleware())
	e.Use(echomiddleware.Logger())

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/accounts", accountHandler.OpenAccount)
	api.GET("/accounts", accountHandler.ListAccounts)
	api.GET("/accounts/:accountNumber", accountHandler.GetAccount)
	api.DELETE("/accounts/:accountNumber", accountHandler.CloseAccount)
	api.POST("/accounts/:accountNumber/deposits", accountHandler.Deposit)
	api.POST("/accounts/:accountNumber/withdrawals", accountHandler.Withdraw)
	api.POST("/accounts/:accountNumber/interest", accountHandler.AddInterest)
	api.GET("/accounts/:accountNumber/transactions", accountHandler.GetTransactions)
	api.POST("/accounts/:accountNumber/holder", accountHandler.RevealHolder)

	go sweepAuditLogs(auditRepo, cfg.Database.AuditRetention, logger)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Server.Environment),
		)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// sweepAuditLogs prunes audit rows past the retention window once a day.
func sweepAuditLogs(repo repositories.AuditLogRepositoryInterface, retention time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := repo.DeleteOlderThan(retention)
		if err != nil {
			logger.Warn("audit log sweep failed", slog.String("error", err.Error()))
			continue
		}
		if deleted > 0 {
			logger.Info("audit log sweep", slog.Int64("deleted", deleted))
		}
	}
}
