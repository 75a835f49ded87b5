package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omnibank/mortgage-service/internal/application/usecase"
	"github.com/omnibank/mortgage-service/internal/domain/port"
	"github.com/omnibank/mortgage-service/internal/domain/service"
	"github.com/omnibank/mortgage-service/internal/infrastructure/adapter"
	"github.com/omnibank/mortgage-service/internal/infrastructure/cache"
	"github.com/omnibank/mortgage-service/internal/infrastructure/config"
	"github.com/omnibank/mortgage-service/internal/observability"
	"github.com/omnibank/mortgage-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting mortgage-service", "http_port", cfg.HTTPPort)

	// Metrics.
	metrics, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Upstream clients.
	var (
		catalog  port.CatalogClient
		fxClient port.FxClient
	)
	if cfg.UseStubs {
		logger.Warn("serving quotes from the built-in stub catalog")
		catalog = adapter.NewStubCatalogClient()
		fxClient = adapter.NewStubFxClient()
	} else {
		catalog = adapter.NewLoanAdminClient(adapter.LoanAdminConfig{
			BaseURL: cfg.Upstream.LoanAdminURL,
			Timeout: cfg.Upstream.Timeout,
		}, logger)
		fxClient = adapter.NewFxRatesClient(adapter.FxRatesConfig{
			BaseURL: cfg.Upstream.FxRatesURL,
			Timeout: cfg.Upstream.Timeout,
		}, logger)
	}

	// Quote cache: Redis when configured, in-process otherwise.
	var quoteCache port.QuoteCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		quoteCache = cache.NewRedisCache(client)
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
	} else {
		quoteCache = cache.NewMemoryCache()
		logger.Info("using in-process quote cache")
	}

	// Wire the calculator and use case.
	calculator := service.NewQuoteCalculator(catalog, fxClient)
	calculateQuote := usecase.NewCalculateQuoteUseCase(calculator, quoteCache, cfg.CacheTTL, metrics, logger)

	// HTTP server.
	quoteHandler := rest.NewQuoteHandler(calculateQuote, logger)
	healthHandler := rest.NewHealthHandler(logger)
	router := rest.NewRouter(quoteHandler, healthHandler, metricsHandler, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("mortgage-service stopped")
}
