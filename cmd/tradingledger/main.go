package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jdesmond91/trading-backend/internal/config"
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/engine"
	"github.com/jdesmond91/trading-backend/internal/handler"
	"github.com/jdesmond91/trading-backend/internal/ledger"
	"github.com/jdesmond91/trading-backend/internal/pricing"
	"github.com/jdesmond91/trading-backend/internal/service"
	"github.com/jdesmond91/trading-backend/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	securityStore := store.NewSecurityStore()
	positionStore := store.NewPositionStore()
	orderStore := store.NewOrderStore()
	transactionStore := store.NewTransactionStore()

	// Pricing: TTL cache in front of the external quote source.
	priceCache := pricing.NewCache(cfg.CacheSweepInterval)
	quotes := pricing.NewYahooQuoteClient(cfg.QuoteBaseURL, cfg.QuoteTimeout)
	oracle := pricing.NewOracle(priceCache, quotes, cfg.PriceCacheTTL)

	// Ledger and settlement engine.
	positionLedger := ledger.New(positionStore, securityStore)
	settlement := engine.NewSettlement(securityStore, orderStore, positionLedger, transactionStore, oracle)

	// Services.
	securitySvc := service.NewSecurityService(securityStore, positionStore)
	orderSvc := service.NewOrderService(settlement, orderStore, securityStore)
	positionSvc := service.NewPositionService(positionLedger, securityStore, oracle)
	transactionSvc := service.NewTransactionService(settlement, transactionStore, orderStore, securityStore)

	// Bootstrap the designated cash security so deposits work out of
	// the box.
	if err := bootstrapCashSecurity(securityStore, cfg.CashName, cfg.CashTicker); err != nil {
		logger.Error("failed to bootstrap cash security", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Router.
	router := handler.NewRouter(securitySvc, orderSvc, positionSvc, transactionSvc, logger)

	// Start cache sweeper with cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	priceCache.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops cache sweeper).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}

// bootstrapCashSecurity creates the designated cash security when none
// exists yet.
func bootstrapCashSecurity(securities *store.SecurityStore, name, ticker string) error {
	if _, err := securities.FindCash(); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrCashSecurityMissing) {
		return err
	}

	return securities.Create(domain.Security{
		ID:     uuid.NewString(),
		Name:   name,
		Ticker: ticker,
		Kind:   domain.SecurityKindCash,
	})
}
