// Package main runs the crate purchase action server:
// - GET/OPTIONS /api/actions/buy: crate descriptor
// - POST /api/actions/buy: unsigned swap + fee transaction bundle
// - /actions.json, /healthz, /metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crate-blink/internal/api"
	"crate-blink/internal/config"
	"crate-blink/internal/crates"
	"crate-blink/internal/jupiter"
	"crate-blink/internal/observability"
	"crate-blink/internal/orchestrator"
	"crate-blink/internal/solana"
	"crate-blink/internal/storage"
	"crate-blink/internal/storage/memory"
	"crate-blink/internal/storage/migrations"
	pgstore "crate-blink/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	config.LoadEnvFile(".env")

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	crateStore, registry, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics("")

	jupiterHTTP := &http.Client{Timeout: cfg.RequestTimeout}
	jupiterOpts := []jupiter.Option{
		jupiter.WithBaseURL(cfg.JupiterAPIURL),
		jupiter.WithHTTPClient(jupiterHTTP),
	}
	if cfg.JupiterAPIKey != "" {
		jupiterOpts = append(jupiterOpts, jupiter.WithHeader(http.Header{"X-Api-Key": {cfg.JupiterAPIKey}}))
	}
	jup := jupiter.NewClient(jupiterOpts...)

	rpc := solana.NewHTTPClient(cfg.SolanaRPC, solana.WithTimeout(10*time.Second))

	orch := orchestrator.New(orchestrator.Options{
		CrateStore:          crateStore,
		TokenRegistry:       registry,
		Quoter:              jup,
		SwapBuilder:         jup,
		Blockhashes:         rpc,
		Currencies:          cfg.Currencies,
		PlatformWallet:      cfg.PlatformWallet,
		PlatformFeeLamports: cfg.PlatformFeeLamports,
		CreatorFeeLamports:  cfg.CreatorFeeLamports,
		DefaultIcon:         cfg.DefaultIcon,
		ShareBlockhash:      cfg.ShareBlockhash,
		RequestTimeout:      cfg.RequestTimeout,
		Concurrency:         cfg.Concurrency,
		Logger:              log.New(os.Stdout, "[orchestrator] ", log.LstdFlags|log.Lshortfile),
		Metrics:             metrics,
	})

	router := api.NewRouter(api.Config{
		Purchaser:   orch,
		Metrics:     metrics,
		RateLimiter: api.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		Logger:      log.New(os.Stdout, "[api] ", log.LstdFlags|log.Lshortfile),
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
		defer stop()

		go func() {
			// Wait for second signal for immediate shutdown
			select {
			case sig := <-sigCh:
				logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
				os.Exit(1)
			case <-shutdownCtx.Done():
			}
		}()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Graceful shutdown failed: %v", err)
		}
		cancel()
	}()

	logger.Printf("Starting HTTP server on %s (crate store: %s, share blockhash: %v)",
		cfg.ListenAddress, cfg.CrateStore, cfg.ShareBlockhash)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	<-ctx.Done()
	logger.Println("Shutdown complete")
}

// createStores creates the crate store and token registry for the configured backend.
func createStores(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.CrateStore, storage.TokenRegistry, func(), error) {
	if cfg.CrateStore == config.StoreHTTP {
		logger.Printf("Using crate service at %s", cfg.CrateAPIURL)
		return crates.NewClient(cfg.CrateAPIURL, crates.WithTimeout(cfg.RequestTimeout)),
			memory.NewTokenRegistry(cfg.Tokens),
			func() {},
			nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if _, err := migrations.Apply(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("migrate postgres: %w", err)
	}

	registry := pgstore.NewTokenRegistry(pool)
	for symbol, mint := range cfg.Tokens {
		if err := registry.Upsert(ctx, symbol, mint); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("seed token %s: %w", symbol, err)
		}
	}
	logger.Printf("Using postgres crate store (%d known tokens)", len(cfg.Tokens))

	return pgstore.NewCrateStore(pool), registry, pool.Close, nil
}
