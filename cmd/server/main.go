package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kassaklap/backend/config"
	httpDelivery "github.com/kassaklap/backend/internal/delivery/http"
	"github.com/kassaklap/backend/internal/infrastructure/cache"
	"github.com/kassaklap/backend/internal/infrastructure/catalog"
	"github.com/kassaklap/backend/internal/usecase"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting kassaklap backend v1.0.0")

	// The catalog is loaded once; a malformed dataset aborts startup
	// instead of serving partial data.
	entries, err := catalog.NewLoader(cfg.Catalog.Path).Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	logger.Info().Int("establishments", len(entries)).Str("path", cfg.Catalog.Path).Msg("catalog loaded")

	// Build the immutable search index and its collaborators
	index := usecase.NewIndex(entries, usecase.SearchConfig{
		MinSimilarity:  cfg.Search.MinSimilarity,
		MinMatchLength: cfg.Search.MinMatchLength,
		MaxResults:     cfg.Search.MaxResults,
	})
	resolver := usecase.NewMarketResolver(usecase.DefaultMarkets())
	memoryCache := cache.NewMemoryCache()

	searchService := usecase.NewSearchService(index, resolver, memoryCache, logger,
		usecase.SearchServiceConfig{CacheTTL: cfg.Cache.TTL})

	logger.Info().
		Float64("min_similarity", cfg.Search.MinSimilarity).
		Int("min_match_length", cfg.Search.MinMatchLength).
		Int("max_results", cfg.Search.MaxResults).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("search service configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("bye")
}
