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

	"go.uber.org/zap"

	"github.com/medalt/backend/config"
	httpDelivery "github.com/medalt/backend/internal/delivery/http"
	"github.com/medalt/backend/internal/infrastructure/dataset"
	"github.com/medalt/backend/internal/logger"
	"github.com/medalt/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("Starting MedAlt Backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the dataset once; failures fall back to an empty corpus
	source := dataset.NewSource(cfg.Dataset.Path, cfg.Dataset.Table)
	corpus := dataset.LoadOrEmpty(ctx, source, zlog)

	index := usecase.NewIndex(corpus, usecase.IndexConfig{
		TopN:   cfg.Matching.TopN,
		Cutoff: cfg.Matching.Cutoff,
	}, zlog)

	zlog.Info("Matching configured",
		zap.Int("top_n", cfg.Matching.TopN),
		zap.Float64("cutoff", cfg.Matching.Cutoff),
		zap.Int("ratelimit_per_ip", cfg.RateLimit.PerIP),
	)

	handler := httpDelivery.NewHandler(index, cfg.Matching.TopN, zlog)
	router := httpDelivery.SetupRouter(cfg, handler, zlog)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zlog.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Error during shutdown", zap.Error(err))
	}

	zlog.Info("Server stopped gracefully")
}
