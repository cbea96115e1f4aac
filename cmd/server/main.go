// Package main runs the revenue-operations HTTP API:
// - POST /v1/calculate, /v1/sensitivity, /v1/reverse/leads, /v1/ote
// - scenarios and presets under /v1/scenarios and /v1/presets
// - Prometheus metrics at /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"revops-engine/internal/config"
	"revops-engine/internal/engine"
	"revops-engine/internal/httpapi"
	"revops-engine/internal/observability"
	"revops-engine/internal/scenario"
	"revops-engine/internal/storage/memory"
)

func main() {
	envFile := flag.String("env-file", ".env", "Optional .env file loaded before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(cfg config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	eng := engine.New().
		WithLogger(logger).
		WithMetrics(metrics).
		WithCacheSize(cfg.CacheSize).
		WithWorkingDays(cfg.WorkingDays)

	scenarios := scenario.NewManager(memory.NewScenarioStore()).WithMetrics(metrics)

	api := httpapi.NewServer(eng, scenarios, logger).
		WithMetrics(metrics).
		WithBumpPct(cfg.BumpPct).
		WithCORSOrigins(cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			slog.String("addr", cfg.HTTPAddr),
			slog.Int("cache_size", cfg.CacheSize),
			slog.Float64("working_days", cfg.WorkingDays))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		logger.Info("received signal, initiating graceful shutdown", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
