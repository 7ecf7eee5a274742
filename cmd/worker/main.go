package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weddingplan/planner/internal/app"
	"github.com/weddingplan/planner/pkg/config"
	"github.com/weddingplan/planner/pkg/observability"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	logger.Info("starting planner worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if !cfg.OutboxProcessorEnabled {
		logger.Warn("outbox processor disabled, serving health checks only")
	} else {
		logger.Info("starting outbox processor",
			"poll_interval", cfg.OutboxPollInterval,
			"batch_size", cfg.OutboxBatchSize,
			"max_retries", cfg.OutboxMaxRetries,
		)
		container.OutboxProcessor.Start(ctx)
	}

	go runCleanup(ctx, container, cfg.OutboxCleanupInterval)

	if consumer, err := container.ActivityConsumer(); err != nil {
		logger.Warn("activity consumer unavailable", "error", err)
	} else {
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("activity consumer stopped", "error", err)
			}
		}()
	}

	if cfg.WorkerHealthAddr != "" {
		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           container.HealthHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		healthLogger := observability.LogOperation(logger, "health_server", "addr", cfg.WorkerHealthAddr)

		go func() {
			healthLogger.Info("health server starting")
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				healthLogger.Error("health server error", "error", err)
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				healthLogger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down worker")

	container.OutboxProcessor.Stop()
	stats := container.OutboxProcessor.Stats()
	logger.Info("worker stopped",
		"published", stats.Published,
		"failed", stats.Failed,
		"dead_lettered", stats.DeadLettered,
	)
}

// runCleanup purges published outbox messages every interval until ctx is done.
func runCleanup(ctx context.Context, container *app.Container, interval time.Duration) {
	if interval <= 0 {
		return
	}
	logger := container.Logger.With("retention_days", container.Config.OutboxRetentionDays)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Failures are logged by the timer and retried on the next tick.
			_, _ = observability.TimeOperationResult(ctx, logger, "outbox_cleanup", func() (int64, error) {
				return container.CleanupOutbox(ctx)
			})
		}
	}
}
