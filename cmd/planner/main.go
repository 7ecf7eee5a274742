package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/adapter/cli/phase"
	"github.com/weddingplan/planner/adapter/cli/timeline"
	"github.com/weddingplan/planner/internal/app"
	"github.com/weddingplan/planner/pkg/config"
	"github.com/weddingplan/planner/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI output goes to stdout, so logs stay on stderr and quiet by default
	logCfg := observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	logCfg.Output = os.Stderr
	if os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = observability.LogLevelWarn
	}
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
		// In development, allow help and version without a database
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()

		cliApp = cli.NewApp(
			container.CreateTimelineHandler,
			container.AppendPhaseHandler,
			container.SplitPhasesHandler,
			container.AdjustPhaseEndHandler,
			container.RenamePhaseHandler,
			container.DeleteTimelineHandler,
			container.GetTimelineHandler,
			container.ListTimelinesHandler,
			container.PreviewAdjustmentHandler,
		)

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid PLANNER_USER_ID", "error", err)
			container.Close()
			os.Exit(1)
		}
		cliApp.SetCurrentUserID(userID)

		// Without a worker, local mode relays events right after each command
		if container.IsLocal() {
			cliApp.SetOutboxFlusher(container.DrainOutbox)
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(timeline.Cmd)
	cli.AddCommand(phase.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}
