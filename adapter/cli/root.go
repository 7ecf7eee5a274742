package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/pkg/observability"
)

var logger *slog.Logger

type commandContext struct {
	correlationID uuid.UUID
	timer         *observability.Timer
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Planner - wedding plan timelines",
	Long: `Planner keeps the phases of a wedding plan in order.

	Move the end of a phase and every later phase shifts with it, keeping
	its length. The final phase is shortened when it would run past the
	deadline. Dates are written as dd/mm/yy.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		info := commandContext{
			correlationID: uuid.New(),
			timer:         observability.StartTimer(cmd.CommandPath()).WithLogger(logger),
		}
		ctx = sharedApplication.WithCorrelationID(ctx, info.correlationID)
		if a := GetApp(); a != nil {
			ctx = observability.WithUserID(ctx, a.CurrentUserID.String())
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.DebugContext(cmd.Context(), "command start", "command", cmd.CommandPath())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		info, ok := ctx.Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		flushOutbox(ctx)
		info.timer.Stop(ctx)
	},
}

// flushOutbox relays the events a command stored. Failures stay in the
// outbox for the worker to retry, so they are only logged.
func flushOutbox(ctx context.Context) {
	a := GetApp()
	if a == nil || a.flush == nil {
		return
	}
	published, err := a.flush(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to relay events", "error", err)
		return
	}
	if published > 0 {
		logger.DebugContext(ctx, "relayed events", "count", published)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Execute reports errors itself
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
