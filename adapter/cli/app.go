package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

// App holds the application handlers for CLI commands.
type App struct {
	// Timeline command handlers
	CreateTimelineHandler *commands.CreateTimelineHandler
	AppendPhaseHandler    *commands.AppendPhaseHandler
	SplitPhasesHandler    *commands.SplitPhasesHandler
	AdjustPhaseEndHandler *commands.AdjustPhaseEndHandler
	RenamePhaseHandler    *commands.RenamePhaseHandler
	DeleteTimelineHandler *commands.DeleteTimelineHandler

	// Timeline query handlers
	GetTimelineHandler       *queries.GetTimelineHandler
	ListTimelinesHandler     *queries.ListTimelinesHandler
	PreviewAdjustmentHandler *queries.PreviewAdjustmentHandler

	// Current user context (simplified - single local user)
	CurrentUserID uuid.UUID

	// flush relays pending events after a command in local mode
	flush func(ctx context.Context) (int, error)
}

// NewApp creates a new CLI application.
func NewApp(
	createTimelineHandler *commands.CreateTimelineHandler,
	appendPhaseHandler *commands.AppendPhaseHandler,
	splitPhasesHandler *commands.SplitPhasesHandler,
	adjustPhaseEndHandler *commands.AdjustPhaseEndHandler,
	renamePhaseHandler *commands.RenamePhaseHandler,
	deleteTimelineHandler *commands.DeleteTimelineHandler,
	getTimelineHandler *queries.GetTimelineHandler,
	listTimelinesHandler *queries.ListTimelinesHandler,
	previewAdjustmentHandler *queries.PreviewAdjustmentHandler,
) *App {
	return &App{
		CreateTimelineHandler:    createTimelineHandler,
		AppendPhaseHandler:       appendPhaseHandler,
		SplitPhasesHandler:       splitPhasesHandler,
		AdjustPhaseEndHandler:    adjustPhaseEndHandler,
		RenamePhaseHandler:       renamePhaseHandler,
		DeleteTimelineHandler:    deleteTimelineHandler,
		GetTimelineHandler:       getTimelineHandler,
		ListTimelinesHandler:     listTimelinesHandler,
		PreviewAdjustmentHandler: previewAdjustmentHandler,
		CurrentUserID:            uuid.Nil,
	}
}

// SetCurrentUserID sets the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetOutboxFlusher registers a function run after every command to relay
// the events it stored.
func (a *App) SetOutboxFlusher(flush func(ctx context.Context) (int, error)) {
	a.flush = flush
}

// Global app instance (set by main)
var app *App

// SetApp sets the global app instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global app instance.
func GetApp() *App {
	return app
}
