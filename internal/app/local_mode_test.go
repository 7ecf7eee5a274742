package app

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
	"github.com/weddingplan/planner/internal/timeline/domain"
	"github.com/weddingplan/planner/pkg/config"
)

func newLocalContainer(t *testing.T) (*Container, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		AppEnv:           "test",
		LocalMode:        true,
		DatabaseDriver:   "sqlite",
		SQLitePath:       filepath.Join(t.TempDir(), "planner.db"),
		UserID:           config.DefaultUserID,
		OutboxMaxRetries: 3,
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	container, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return container, &logs
}

func parse(t *testing.T, text string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(text)
	require.NoError(t, err)
	return d
}

// TestLocalModeContainer tests that a local mode container can be created and used.
func TestLocalModeContainer(t *testing.T) {
	container, _ := newLocalContainer(t)

	assert.True(t, container.IsLocal())
	assert.Equal(t, database.DriverSQLite, container.DBDriver)
	assert.Nil(t, container.RedisClient)
	assert.Nil(t, container.TimelineCache)

	assert.NotNil(t, container.TimelineRepo)
	assert.NotNil(t, container.OutboxRepo)
	assert.NotNil(t, container.UnitOfWork)
	assert.NotNil(t, container.OutboxProcessor)
	assert.NotNil(t, container.CreateTimelineHandler)
	assert.NotNil(t, container.PreviewAdjustmentHandler)
	assert.Equal(t, []string{"database"}, container.Health.Names())

	health := container.Health.Check(context.Background())
	assert.Equal(t, "healthy", string(health.Status))
}

func TestLocalModeContainer_TimelineWorkflow(t *testing.T) {
	container, logs := newLocalContainer(t)
	ctx := context.Background()
	userID := uuid.MustParse(config.DefaultUserID)

	created, err := container.CreateTimelineHandler.Handle(ctx, commands.CreateTimelineCommand{
		UserID:       userID,
		Name:         "Ana & Rui",
		ProjectStart: parse(t, "01/01/25"),
		Deadline:     parse(t, "31/01/25"),
	})
	require.NoError(t, err)

	for _, name := range []string{"Venue", "Guests", "Final details"} {
		_, err := container.AppendPhaseHandler.Handle(ctx, commands.AppendPhaseCommand{
			TimelineID:   created.TimelineID,
			UserID:       userID,
			Name:         name,
			DurationDays: 9,
		})
		require.NoError(t, err)
	}

	dto, err := container.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{TimelineID: created.TimelineID, UserID: userID})
	require.NoError(t, err)
	require.Len(t, dto.Phases, 3)
	first := dto.Phases[0]

	preview, err := container.PreviewAdjustmentHandler.Handle(ctx, queries.PreviewAdjustmentQuery{
		TimelineID: created.TimelineID,
		UserID:     userID,
		PhaseID:    first.ID,
		NewEnd:     parse(t, "25/01/25"),
	})
	require.ErrorIs(t, err, domain.ErrNoRoomBeforeDeadline)
	assert.Nil(t, preview)

	adjusted, err := container.AdjustPhaseEndHandler.Handle(ctx, commands.AdjustPhaseEndCommand{
		TimelineID: created.TimelineID,
		UserID:     userID,
		PhaseID:    first.ID,
		NewEnd:     parse(t, "15/01/25"),
	})
	require.NoError(t, err)
	assert.True(t, adjusted.Clamped)

	dto, err = container.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{TimelineID: created.TimelineID, UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "16/01/25", dto.Phases[1].Start.String())
	assert.Equal(t, "25/01/25", dto.Phases[1].End.String())
	assert.Equal(t, "26/01/25", dto.Phases[2].Start.String())
	assert.Equal(t, "31/01/25", dto.Phases[2].End.String())

	// Created, three appends and one adjustment.
	published, err := container.DrainOutbox(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, published)
	assert.Contains(t, logs.String(), "final phase shortened to meet the deadline")

	published, err = container.DrainOutbox(ctx)
	require.NoError(t, err)
	assert.Zero(t, published)

	summaries, err := container.ListTimelinesHandler.Handle(ctx, queries.ListTimelinesQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].PhaseCount)

	require.NoError(t, container.DeleteTimelineHandler.Handle(ctx, commands.DeleteTimelineCommand{
		TimelineID: created.TimelineID,
		UserID:     userID,
	}))
	_, err = container.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{TimelineID: created.TimelineID, UserID: userID})
	assert.ErrorIs(t, err, domain.ErrTimelineNotFound)
}
