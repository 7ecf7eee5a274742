package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
)

func TestRootCmd_FlushesOutboxAfterCommand(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	var flushedWith uuid.UUID
	a := NewApp(nil, nil, nil, nil, nil, nil, nil, nil, nil)
	a.SetCurrentUserID(uuid.New())
	a.SetOutboxFlusher(func(ctx context.Context) (int, error) {
		flushedWith = sharedApplication.CorrelationID(ctx)
		return 2, nil
	})
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "planner dev")
	assert.NotEqual(t, uuid.Nil, flushedWith)
	assert.Contains(t, logs.String(), "command start")
	assert.Contains(t, logs.String(), "relayed events")
	assert.Contains(t, logs.String(), "operation completed")
	assert.Contains(t, logs.String(), "operation=\"planner version\"")
}

func TestRootCmd_FlushFailureIsNotFatal(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	a := NewApp(nil, nil, nil, nil, nil, nil, nil, nil, nil)
	a.SetOutboxFlusher(func(context.Context) (int, error) {
		return 0, errors.New("database is locked")
	})
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Contains(t, logs.String(), "failed to relay events")
	assert.Contains(t, logs.String(), "database is locked")
}
