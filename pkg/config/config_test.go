package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "PLANNER_USER_ID",
	"DATABASE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
	"REDIS_URL", "TIMELINE_CACHE_TTL", "RABBITMQ_URL",
	"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "OUTBOX_MAX_RETRIES",
	"OUTBOX_RETENTION_DAYS", "OUTBOX_CLEANUP_INTERVAL", "OUTBOX_PROCESSOR_ENABLED",
	"BREAKER_FAILURE_THRESHOLD", "BREAKER_TIMEOUT",
	"WORKER_HEALTH_ADDR",
}

// clearEnv blanks every planner variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Application defaults
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFormat)
	assert.Equal(t, DefaultUserID, cfg.UserID)

	// Local mode is enabled by default when no DATABASE_URL is set
	assert.True(t, cfg.IsLocalMode())
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 10*time.Minute, cfg.TimelineCacheTTL)

	// Outbox defaults
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 5, cfg.OutboxMaxRetries)
	assert.Equal(t, 14*24*time.Hour, cfg.OutboxRetention())
	assert.Equal(t, 24*time.Hour, cfg.OutboxCleanupInterval)
	assert.True(t, cfg.OutboxProcessorEnabled)

	// Breaker defaults
	assert.Equal(t, 5, cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)

	assert.Equal(t, "0.0.0.0:8081", cfg.WorkerHealthAddr)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PLANNER_USER_ID", "22222222-2222-2222-2222-222222222222")
	t.Setenv("DATABASE_URL", "postgres://planner:secret@db:5432/planner")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("TIMELINE_CACHE_TTL", "90s")
	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("OUTBOX_PROCESSOR_ENABLED", "false")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "3")
	t.Setenv("BREAKER_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", cfg.UserID)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.False(t, cfg.IsLocalMode())
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.TimelineCacheTTL)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.False(t, cfg.OutboxProcessorEnabled)
	assert.Equal(t, 3, cfg.BreakerFailureThreshold)
	assert.Equal(t, time.Minute, cfg.BreakerTimeout)
}

func TestLoad_ExplicitDriverWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "postgres://planner@db/planner")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.True(t, cfg.IsLocalMode())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("OUTBOX_BATCH_SIZE", "many")
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")
	t.Setenv("OUTBOX_PROCESSOR_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
	assert.True(t, cfg.OutboxProcessorEnabled)
}

func TestDetectDriver(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"", "sqlite"},
		{"postgres://u@h/db", "postgres"},
		{"postgresql://u@h/db", "postgres"},
		{"sqlite:///tmp/planner.db", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDriver(tt.url))
		})
	}
}
