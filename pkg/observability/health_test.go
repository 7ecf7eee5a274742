package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func TestHealthRegistry_Check(t *testing.T) {
	tests := []struct {
		name     string
		checkers map[string]HealthChecker
		want     HealthStatus
	}{
		{
			name: "no checkers",
			want: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: map[string]HealthChecker{
				"database": PingHealthChecker("database", HealthStatusUnhealthy, ok),
				"redis":    PingHealthChecker("redis", HealthStatusDegraded, ok),
			},
			want: HealthStatusHealthy,
		},
		{
			name: "cache down degrades",
			checkers: map[string]HealthChecker{
				"database": PingHealthChecker("database", HealthStatusUnhealthy, ok),
				"redis":    PingHealthChecker("redis", HealthStatusDegraded, failing),
			},
			want: HealthStatusDegraded,
		},
		{
			name: "database down is unhealthy",
			checkers: map[string]HealthChecker{
				"database": PingHealthChecker("database", HealthStatusUnhealthy, failing),
				"redis":    PingHealthChecker("redis", HealthStatusDegraded, failing),
			},
			want: HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for name, checker := range tt.checkers {
				registry.Register(name, checker)
			}

			health := registry.Check(context.Background())
			assert.Equal(t, tt.want, health.Status)
			assert.Len(t, health.Checks, len(tt.checkers))
			assert.False(t, health.Timestamp.IsZero())
		})
	}
}

func TestPingHealthChecker_Message(t *testing.T) {
	result := PingHealthChecker("redis", HealthStatusDegraded, failing)(context.Background())
	assert.Equal(t, HealthStatusDegraded, result.Status)
	assert.Equal(t, "redis connection failed: connection refused", result.Message)
}

func TestHealthRegistry_Names(t *testing.T) {
	registry := NewHealthRegistry()
	registry.Register("redis", PingHealthChecker("redis", HealthStatusDegraded, ok))
	registry.Register("database", PingHealthChecker("database", HealthStatusUnhealthy, ok))

	assert.Equal(t, []string{"database", "redis"}, registry.Names())
}
