package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/weddingplan/planner/internal/shared/infrastructure/eventbus"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/application/subscribers"
	"github.com/weddingplan/planner/pkg/observability"
)

// WorkerHealth is the body served on /healthz.
type WorkerHealth struct {
	observability.OverallHealth
	Outbox outbox.Stats `json:"outbox"`
}

// CleanupOutbox deletes published messages older than the retention period.
func (c *Container) CleanupOutbox(ctx context.Context) (int64, error) {
	before := time.Now().Add(-c.Config.OutboxRetention())
	deleted, err := c.OutboxRepo.DeleteOld(ctx, before)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		c.Logger.InfoContext(ctx, "outbox cleanup completed",
			"deleted", deleted,
			"retention_days", c.Config.OutboxRetentionDays,
		)
	}
	return deleted, nil
}

// ActivityConsumer connects a RabbitMQ consumer that feeds timeline events to
// the activity subscriber. Local mode already delivers in process.
func (c *Container) ActivityConsumer() (*eventbus.RabbitMQConsumer, error) {
	if c.IsLocal() {
		return nil, errors.New("local mode has no broker to consume from")
	}
	bus := eventbus.NewLocalBus(c.Logger)
	activity := subscribers.NewActivitySubscriber(c.Logger)
	activity.Register(bus)
	return eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:       c.Config.RabbitMQURL,
		QueueName: eventbus.DefaultConsumerQueueName,
		Patterns:  []string{activity.Pattern()},
		Logger:    c.Logger,
	}, bus)
}

// HealthHandler serves /healthz with every component check plus the outbox
// processor counters, and /readyz with the checks alone. Both answer 503
// when a critical component is down.
func (c *Container) HealthHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		report := WorkerHealth{OverallHealth: c.checkHealth(r.Context())}
		if c.OutboxProcessor != nil {
			report.Outbox = c.OutboxProcessor.Stats()
		}
		writeHealth(w, report.Status, report)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		report := c.checkHealth(r.Context())
		writeHealth(w, report.Status, report)
	})
	return mux
}

func (c *Container) checkHealth(ctx context.Context) observability.OverallHealth {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Health.Check(checkCtx)
}

func writeHealth(w http.ResponseWriter, status observability.HealthStatus, body any) {
	w.Header().Set("Content-Type", "application/json")
	if status == observability.HealthStatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(body)
}
