package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/convert"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
	_ "github.com/weddingplan/planner/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/weddingplan/planner/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/weddingplan/planner/internal/shared/infrastructure/eventbus"
	"github.com/weddingplan/planner/internal/shared/infrastructure/migrations"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
	"github.com/weddingplan/planner/internal/timeline/application/subscribers"
	"github.com/weddingplan/planner/internal/timeline/domain"
	"github.com/weddingplan/planner/internal/timeline/infrastructure/persistence"
	"github.com/weddingplan/planner/pkg/config"
	"github.com/weddingplan/planner/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis (server mode only)
	RedisClient   *redis.Client
	TimelineCache *persistence.RedisTimelineCache

	// Repositories
	TimelineRepo domain.Repository
	OutboxRepo   outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Events
	EventPublisher  eventbus.Publisher
	LocalBus        *eventbus.LocalBus
	OutboxProcessor *outbox.Processor

	Health *observability.HealthRegistry

	// Timeline Command Handlers
	CreateTimelineHandler *commands.CreateTimelineHandler
	AppendPhaseHandler    *commands.AppendPhaseHandler
	SplitPhasesHandler    *commands.SplitPhasesHandler
	AdjustPhaseEndHandler *commands.AdjustPhaseEndHandler
	RenamePhaseHandler    *commands.RenamePhaseHandler
	DeleteTimelineHandler *commands.DeleteTimelineHandler

	// Timeline Query Handlers
	GetTimelineHandler       *queries.GetTimelineHandler
	ListTimelinesHandler     *queries.ListTimelinesHandler
	PreviewAdjustmentHandler *queries.PreviewAdjustmentHandler
}

// NewContainer creates and wires all dependencies. Without a server
// database it falls back to NewLocalContainer.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.IsLocalMode() {
		return NewLocalContainer(ctx, cfg, logger)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Health: observability.NewHealthRegistry(),
	}

	if err := c.openDatabase(ctx, database.Config{
		Driver: database.DriverPostgres,
		URL:    cfg.DatabaseURL,
	}); err != nil {
		return nil, err
	}

	// Connect to Redis (optional in development)
	if cfg.RedisURL != "" {
		if err := c.connectRedis(ctx); err != nil {
			if !cfg.IsDevelopment() {
				c.Close()
				return nil, err
			}
			logger.Warn("Redis not available, timeline cache disabled", "error", err)
		}
	}

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if !cfg.IsDevelopment() {
			c.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
	} else {
		c.EventPublisher = eventbus.NewBreakerPublisher(publisher, eventbus.BreakerConfig{
			FailureThreshold: convert.IntToUint32Clamped(cfg.BreakerFailureThreshold),
			Timeout:          cfg.BreakerTimeout,
		}, logger)
	}

	if err := c.wire(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// NewLocalContainer creates a container for local mode with SQLite.
// Events are delivered in process, so no Redis or RabbitMQ is needed.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Health: observability.NewHealthRegistry(),
	}

	if err := c.openDatabase(ctx, database.Config{
		Driver:     database.DriverSQLite,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	}); err != nil {
		return nil, err
	}

	c.LocalBus = eventbus.NewLocalBus(logger)
	subscribers.NewActivitySubscriber(logger).Register(c.LocalBus)
	c.EventPublisher = c.LocalBus

	if err := c.wire(); err != nil {
		c.Close()
		return nil, err
	}

	logger.Debug("local mode container initialized",
		"database", cfg.SQLitePath,
		"driver", database.DriverSQLite,
	)
	return c, nil
}

func (c *Container) openDatabase(ctx context.Context, dbCfg database.Config) error {
	conn, err := database.Open(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.Health.Register("database", observability.PingHealthChecker("database", observability.HealthStatusUnhealthy, conn.Ping))
	c.Logger.Debug("connected to database", "driver", c.DBDriver)
	return nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.RedisClient = client
	c.TimelineCache = persistence.NewRedisTimelineCache(client, c.Config.TimelineCacheTTL)
	c.Health.Register("redis", observability.PingHealthChecker("redis", observability.HealthStatusDegraded,
		func(ctx context.Context) error { return client.Ping(ctx).Err() }))
	c.Logger.Info("connected to Redis")
	return nil
}

// wire builds repositories, the outbox processor and the handlers on top
// of the open connection and chosen publisher.
func (c *Container) wire() error {
	factory, err := NewRepositoryFactory(c.DBConn)
	if err != nil {
		return err
	}
	c.TimelineRepo = factory.TimelineRepository()
	c.OutboxRepo = factory.OutboxRepository()
	c.UnitOfWork = factory.UnitOfWork()

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: c.Config.OutboxPollInterval,
		BatchSize:    c.Config.OutboxBatchSize,
		MaxRetries:   c.Config.OutboxMaxRetries,
	}, c.Logger)

	// A nil *RedisTimelineCache must not become a non-nil interface.
	var (
		readCache   queries.Cache
		invalidator commands.CacheInvalidator
	)
	if c.TimelineCache != nil {
		readCache = c.TimelineCache
		invalidator = c.TimelineCache
	}

	c.CreateTimelineHandler = commands.NewCreateTimelineHandler(c.TimelineRepo, c.OutboxRepo, c.UnitOfWork)
	c.AppendPhaseHandler = commands.NewAppendPhaseHandler(c.TimelineRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.SplitPhasesHandler = commands.NewSplitPhasesHandler(c.TimelineRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.AdjustPhaseEndHandler = commands.NewAdjustPhaseEndHandler(c.TimelineRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.RenamePhaseHandler = commands.NewRenamePhaseHandler(c.TimelineRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.DeleteTimelineHandler = commands.NewDeleteTimelineHandler(c.TimelineRepo, c.UnitOfWork, invalidator)

	c.GetTimelineHandler = queries.NewGetTimelineHandler(c.TimelineRepo, readCache)
	c.ListTimelinesHandler = queries.NewListTimelinesHandler(c.TimelineRepo)
	c.PreviewAdjustmentHandler = queries.NewPreviewAdjustmentHandler(c.TimelineRepo)
	return nil
}

// IsLocal reports whether events are delivered in process.
func (c *Container) IsLocal() bool {
	return c.LocalBus != nil
}

// DrainOutbox relays pending events once. Short-lived processes call it
// after a command so local subscribers see the events immediately.
func (c *Container) DrainOutbox(ctx context.Context) (int, error) {
	if c.OutboxProcessor == nil {
		return 0, nil
	}
	return c.OutboxProcessor.ProcessOnce(ctx)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err, "driver", c.DBDriver)
		} else {
			c.Logger.Debug("database connection closed", "driver", c.DBDriver)
		}
	}
}
