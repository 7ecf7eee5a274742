package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/weddingplan/planner/internal/shared/infrastructure/eventbus"
)

// ProcessorConfig tunes the relay loop.
type ProcessorConfig struct {
	PollInterval     time.Duration
	BatchSize        int
	MaxRetries       int
	RetryBackoffBase time.Duration
	RetryBackoffMax  time.Duration
}

// DefaultProcessorConfig returns the settings used when nothing is configured.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval:     time.Second,
		BatchSize:        100,
		MaxRetries:       5,
		RetryBackoffBase: time.Second,
		RetryBackoffMax:  time.Minute,
	}
}

// Stats is a snapshot of what the processor has done since it was created.
type Stats struct {
	Running      bool       `json:"running"`
	Published    uint64     `json:"published"`
	Failed       uint64     `json:"failed"`
	DeadLettered uint64     `json:"dead_lettered"`
	LastError    string     `json:"last_error,omitempty"`
	LastErrorAt  *time.Time `json:"last_error_at,omitempty"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
}

// Processor relays pending messages to a publisher with exponential
// backoff, dead-lettering a message after MaxRetries failed attempts.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
	stats   Stats
}

// NewProcessor creates a processor. A nil logger means slog.Default().
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultProcessorConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.RetryBackoffBase <= 0 {
		config.RetryBackoffBase = defaults.RetryBackoffBase
	}
	if config.RetryBackoffMax <= 0 {
		config.RetryBackoffMax = defaults.RetryBackoffMax
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the polling loop until ctx is done or Stop is called.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})

	p.wg.Add(1)
	go p.loop(ctx, p.stop)

	p.logger.Info("outbox processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize,
	)
}

// Stop ends the loop and waits for the current batch to finish.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stop)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("outbox processor stopped")
}

func (p *Processor) loop(ctx context.Context, stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := p.ProcessOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				p.logger.Error("outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessOnce relays one batch and returns how many messages were published.
func (p *Processor) ProcessOnce(ctx context.Context) (int, error) {
	now := p.now()
	msgs, err := p.repo.Pending(ctx, now, p.config.BatchSize)
	p.record(func(s *Stats) { s.LastRunAt = &now })
	if err != nil {
		p.recordError(err)
		return 0, err
	}

	published := 0
	for _, msg := range msgs {
		if err := p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); err != nil {
			p.handleFailure(ctx, msg, err)
			continue
		}
		if err := p.repo.MarkPublished(ctx, msg.ID, p.now()); err != nil {
			p.logger.Error("mark outbox message published", "id", msg.ID, "error", err)
			continue
		}
		published++
		p.record(func(s *Stats) { s.Published++ })
	}
	return published, nil
}

func (p *Processor) handleFailure(ctx context.Context, msg *Message, err error) {
	reason := err.Error()
	attempt := msg.RetryCount + 1
	p.recordError(err)

	if attempt >= p.config.MaxRetries {
		p.logger.Error("outbox message dead-lettered",
			"id", msg.ID,
			"event_id", msg.EventID,
			"routing_key", msg.RoutingKey,
			"attempts", attempt,
			"error", err,
		)
		p.record(func(s *Stats) { s.DeadLettered++ })
		if markErr := p.repo.MarkDead(ctx, msg.ID, reason, p.now()); markErr != nil {
			p.logger.Error("mark outbox message dead", "id", msg.ID, "error", markErr)
		}
		return
	}

	next := p.now().Add(p.Backoff(attempt))
	p.logger.Warn("outbox publish failed",
		"id", msg.ID,
		"routing_key", msg.RoutingKey,
		"attempt", attempt,
		"next_retry_at", next,
		"error", err,
	)
	p.record(func(s *Stats) { s.Failed++ })
	if markErr := p.repo.MarkFailed(ctx, msg.ID, reason, next); markErr != nil {
		p.logger.Error("mark outbox message failed", "id", msg.ID, "error", markErr)
	}
}

// Backoff returns the wait before retry number attempt (1-based):
// base, 2*base, 4*base and so on, capped at RetryBackoffMax.
func (p *Processor) Backoff(attempt int) time.Duration {
	backoff := p.config.RetryBackoffBase
	for i := 1; i < attempt && backoff < p.config.RetryBackoffMax; i++ {
		backoff *= 2
	}
	return min(backoff, p.config.RetryBackoffMax)
}

// Stats returns a snapshot of the processor counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Running = p.running
	return s
}

func (p *Processor) record(fn func(*Stats)) {
	p.mu.Lock()
	fn(&p.stats)
	p.mu.Unlock()
}

func (p *Processor) recordError(err error) {
	now := p.now()
	p.record(func(s *Stats) {
		s.LastError = err.Error()
		s.LastErrorAt = &now
	})
}
