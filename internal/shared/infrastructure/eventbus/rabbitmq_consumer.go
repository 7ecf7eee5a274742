package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultConsumerQueueName is the durable queue the worker reads from.
const DefaultConsumerQueueName = "planner.activity"

// RabbitMQConsumerConfig configures the RabbitMQ consumer.
type RabbitMQConsumerConfig struct {
	URL       string
	QueueName string
	// Patterns are topic bindings between the queue and ExchangeName.
	Patterns []string
	Logger   *slog.Logger
}

// RabbitMQConsumer reads events from a queue bound to ExchangeName and hands
// each one to a Publisher, usually a LocalBus with subscribers attached.
type RabbitMQConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	sink    Publisher
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	closed  chan struct{}
}

// NewRabbitMQConsumer dials the broker, declares the queue and binds it to
// every pattern.
func NewRabbitMQConsumer(cfg RabbitMQConsumerConfig, sink Publisher) (*RabbitMQConsumer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.QueueName == "" {
		cfg.QueueName = DefaultConsumerQueueName
	}
	if len(cfg.Patterns) == 0 {
		return nil, errors.New("rabbitmq consumer needs at least one binding pattern")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	if err := ch.ExchangeDeclare(ExchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.QueueName, err)
	}
	for _, pattern := range cfg.Patterns {
		if err := ch.QueueBind(cfg.QueueName, pattern, ExchangeName, false, nil); err != nil {
			closeAll()
			return nil, fmt.Errorf("bind %s to %s: %w", cfg.QueueName, pattern, err)
		}
	}

	cfg.Logger.Info("rabbitmq consumer connected",
		"queue", cfg.QueueName,
		"exchange", ExchangeName,
		"patterns", cfg.Patterns,
	)
	return &RabbitMQConsumer{
		conn:    conn,
		channel: ch,
		queue:   cfg.QueueName,
		sink:    sink,
		logger:  cfg.Logger,
		closed:  make(chan struct{}),
	}, nil
}

// Start consumes until ctx is done or Close is called. It blocks.
func (c *RabbitMQConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("consumer already running")
	}
	c.running = true
	c.mu.Unlock()

	// One unacknowledged message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("started consuming events", "queue", c.queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.closed:
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed unexpectedly")
			}
			c.settle(d, Deliver(ctx, c.sink, d.RoutingKey, d.Body))
		}
	}
}

// settle acks handled messages and requeues the rest.
func (c *RabbitMQConsumer) settle(d amqp.Delivery, err error) {
	if err != nil {
		c.logger.Error("failed to process message", "routing_key", d.RoutingKey, "error", err)
		if nackErr := d.Nack(false, true); nackErr != nil {
			c.logger.Error("failed to nack message", "error", nackErr)
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		c.logger.Error("failed to ack message", "error", ackErr)
	}
}

// Deliver hands one consumed message to sink.
func Deliver(ctx context.Context, sink Publisher, routingKey string, body []byte) error {
	if routingKey == "" {
		return errors.New("message has no routing key")
	}
	return sink.Publish(ctx, routingKey, body)
}

// Close stops Start and closes the connection.
func (c *RabbitMQConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.closed:
		return nil
	default:
		close(c.closed)
	}
	c.running = false

	if err := c.channel.Close(); err != nil {
		c.logger.Warn("close rabbitmq channel", "error", err)
	}
	return c.conn.Close()
}
