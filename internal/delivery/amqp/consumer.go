package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	amqplib "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/broker"
	"github.com/Harsh-BH/gauntlet/internal/domain"
)

const (
	// Reconnection parameters
	maxReconnectDelay  = 30 * time.Second
	baseReconnectDelay = 1 * time.Second
)

// Consumer listens to RabbitMQ and dispatches SubmissionMessages (with ack callbacks) to a channel.
type Consumer struct {
	url      string
	prefetch int
	conn     *amqplib.Connection
	channel  *amqplib.Channel
	logger   *zap.Logger
	out      chan<- *domain.SubmissionMessage

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
}

// NewConsumer creates a consumer that never auto-acks: each delivery is wrapped with
// Ack/Nack callbacks the worker calls once the submission reaches a terminal state.
func NewConsumer(url string, prefetch int, out chan<- *domain.SubmissionMessage, logger *zap.Logger) (*Consumer, error) {
	if prefetch < 1 {
		prefetch = 1
	}
	c := &Consumer{
		url:      url,
		prefetch: prefetch,
		logger:   logger,
		out:      out,
		closeCh:  make(chan struct{}),
	}

	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consumer) connect() error {
	conn, err := amqplib.Dial(c.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	// One unacknowledged delivery per worker slot.
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("amqp qos: %w", err)
	}

	if err := broker.DeclareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = ch
	c.mu.Unlock()

	return nil
}

// Start begins consuming messages. It blocks until the context is cancelled.
// On connection loss it automatically reconnects with exponential backoff.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		err := c.consume(ctx)
		if err == nil {
			return nil
		}

		select {
		case <-c.closeCh:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		c.logger.Warn("AMQP consumer lost connection, reconnecting...", zap.Error(err))

		for attempt := 0; ; attempt++ {
			delay := backoff(attempt)
			c.logger.Info("Reconnect attempt",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)

			select {
			case <-c.closeCh:
				return nil
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}

			if err := c.connect(); err != nil {
				c.logger.Error("Reconnect failed", zap.Error(err))
				continue
			}

			c.logger.Info("Reconnected to RabbitMQ")
			break
		}
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(math.Min(
		float64(baseReconnectDelay)*math.Pow(2, float64(attempt)),
		float64(maxReconnectDelay),
	))
}

// consume runs one consume session until the delivery channel closes or ctx is cancelled.
func (c *Consumer) consume(ctx context.Context) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()

	if ch == nil {
		return fmt.Errorf("channel is nil")
	}

	deliveries, err := ch.Consume(
		broker.Queue,
		"",    // auto-generated consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	c.logger.Info("AMQP consumer started", zap.String("queue", broker.Queue))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("AMQP consumer stopping (context cancelled)")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			sub, err := decodeSubmission(delivery.Body)
			if err != nil {
				c.logger.Error("Discarding undecodable submission",
					zap.Error(err),
					zap.String("message_id", delivery.MessageId),
				)
				_ = delivery.Nack(false, false) // dead-letter
				continue
			}

			c.logger.Debug("Received submission from queue",
				zap.String("submission_id", sub.SubmissionID.String()),
				zap.String("language", string(sub.Language)),
			)

			tag := delivery.DeliveryTag
			localCh := ch

			msg := &domain.SubmissionMessage{
				Submission: sub,
				Ack: func() error {
					return localCh.Ack(tag, false)
				},
				Nack: func(requeue bool) error {
					return localCh.Nack(tag, false, requeue)
				},
			}

			// Blocks while every worker is busy; prefetch bounds what the broker hands us.
			select {
			case c.out <- msg:
			case <-ctx.Done():
				_ = delivery.Nack(false, true)
				return nil
			}
		}
	}
}

// decodeSubmission parses a queued submission and rejects payloads the worker cannot process.
func decodeSubmission(body []byte) (*domain.Submission, error) {
	var sub domain.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	if sub.SubmissionID == uuid.Nil {
		return nil, fmt.Errorf("decode submission: missing submission_id")
	}
	if !sub.Language.IsValid() {
		return nil, fmt.Errorf("decode submission %s: %w", sub.SubmissionID, domain.ErrInvalidLanguage)
	}
	if sub.ProblemID == "" {
		return nil, fmt.Errorf("decode submission %s: missing problem_id", sub.SubmissionID)
	}
	return &sub, nil
}

// Close gracefully shuts down the consumer.
func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.closeCh)

	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
