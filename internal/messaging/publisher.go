// Package messaging publishes story events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	appID                = "story-narrator"
	storyGeneratedType   = "story.generated"
	defaultConnectTries  = 5
	defaultConnectPeriod = 3 * time.Second
)

var errPublisherClosed = errors.New("story event publisher is closed")

var _ interfaces.StoryEventPublisher = (*RabbitMQPublisher)(nil)

// RabbitMQPublisher writes StoryGeneratedEvent messages to a durable queue
// through the default exchange.
type RabbitMQPublisher struct {
	conn      *amqp.Connection
	mu        sync.Mutex
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// ConnectRabbitMQ dials RabbitMQ, retrying a few times while the broker starts.
func ConnectRabbitMQ(ctx context.Context, url string, logger *zap.Logger) (*amqp.Connection, error) {
	var lastErr error
	for attempt := 1; attempt <= defaultConnectTries; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", defaultConnectTries),
			zap.Duration("retryDelay", defaultConnectPeriod),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultConnectPeriod):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", defaultConnectTries, lastErr)
}

// NewRabbitMQPublisher opens a channel on conn and declares queueName. The
// publisher owns conn and closes it in Close.
func NewRabbitMQPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("story event publisher: failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("story event publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger = logger.Named("StoryEventPublisher")
	logger.Info("Story event queue declared", zap.String("queue", queueName))
	return &RabbitMQPublisher{conn: conn, channel: ch, queueName: queueName, logger: logger}, nil
}

// PublishStoryGenerated implements interfaces.StoryEventPublisher.
func (p *RabbitMQPublisher) PublishStoryGenerated(ctx context.Context, event models.StoryGeneratedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal story event %s: %w", event.EventID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return errPublisherClosed
	}

	err = p.channel.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Type:         storyGeneratedType,
			Timestamp:    event.GeneratedAt,
			AppId:        appID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish story event %s to queue %s: %w", event.EventID, p.queueName, err)
	}
	p.logger.Debug("Story event published", zap.String("eventID", event.EventID), zap.String("queue", p.queueName))
	return nil
}

// Close closes the channel and the connection. It is safe to call twice.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return nil
	}
	chErr := p.channel.Close()
	p.channel = nil
	var connErr error
	if p.conn != nil && !p.conn.IsClosed() {
		connErr = p.conn.Close()
	}
	return errors.Join(chErr, connErr)
}
