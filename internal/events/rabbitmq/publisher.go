package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dtroode/gophboard-server/internal/config"
	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

const (
	publishTimeout       = 5 * time.Second
	eventTypePostCreated = "post.created"
)

// channel is the part of *amqp.Channel the publisher relies on.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher sends board events as persistent JSON messages to a durable queue.
type Publisher struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	logger  *logger.Logger
	now     func() time.Time
}

// NewPublisher dials the broker and declares the events queue.
func NewPublisher(cfg config.Events, logger *logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	p, err := newPublisher(ch, cfg.Queue, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newPublisher(ch channel, queue string, logger *logger.Logger) (*Publisher, error) {
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	logger.Info("Events: queue declared", "queue", q.Name)

	return &Publisher{
		channel: ch,
		queue:   q.Name,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (p *Publisher) PublishPostCreated(ctx context.Context, event model.PostCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(publishCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         eventTypePostCreated,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Events: post created event published",
		"queue", p.queue,
		"post_id", event.PostID)

	return nil
}

// Close closes the channel and the underlying connection.
func (p *Publisher) Close() error {
	var err error
	if p.channel != nil {
		err = p.channel.Close()
	}
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}
