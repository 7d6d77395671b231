package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	publishTimeout  = 5 * time.Second
	publishAttempts = 3
	appID           = "fate-server"
)

// EventPublisher публикует доменные события игры.
type EventPublisher interface {
	PublishGameEvent(ctx context.Context, event GameEvent) error
}

// rabbitMQPublisher публикует события в durable очередь через default exchange.
type rabbitMQPublisher struct {
	mu        sync.Mutex // amqp.Channel не потокобезопасен для публикации
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQEventPublisher открывает канал и объявляет очередь событий.
func NewRabbitMQEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Event queue declared", zap.String("queue", queueName))
	return &rabbitMQPublisher{
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("EventPublisher"),
	}, nil
}

func (p *rabbitMQPublisher) PublishGameEvent(ctx context.Context, event GameEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event %s: %w", event.Type, err)
	}
	if err := p.publish(ctx, body); err != nil {
		p.logger.Error("Failed to publish game event",
			zap.String("type", string(event.Type)),
			zap.String("sessionID", event.SessionID),
			zap.Error(err),
		)
		return err
	}
	p.logger.Debug("Game event published", zap.String("type", string(event.Type)), zap.String("sessionID", event.SessionID))
	return nil
}

func (p *rabbitMQPublisher) publish(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange
			p.queueName, // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        appID,
			},
		)
		if err == nil {
			return nil
		}
		p.logger.Warn("Publish attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("publish to %s cancelled: %w", p.queueName, ctx.Err())
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("failed to publish to %s after retries: %w", p.queueName, err)
}

// noopPublisher используется, когда брокер не настроен.
type noopPublisher struct {
	logger *zap.Logger
}

// NewNoopEventPublisher возвращает publisher, который только пишет событие в debug лог.
func NewNoopEventPublisher(logger *zap.Logger) EventPublisher {
	return &noopPublisher{logger: logger.Named("NoopEventPublisher")}
}

func (p *noopPublisher) PublishGameEvent(_ context.Context, event GameEvent) error {
	p.logger.Debug("Game event dropped (no broker configured)", zap.String("type", string(event.Type)), zap.String("sessionID", event.SessionID))
	return nil
}
