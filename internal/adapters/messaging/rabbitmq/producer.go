package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is implemented by types that can publish events
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body interface{}) error
	Close()
}

// EventProducer publishes JSON events to a durable topic exchange
type EventProducer struct {
	mu       sync.Mutex
	url      string
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// FallbackProducer logs events instead of publishing them. It is used when
// RabbitMQ is not configured or unreachable at startup.
type FallbackProducer struct {
	logger *slog.Logger
}

// NewFallbackProducer creates a publisher that only logs
func NewFallbackProducer(logger *slog.Logger) *FallbackProducer {
	return &FallbackProducer{logger: logger}
}

func (p *FallbackProducer) Publish(_ context.Context, routingKey string, body interface{}) error {
	p.logger.Debug("event not published: broker disabled", "routing_key", routingKey, "body", body)
	return nil
}

func (p *FallbackProducer) Close() {}

// SanitizeURL trims quotes and stray characters and checks the scheme
func SanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer dials RabbitMQ and declares the exchange
func NewEventProducer(amqpURL, exchange string, logger *slog.Logger) (*EventProducer, error) {
	cleanURL, err := SanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}

	p := &EventProducer{url: cleanURL, exchange: exchange, logger: logger}
	if err := p.connect(); err != nil {
		p.close()
		return nil, err
	}
	return p, nil
}

func dial(amqpURL string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(amqpURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

// connect reopens the channel, redialing first when the connection is gone.
// The caller holds p.mu or owns p exclusively.
func (p *EventProducer) connect() error {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := dial(p.url)
		if err != nil {
			return err
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	p.channel = ch
	return p.declare()
}

func (p *EventProducer) declare() error {
	return p.channel.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	)
}

// Publish sends body as JSON with the routing key. On failure the channel is
// reopened once, redialing the broker if the connection has closed, before
// giving up.
func (p *EventProducer) Publish(ctx context.Context, routingKey string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         payload,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
		if err == nil {
			return nil
		}
		p.logger.Warn("publish failed, reopening channel", "exchange", p.exchange, "error", err)
	}

	if connErr := p.connect(); connErr != nil {
		return fmt.Errorf("publish %s: %w", routingKey, connErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close closes the channel and connection
func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.close()
}

func (p *EventProducer) close() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Connect returns a live producer, or a fallback when url is empty or the
// broker cannot be reached
func Connect(amqpURL, exchange string, logger *slog.Logger) Publisher {
	if strings.TrimSpace(amqpURL) == "" {
		logger.Info("RABBITMQ_URL not set, loan events will only be logged")
		return NewFallbackProducer(logger)
	}
	p, err := NewEventProducer(amqpURL, exchange, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, loan events will only be logged", "error", err)
		return NewFallbackProducer(logger)
	}
	logger.Info("rabbitmq connected", "exchange", exchange)
	return p
}
