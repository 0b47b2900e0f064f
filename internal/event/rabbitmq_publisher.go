package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	routingKeyCustomerCreated = "customer.created"
	routingKeyEmailVerified   = "customer.email_verified"
	routingKeyPhoneVerified   = "customer.phone_verified"
	routingKeyAddressAdded    = "customer.address_added"
	routingKeyAddressRemoved  = "customer.address_removed"
	publisherAppID            = "pharmacy-customers"
)

// CustomerCreatedEvent announces a freshly persisted customer row.
type CustomerCreatedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID string    `json:"customerId"`
	Email      string    `json:"email"`
}

// ContactVerifiedEvent announces a verification flag flip. Channel is either
// "email" or "phone".
type ContactVerifiedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID string    `json:"customerId"`
	Channel    string    `json:"channel"`
}

// AddressChangedEvent announces a change to a customer's address collection.
type AddressChangedEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	CustomerID   string    `json:"customerId"`
	NickName     string    `json:"nickName"`
	AddressCount int       `json:"addressCount"`
}

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishContactVerified(ctx context.Context, event ContactVerifiedEvent) error
	PublishAddressAdded(ctx context.Context, event AddressChangedEvent) error
	PublishAddressRemoved(ctx context.Context, event AddressChangedEvent) error
}

type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, routingKeyCustomerCreated, event)
}

func (p *RabbitMQEventPublisher) PublishContactVerified(ctx context.Context, event ContactVerifiedEvent) error {
	key := routingKeyEmailVerified
	if event.Channel == "phone" {
		key = routingKeyPhoneVerified
	}
	return p.publish(ctx, key, event)
}

func (p *RabbitMQEventPublisher) PublishAddressAdded(ctx context.Context, event AddressChangedEvent) error {
	return p.publish(ctx, routingKeyAddressAdded, event)
}

func (p *RabbitMQEventPublisher) PublishAddressRemoved(ctx context.Context, event AddressChangedEvent) error {
	return p.publish(ctx, routingKeyAddressRemoved, event)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, payload interface{}) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey))

	channel, err := p.conn.Channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully published message")
	return nil
}

// NoopPublisher is used when no broker is configured; publishes are dropped.
type NoopPublisher struct{}

var _ EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishCustomerCreated(context.Context, CustomerCreatedEvent) error { return nil }
func (NoopPublisher) PublishContactVerified(context.Context, ContactVerifiedEvent) error { return nil }
func (NoopPublisher) PublishAddressAdded(context.Context, AddressChangedEvent) error     { return nil }
func (NoopPublisher) PublishAddressRemoved(context.Context, AddressChangedEvent) error   { return nil }
