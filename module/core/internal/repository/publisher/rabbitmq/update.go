package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/publisher"
)

var _ publisher.UpdatePublisher = (*UpdatePublisher)(nil)

const (
	// ExchangeName is the fanout exchange every vehicle update goes to.
	ExchangeName = "fleet.updates"
	// QueueName is the durable queue bound for offline consumers such as
	// the notification dispatcher.
	QueueName = "vehicle_updates"
)

type UpdatePublisher struct {
	ch *amqp.Channel
}

func NewUpdatePublisher(conn *amqp.Connection) (*UpdatePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &UpdatePublisher{ch: ch}, nil
}

func (p *UpdatePublisher) PublishUpdate(ctx context.Context, update *domain.VehicleUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
