package subscriber

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/publisher/rabbitmq"
)

type liveBroadcaster interface {
	Publish(update domain.VehicleUpdate)
}

// UpdateConsumer forwards bus messages to the live broadcaster. It consumes
// from its own exclusive auto-delete queue bound to the fanout exchange, so
// it sees every update without competing with durable consumers.
type UpdateConsumer struct {
	conn        *amqp.Connection
	broadcaster liveBroadcaster
}

func NewUpdateConsumer(conn *amqp.Connection, broadcaster liveBroadcaster) *UpdateConsumer {
	return &UpdateConsumer{conn: conn, broadcaster: broadcaster}
}

// Start begins consuming in a background goroutine. The goroutine exits
// when the channel is closed by the broker or connection shutdown.
func (c *UpdateConsumer) Start() error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(rabbitmq.ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", rabbitmq.ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go c.forward(msgs)
	return nil
}

func (c *UpdateConsumer) forward(msgs <-chan amqp.Delivery) {
	for msg := range msgs {
		var update domain.VehicleUpdate
		if err := json.Unmarshal(msg.Body, &update); err != nil {
			log.Printf("skipping malformed update: %v", err)
			continue
		}
		c.broadcaster.Publish(update)
	}
}
