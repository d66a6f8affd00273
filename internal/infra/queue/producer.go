package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadrunner/internal/entity"
)

// EventPayload é o evento inbound na fila: webhook chega, publica
// aqui, o worker aplica na máquina de estados com calma.
type EventPayload struct {
	LeadID     string              `json:"lead_id"`
	Event      entity.InboundEvent `json:"event"`
	OccurredAt time.Time           `json:"occurred_at"`
	Origin     string              `json:"origin"` // WEBHOOK_EMAIL, WEBHOOK_PAYMENT, ...
}

type EventProducerInterface interface {
	PublishEvent(ctx context.Context, payload EventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, payload EventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // evento inbound não se perde em restart
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
