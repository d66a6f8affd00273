package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadrunner/internal/entity"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

// EventRecorder é o usecase que aplica o evento no lead.
type EventRecorder interface {
	Execute(ctx context.Context, leadID string, event entity.InboundEvent, occurredAt time.Time) (*entity.Lead, error)
}

// Worker consome a fila de eventos inbound e aplica cada um na máquina
// de estados. Evento tem prioridade sobre o sweep de cadência.
type Worker struct {
	Channel  *amqp.Channel
	Recorder EventRecorder
}

func NewWorker(ch *amqp.Channel, recorder EventRecorder) *Worker {
	return &Worker{Channel: ch, Recorder: recorder}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack: manual é mais seguro
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[worker] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload EventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] malformed event payload: %s", err)
				// Mensagem podre: rejeita sem requeue pra não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] applying %s to lead %s (origin %s)", payload.Event, payload.LeadID, payload.Origin)

			_, err := w.Recorder.Execute(context.Background(), payload.LeadID, payload.Event, payload.OccurredAt)
			switch {
			case err == nil:
				d.Ack(false)

			case isInvalidTransition(err):
				// Evento que não cabe no estado atual: loga e descarta,
				// o lead fica como está. Reentrega não vai ajudar.
				log.Printf("[worker] event ignored: %s", err)
				d.Ack(false)

			default:
				// Banco fora etc: manda pra DLQ pra inspeção.
				log.Printf("[worker] failed to apply event: %s", err)
				d.Nack(false, false)
			}
		}
	}()

	log.Printf(" [*] Event worker waiting on queue '%s'", queueName)
	<-forever
}

func isInvalidTransition(err error) bool {
	if errors.Is(err, entity.ErrInvalidTransition) {
		return true
	}
	var de *usecase.DomainError
	return errors.As(err, &de) && de.Code == "INVALID_TRANSITION"
}
