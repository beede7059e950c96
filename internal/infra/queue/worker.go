package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier is the contract for whatever delivers the conversion notice
// (SMTP today). The worker is fully decoupled from the database.
type Notifier interface {
	SendConversionNotice(ctx context.Context, payload ConversionPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ConversionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, rejecting without requeue: %s", err)
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] processing conversion notice for lead %d (%s)", payload.LeadID, payload.Name)

			if err := w.Notifier.SendConversionNotice(context.Background(), payload); err != nil {
				log.Printf("[WORKER] notification failed: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("[WORKER] conversion notice sent for lead %d", payload.LeadID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}
