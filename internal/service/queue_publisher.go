// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can decide whether a failed publish may be
// ignored (moderation audit events) or must fail the request (outbox
// writes, where the queue is the only copy of the pending change).
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/buscaaquibdc/marketplace-api/internal/queue"
)

// PublishModerationDecided publishes a ModerationDecidedEvent to the
// moderation.decided queue. Messages are persistent and the queue durable.
func PublishModerationDecided(ctx context.Context, event q.ModerationDecidedEvent) error {
	return publish(ctx, q.ModerationQueueName, event)
}

// PublishProfileSync enqueues a failed profile write on the profile.sync
// outbox. Callers must treat an error here as a failed request: with both
// the database and the queue down there is nowhere to keep the change.
func PublishProfileSync(ctx context.Context, event q.ProfileSyncEvent) error {
	return publish(ctx, q.ProfileSyncQueueName, event)
}

func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
		return err
	}
	return nil
}
