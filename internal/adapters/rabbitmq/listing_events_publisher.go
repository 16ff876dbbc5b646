package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/port"
	"rentwise/pkg/rabbitmq/rabbitmq_producer"
)

const publishTimeout = 10 * time.Second

// ListingEventsPublisher emits listing lifecycle events on the listing
// events exchange. The event kind doubles as the routing key.
type ListingEventsPublisher struct {
	producer *rabbitmq_producer.Publisher
}

func NewListingEventsPublisher(producer *rabbitmq_producer.Publisher) (*ListingEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &ListingEventsPublisher{producer: producer}, nil
}

func (a *ListingEventsPublisher) PublishListingEvent(ctx context.Context, event port.ListingEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ListingEventsPublisher",
		"routing_key": event.Kind,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal listing event", err, nil)
		return fmt.Errorf("failed to marshal listing event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "ListingEvent",
			"event-version": "1.0.0",
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, event.Kind, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, nil)
		return err
	}

	adapterLogger.Debug("Published listing event", port.Fields{"listing_id": event.ListingID.String()})
	return nil
}

func (a *ListingEventsPublisher) Close() error {
	return a.producer.Close()
}

// NoopPublisher satisfies EventPublisherPort when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishListingEvent(ctx context.Context, event port.ListingEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
