package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"real-estate-system/internal/constants"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// PropertyEventsPublisher публикует события изменения объектов,
// тип события используется как ключ маршрутизации.
type PropertyEventsPublisher struct {
	producer MessagePublisher
}

func NewPropertyEventsPublisher(producer MessagePublisher) (*PropertyEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &PropertyEventsPublisher{producer: producer}, nil
}

func (a *PropertyEventsPublisher) PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyEventsPublisher",
		"routing_key": event.EventType,
		"property_id": event.IDProperty,
	})

	body, err := json.Marshal(PropertyChangedEventDTO{
		EventType:  event.EventType,
		IDProperty: event.IDProperty,
		OccurredAt: event.OccurredAt,
		Property:   toPayload(event.Property),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal property event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    uuid.NewString(),
		Headers: amqp.Table{
			contracts.HeaderEventType:    contracts.PropertyChangedEventType,
			contracts.HeaderEventVersion: contracts.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[contracts.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, constants.PublishTimeoutSeconds*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, event.EventType, msg); err != nil {
		adapterLogger.Error("Failed to publish property event", err, nil)
		return fmt.Errorf("failed to publish property event: %w", err)
	}

	adapterLogger.Debug("Property event published", nil)
	return nil
}
