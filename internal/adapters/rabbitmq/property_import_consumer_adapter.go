package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
	"real-estate-system/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PropertyImportConsumerAdapter - входящий адаптер: слушает очередь импорта
// и создает объекты через CreatePropertyUseCase.
type PropertyImportConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  usecases_port.CreatePropertyUseCase
	logger   port.LoggerPort
}

func NewPropertyImportConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.CreatePropertyUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*PropertyImportConsumerAdapter, error) {
	adapter := &PropertyImportConsumerAdapter{
		useCase: useCase,
		logger:  logger.WithFields(port.Fields{"component": "PropertyImportConsumerAdapter"}),
	}

	consumerCfg.Logger = NewPkgLoggerBridge(logger.WithFields(port.Fields{
		"component": "rabbitmq_consumer",
		"queue":     consumerCfg.QueueName,
	}))

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.handleMessage, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for property imports: %w", err)
	}
	adapter.consumer = consumer
	return adapter, nil
}

// Start блокируется до отмены ctx
func (a *PropertyImportConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *PropertyImportConsumerAdapter) Close() error {
	return a.consumer.Close()
}

func (a *PropertyImportConsumerAdapter) handleMessage(d amqp.Delivery) error {
	return a.process(context.Background(), d.Headers, d.Body)
}

// process валидирует событие и создает объект.
// Недоступность хранилища возвращается как Retryable: сообщение ждет в очереди
// повторов. Невалидные сообщения сразу уходят в dead-letter очередь.
func (a *PropertyImportConsumerAdapter) process(ctx context.Context, headers amqp.Table, body []byte) error {
	traceID, _ := headers[contracts.HeaderTraceID].(string)
	if _, err := uuid.Parse(traceID); err != nil {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{"trace_id": traceID})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := headers[contracts.HeaderEventType].(string)
	eventVersion, _ := headers[contracts.HeaderEventVersion].(string)
	if eventType == "" {
		eventType, eventVersion = contracts.PropertyImportedEventType, contracts.EventVersionV1
	}
	if eventType != contracts.PropertyImportedEventType {
		err := fmt.Errorf("unexpected event type %q", eventType)
		msgLogger.Warn("Rejecting message", port.Fields{"error": err.Error()})
		return err
	}

	if err := contracts.ValidateEvent(eventType, eventVersion, body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	var dto PropertyImportedEventDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		msgLogger.Error("Failed to unmarshal import event", err, nil)
		return err
	}

	msgLogger = msgLogger.WithFields(port.Fields{"event_id": dto.EventID, "source": dto.Source})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	created, err := a.useCase.Execute(ctx, dto.Property.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			msgLogger.Warn("Imported property is invalid", port.Fields{"error": err.Error()})
		case errors.Is(err, domain.ErrStorageUnavailable):
			msgLogger.Warn("Storage unavailable, import will be retried", port.Fields{"error": err.Error()})
			return rabbitmq_consumer.Retryable(err)
		default:
			msgLogger.Error("Failed to import property", err, nil)
		}
		return err
	}

	msgLogger.Info("Property imported", port.Fields{"property_id": created.IDProperty})
	return nil
}
