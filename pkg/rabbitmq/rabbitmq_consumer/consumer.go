package rabbitmq_consumer

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/pkg/rabbitmq/rabbitmq_producer"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение.
// nil - сообщение подтверждается. Ошибка, обернутая в Retryable, при включенных
// повторах отправляет сообщение в очередь ожидания, любая другая - в dead-letter очередь.
type MessageHandler func(delivery amqp.Delivery) error

// RetryableError помечает временную ошибку обработчика
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable оборачивает ошибку, после которой сообщение стоит обработать повторно
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func IsRetryable(err error) bool {
	var retryable *RetryableError
	return errors.As(err, &retryable)
}

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	QueueName    string
	DurableQueue bool
	QueueArgs    amqp.Table

	// Привязка к обменнику, пустое имя - без привязки
	ExchangeName    string
	ExchangeType    string
	DurableExchange bool
	RoutingKey      string

	// Dead-letter: отклоненные сообщения попадают в DeadLetterQueue
	DeadLetterExchange string
	DeadLetterQueue    string

	// Повторы. Основная очередь отклоняет сообщения в RetryExchange, очередь ожидания
	// RetryQueue держит их RetryTTL миллисекунд и возвращает в ExchangeName.
	// После MaxRetries попыток сообщение публикуется в DeadLetterExchange.
	EnableRetryMechanism bool
	RetryExchange        string
	RetryQueue           string
	RetryTTL             int
	MaxRetries           int

	// PrefetchCount ограничивает число сообщений в обработке одновременно
	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

func (c ConsumerConfig) validate() error {
	if c.QueueName == "" {
		return fmt.Errorf("consumer: queue name is required")
	}
	if c.ExchangeName != "" && c.ExchangeType == "" {
		return fmt.Errorf("consumer: exchange type is required when exchange name is set")
	}
	if (c.DeadLetterExchange == "") != (c.DeadLetterQueue == "") {
		return fmt.Errorf("consumer: dead-letter exchange and queue must be set together")
	}
	if c.EnableRetryMechanism {
		if c.RetryExchange == "" || c.RetryQueue == "" {
			return fmt.Errorf("consumer: retry exchange and queue are required when retries are enabled")
		}
		if c.ExchangeName == "" || c.DeadLetterExchange == "" {
			return fmt.Errorf("consumer: retries need both a source exchange and a dead-letter exchange")
		}
		if c.RetryTTL <= 0 || c.MaxRetries <= 0 {
			return fmt.Errorf("consumer: retry TTL and max retries must be positive")
		}
	}
	return nil
}

type disposition int

const (
	dispositionAck disposition = iota
	// Nack без requeue: сообщение уходит по x-dead-letter-exchange очереди
	dispositionReject
	// Nack в режиме повторов: сообщение уходит в очередь ожидания
	dispositionRetry
	// публикация в DeadLetterExchange и Ack оригинала
	dispositionDeadLetter
)

func (c ConsumerConfig) dispositionFor(err error, deaths int64) disposition {
	switch {
	case err == nil:
		return dispositionAck
	case !c.EnableRetryMechanism:
		return dispositionReject
	case IsRetryable(err) && deaths < int64(c.MaxRetries):
		return dispositionRetry
	default:
		return dispositionDeadLetter
	}
}

// deathCount - сколько раз сообщение было отклонено из очереди queueName (заголовок x-death)
func deathCount(headers amqp.Table, queueName string) int64 {
	deaths, ok := headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if queue, _ := tbl["queue"].(string); queue != queueName {
			continue
		}
		if count, ok := tbl["count"].(int64); ok {
			return count
		}
	}
	return 0
}

// Consumer читает очередь и обрабатывает сообщения параллельно,
// не более PrefetchCount одновременно.
type Consumer struct {
	config     ConsumerConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	handler    MessageHandler
	wg         sync.WaitGroup

	// публикует исчерпавшие повторы сообщения, только при EnableRetryMechanism
	deadLetters *rabbitmq_producer.Publisher

	Logger rabbitmq_common.Logger
}

// NewConsumer открывает канал и объявляет очередь, обменник, привязку и dead-letter инфраструктуру
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	if cfg.PrefetchCount <= 0 {
		cfg.PrefetchCount = 1
	}
	logger := rabbitmq_common.OrNoop(cfg.Logger)

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &Consumer{
		config:     cfg,
		connection: conn,
		channel:    ch,
		handler:    handler,
		Logger:     logger,
	}
	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}

	if cfg.EnableRetryMechanism {
		publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName: cfg.DeadLetterExchange,
			Logger:       logger,
		}, connManager)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to create dead-letter publisher: %w", err)
		}
		c.deadLetters = publisher
	}
	return c, nil
}

func (c *Consumer) setup() error {
	cfg := c.config

	if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	queueArgs := amqp.Table{}
	for k, v := range cfg.QueueArgs {
		queueArgs[k] = v
	}

	if cfg.DeadLetterExchange != "" {
		c.Logger.Debug("Declaring dead-letter exchange and queue",
			"exchange", cfg.DeadLetterExchange,
			"queue", cfg.DeadLetterQueue,
		)
		if err := c.channel.ExchangeDeclare(cfg.DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare dead-letter exchange: %w", err)
		}
		if _, err := c.channel.QueueDeclare(cfg.DeadLetterQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare dead-letter queue: %w", err)
		}
		if err := c.channel.QueueBind(cfg.DeadLetterQueue, "", cfg.DeadLetterExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind dead-letter queue: %w", err)
		}
		queueArgs["x-dead-letter-exchange"] = cfg.DeadLetterExchange
	}
	if cfg.EnableRetryMechanism {
		queueArgs["x-dead-letter-exchange"] = cfg.RetryExchange
	}

	c.Logger.Debug("Declaring queue", "name", cfg.QueueName, "durable", cfg.DurableQueue)
	if _, err := c.channel.QueueDeclare(cfg.QueueName, cfg.DurableQueue, false, false, false, queueArgs); err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", cfg.QueueName, err)
	}

	if cfg.ExchangeName != "" {
		if err := c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, cfg.DurableExchange, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange '%s': %w", cfg.ExchangeName, err)
		}
		c.Logger.Debug("Binding queue to exchange",
			"queue", cfg.QueueName,
			"exchange", cfg.ExchangeName,
			"routing_key", cfg.RoutingKey,
		)
		if err := c.channel.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", cfg.QueueName, cfg.ExchangeName, err)
		}
	}

	if cfg.EnableRetryMechanism {
		c.Logger.Debug("Declaring retry exchange and wait queue",
			"exchange", cfg.RetryExchange,
			"queue", cfg.RetryQueue,
			"ttl_ms", cfg.RetryTTL,
		)
		if err := c.channel.ExchangeDeclare(cfg.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare retry exchange: %w", err)
		}
		// по истечении TTL сообщение возвращается в исходный обменник с исходным ключом
		waitArgs := amqp.Table{
			"x-message-ttl":          int32(cfg.RetryTTL),
			"x-dead-letter-exchange": cfg.ExchangeName,
		}
		if _, err := c.channel.QueueDeclare(cfg.RetryQueue, true, false, false, false, waitArgs); err != nil {
			return fmt.Errorf("failed to declare retry-wait queue: %w", err)
		}
		if err := c.channel.QueueBind(cfg.RetryQueue, "", cfg.RetryExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind retry-wait queue: %w", err)
		}
	}
	return nil
}

// StartConsuming блокируется до отмены ctx (возвращает nil)
// или закрытия соединения брокером (возвращает ошибку).
func (c *Consumer) StartConsuming(ctx context.Context) error {
	msgs, err := c.channel.Consume(c.config.QueueName, c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to register on queue '%s': %w", c.config.QueueName, err)
	}

	notifyClose := c.connection.NotifyClose(make(chan *amqp.Error, 1))
	// семафор вместе с QoS ограничивает число параллельных обработчиков
	slots := make(chan struct{}, c.config.PrefetchCount)

	c.Logger.Info("Waiting for messages", "queue", c.config.QueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Context cancelled, stopping consumer", "queue", c.config.QueueName)
			return nil

		case amqpErr := <-notifyClose:
			if amqpErr == nil {
				return fmt.Errorf("consumer: connection closed")
			}
			c.Logger.Error(amqpErr, "Connection closed by broker", "queue", c.config.QueueName)
			return amqpErr

		case d, ok := <-msgs:
			if !ok {
				c.Logger.Warn("Deliveries channel closed", "queue", c.config.QueueName)
				return fmt.Errorf("consumer: deliveries channel closed")
			}

			slots <- struct{}{}
			c.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer func() {
					<-slots
					c.wg.Done()
				}()
				c.process(delivery)
			}(d)
		}
	}
}

func (c *Consumer) process(d amqp.Delivery) {
	err := c.handler(d)
	deaths := deathCount(d.Headers, c.config.QueueName)

	switch c.config.dispositionFor(err, deaths) {
	case dispositionAck:
		c.ack(d)
	case dispositionRetry:
		c.Logger.Warn("Handler failed temporarily, retrying message",
			"delivery_tag", d.DeliveryTag,
			"death_count", deaths,
			"error", err.Error(),
		)
		c.nack(d)
	case dispositionReject:
		c.Logger.Error(err, "Handler failed, rejecting message", "delivery_tag", d.DeliveryTag)
		c.nack(d)
	case dispositionDeadLetter:
		c.Logger.Error(err, "Handler failed permanently, publishing to dead-letter exchange",
			"delivery_tag", d.DeliveryTag,
			"death_count", deaths,
		)
		c.deadLetter(d, err)
	}
}

// deadLetter переносит сообщение в DeadLetterExchange. Если публикация не удалась,
// сообщение отклоняется и проходит через очередь ожидания еще раз.
func (c *Consumer) deadLetter(d amqp.Delivery, cause error) {
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers["x-last-error"] = cause.Error()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := c.deadLetters.Publish(ctx, d.RoutingKey, amqp.Publishing{
		ContentType:  d.ContentType,
		MessageId:    d.MessageId,
		Body:         d.Body,
		Headers:      headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		c.Logger.Error(err, "Failed to publish to dead-letter exchange", "delivery_tag", d.DeliveryTag)
		c.nack(d)
		return
	}
	c.ack(d)
}

func (c *Consumer) ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		c.Logger.Error(err, "Failed to ack message", "delivery_tag", d.DeliveryTag)
	}
}

func (c *Consumer) nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		c.Logger.Error(err, "Failed to nack message", "delivery_tag", d.DeliveryTag)
	}
}

// Close ждет завершения обработчиков и закрывает канал
func (c *Consumer) Close() error {
	c.Logger.Debug("Waiting for message handlers to finish")
	c.wg.Wait()

	if c.deadLetters != nil {
		if err := c.deadLetters.Close(); err != nil {
			c.Logger.Error(err, "Error closing dead-letter publisher")
		}
		c.deadLetters = nil
	}

	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil {
		c.Logger.Error(err, "Error closing consumer channel")
		return err
	}
	c.Logger.Info("Consumer closed")
	return nil
}
