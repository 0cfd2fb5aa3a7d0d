package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"real-estate-system/internal/adapters/memory"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/usecase"
	"real-estate-system/pkg/rabbitmq/rabbitmq_consumer"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingPublisher struct {
	routingKeys []string
	messages    []amqp.Publishing
	err         error
}

func (r *recordingPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if r.err != nil {
		return r.err
	}
	r.routingKeys = append(r.routingKeys, routingKey)
	r.messages = append(r.messages, msg)
	return nil
}

func TestPublishPropertyChangedMatchesSchema(t *testing.T) {
	rec := &recordingPublisher{}
	pub, err := NewPropertyEventsPublisher(rec)
	if err != nil {
		t.Fatal(err)
	}

	event := domain.PropertyChangedEvent{
		EventType:  domain.PropertyCreated,
		IDProperty: "p1",
		OccurredAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		Property:   &domain.Property{IDProperty: "p1", Name: "Loft", Address: "1 Main St", Price: 10},
	}
	if err := pub.PublishPropertyChanged(context.Background(), event); err != nil {
		t.Fatalf("PublishPropertyChanged: %v", err)
	}

	if len(rec.messages) != 1 || rec.routingKeys[0] != domain.PropertyCreated {
		t.Fatalf("unexpected publish calls: %v", rec.routingKeys)
	}
	msg := rec.messages[0]
	if msg.DeliveryMode != amqp.Persistent || msg.ContentType != "application/json" {
		t.Errorf("unexpected message properties %+v", msg)
	}
	if err := contracts.ValidateEvent(contracts.PropertyChangedEventType, contracts.EventVersionV1, msg.Body); err != nil {
		t.Errorf("published body does not match schema: %v", err)
	}
}

func TestPublishDeletedEventHasNoProperty(t *testing.T) {
	rec := &recordingPublisher{}
	pub, _ := NewPropertyEventsPublisher(rec)

	err := pub.PublishPropertyChanged(context.Background(), domain.PropertyChangedEvent{
		EventType: domain.PropertyDeleted, IDProperty: "p1", OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.messages[0].Body, &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["property"]; ok {
		t.Errorf("deleted event should not carry property, got %v", body)
	}
}

func TestPublishErrorIsReturned(t *testing.T) {
	pub, _ := NewPropertyEventsPublisher(&recordingPublisher{err: errors.New("channel closed")})
	err := pub.PublishPropertyChanged(context.Background(), domain.PropertyChangedEvent{EventType: domain.PropertyDeleted, IDProperty: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
}

// unavailableStore падает на записи так же, как хранилище при потере соединения
type unavailableStore struct {
	*memory.PropertyRepository
}

func (unavailableStore) Create(ctx context.Context, property *domain.Property) error {
	return fmt.Errorf("failed to insert property: %w: %w", domain.ErrStorageUnavailable, errors.New("connection refused"))
}

const validImportBody = `{"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70", "occurredAt": "2026-10-01T12:00:00Z",
	"source": "partner-feed",
	"property": {"name": "Loft", "address": "1 Main St", "price": 250000, "idOwner": "o1"}}`

func newImportAdapter(store port.PropertyRepositoryPort) *PropertyImportConsumerAdapter {
	return &PropertyImportConsumerAdapter{
		useCase: usecase.NewCreatePropertyUseCase(store, nil),
		logger:  testLogger{},
	}
}

func TestImportCreatesProperty(t *testing.T) {
	store := memory.NewPropertyRepository()
	adapter := newImportAdapter(store)

	body := []byte(validImportBody)
	headers := amqp.Table{
		contracts.HeaderEventType:    contracts.PropertyImportedEventType,
		contracts.HeaderEventVersion: contracts.EventVersionV1,
	}

	if err := adapter.process(context.Background(), headers, body); err != nil {
		t.Fatalf("process: %v", err)
	}

	all, _ := store.FindAll(context.Background(), domain.PropertyFilter{})
	if len(all) != 1 || all[0].Name != "Loft" || all[0].IDOwner != "o1" || all[0].IDProperty == "" {
		t.Fatalf("unexpected store content %+v", all)
	}
}

func TestImportRejectsInvalidMessages(t *testing.T) {
	store := memory.NewPropertyRepository()
	adapter := newImportAdapter(store)

	cases := map[string]struct {
		headers amqp.Table
		body    string
	}{
		"schema violation": {amqp.Table{}, `{"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70", "occurredAt": "2026-10-01T12:00:00Z", "property": {"name": "x"}}`},
		"wrong event type": {amqp.Table{contracts.HeaderEventType: "SomethingElse"}, `{}`},
		"blank name":       {amqp.Table{}, `{"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70", "occurredAt": "2026-10-01T12:00:00Z", "property": {"name": " ", "address": "a", "price": 1}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := adapter.process(context.Background(), tc.headers, []byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if rabbitmq_consumer.IsRetryable(err) {
				t.Fatalf("invalid message must go straight to the dead-letter queue, got retryable %v", err)
			}
		})
	}

	if n, _ := store.Count(context.Background(), domain.PropertyFilter{}); n != 0 {
		t.Fatalf("rejected messages must not create properties, store has %d", n)
	}
}

func TestImportRetriesWhenStorageUnavailable(t *testing.T) {
	adapter := newImportAdapter(unavailableStore{memory.NewPropertyRepository()})

	err := adapter.process(context.Background(), amqp.Table{}, []byte(validImportBody))
	if err == nil {
		t.Fatal("expected error")
	}
	if !rabbitmq_consumer.IsRetryable(err) {
		t.Fatalf("storage outage must be retried, got %v", err)
	}
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("cause must be preserved, got %v", err)
	}
}

func TestToFieldsSkipsBrokenPairs(t *testing.T) {
	fields := toFields("a", 1, 2, "skipped", "dangling")
	if len(fields) != 1 || fields["a"] != 1 {
		t.Fatalf("unexpected fields %v", fields)
	}
}
