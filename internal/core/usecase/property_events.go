package usecase

import (
	"context"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"
)

// publishPropertyChanged отправляет событие, если публикация событий включена.
// Ошибка публикации только логируется: запись в хранилище уже выполнена.
func publishPropertyChanged(ctx context.Context, publisher port.PropertyEventPublisherPort, logger port.LoggerPort,
	eventType string, id string, property *domain.Property) {
	if publisher == nil {
		return
	}

	event := domain.PropertyChangedEvent{
		EventType:  eventType,
		IDProperty: id,
		OccurredAt: time.Now().UTC(),
		Property:   property,
	}
	if err := publisher.PublishPropertyChanged(ctx, event); err != nil {
		logger.Warn("Failed to publish property event", port.Fields{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
