package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// PropertyEventPublisherPort - исходящий порт для событий изменения объектов.
type PropertyEventPublisherPort interface {
	PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error
}
