package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// PropertyTraceRepositoryPort - хранилище истории продаж.
// Списки отсортированы по DateSale по убыванию.
type PropertyTraceRepositoryPort interface {
	FindByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error)
	FindAll(ctx context.Context) ([]domain.PropertyTrace, error)
	Create(ctx context.Context, trace *domain.PropertyTrace) error
	Delete(ctx context.Context, traceID string) (bool, error)
}
