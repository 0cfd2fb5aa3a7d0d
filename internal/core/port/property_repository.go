package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// PropertyRepositoryPort - хранилище объектов недвижимости.
// Все списки возвращаются в одном и том же стабильном порядке.
type PropertyRepositoryPort interface {
	// FindAll возвращает все объекты, подходящие под фильтр.
	FindAll(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	// FindPage возвращает одну страницу объектов, подходящих под фильтр.
	FindPage(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, error)
	// Count считает объекты, подходящие под фильтр, не загружая их.
	Count(ctx context.Context, filter domain.PropertyFilter) (int64, error)
	// FindByID возвращает (nil, nil), если объект не найден.
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// FindByIDs возвращает найденные объекты в произвольном порядке.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	// Replace полностью заменяет объект. false - объекта с таким id нет.
	Replace(ctx context.Context, property *domain.Property) (bool, error)
	// Delete удаляет объект. false - объекта с таким id нет.
	Delete(ctx context.Context, id string) (bool, error)
}
