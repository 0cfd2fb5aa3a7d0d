package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type ListPropertiesUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter) ([]domain.PropertyWithOwner, error)
}

type ListPropertiesPaginatedUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) (*domain.PagedResult[domain.PropertyWithOwner], error)
}

type CountPropertiesUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter) (int64, error)
}

// GetPropertyUseCase возвращает (nil, nil), если объект не найден.
type GetPropertyUseCase interface {
	Execute(ctx context.Context, id string) (*domain.PropertyWithOwner, error)
}

type CreatePropertyUseCase interface {
	Execute(ctx context.Context, data domain.Property) (*domain.Property, error)
}

type UpdatePropertyUseCase interface {
	Execute(ctx context.Context, id string, data domain.Property) (bool, error)
}

type DeletePropertyUseCase interface {
	Execute(ctx context.Context, id string) (bool, error)
}
