package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// OwnerRepositoryPort - хранилище владельцев.
type OwnerRepositoryPort interface {
	// FindByIDs возвращает найденных владельцев в произвольном порядке,
	// отсутствующие id просто пропускаются.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error)
	// FindByID возвращает (nil, nil), если владелец не найден.
	FindByID(ctx context.Context, id string) (*domain.Owner, error)
	FindAll(ctx context.Context) ([]domain.Owner, error)
	Create(ctx context.Context, owner *domain.Owner) error
}
