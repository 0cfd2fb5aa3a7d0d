package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type ListOwnersUseCase interface {
	Execute(ctx context.Context) ([]domain.Owner, error)
}

type GetOwnerUseCase interface {
	Execute(ctx context.Context, id string) (*domain.Owner, error)
}

type CreateOwnerUseCase interface {
	Execute(ctx context.Context, data domain.Owner) (*domain.Owner, error)
}
