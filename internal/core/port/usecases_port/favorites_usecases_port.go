package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"

	"github.com/google/uuid"
)

type AddToFavoritesUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID, propertyID string) (bool, error)
}

type RemoveFromFavoritesUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID, propertyID string) (bool, error)
}

type GetUserFavoritesUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]domain.PropertyWithOwner, error)
}
