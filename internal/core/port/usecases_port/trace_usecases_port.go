package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type GetPropertyTracesUseCase interface {
	Execute(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error)
}

type GetAllTracesUseCase interface {
	Execute(ctx context.Context) ([]domain.PropertyTrace, error)
}

type CreateTraceUseCase interface {
	Execute(ctx context.Context, data domain.PropertyTrace) (*domain.PropertyTrace, error)
}

type DeleteTraceUseCase interface {
	Execute(ctx context.Context, traceID string) (bool, error)
}
