package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type DeletePropertyUseCase struct {
	properties port.PropertyRepositoryPort
	events     port.PropertyEventPublisherPort
}

func NewDeletePropertyUseCase(properties port.PropertyRepositoryPort, events port.PropertyEventPublisherPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{properties: properties, events: events}
}

// Execute возвращает true, если объект существовал и был удален.
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id string) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	deleted, err := uc.properties.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to delete property", err, nil)
		return false, err
	}
	if !deleted {
		ucLogger.Info("Property not found, nothing deleted", nil)
		return false, nil
	}

	publishPropertyChanged(ctx, uc.events, ucLogger, domain.PropertyDeleted, id, nil)

	ucLogger.Info("Use case finished successfully", nil)
	return true, nil
}
