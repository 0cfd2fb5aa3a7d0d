package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type UpdatePropertyUseCase struct {
	properties port.PropertyRepositoryPort
	events     port.PropertyEventPublisherPort
}

func NewUpdatePropertyUseCase(properties port.PropertyRepositoryPort, events port.PropertyEventPublisherPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{properties: properties, events: events}
}

// Execute полностью заменяет объект с данным id.
// Возвращает false только если объекта нет. Замена идентичными данными - true.
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id string, data domain.Property) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	if err := data.Validate(); err != nil {
		ucLogger.Warn("Invalid property data", port.Fields{"error": err.Error()})
		return false, err
	}

	// id из пути важнее id в теле запроса
	property := data
	property.IDProperty = id

	found, err := uc.properties.Replace(ctx, &property)
	if err != nil {
		ucLogger.Error("Failed to replace property", err, nil)
		return false, err
	}
	if !found {
		ucLogger.Info("Property not found, nothing replaced", nil)
		return false, nil
	}

	publishPropertyChanged(ctx, uc.events, ucLogger, domain.PropertyUpdated, id, &property)

	ucLogger.Info("Use case finished successfully", nil)
	return true, nil
}
