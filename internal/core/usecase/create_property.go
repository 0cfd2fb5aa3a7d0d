package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type CreatePropertyUseCase struct {
	properties port.PropertyRepositoryPort
	events     port.PropertyEventPublisherPort
}

// NewCreatePropertyUseCase - events может быть nil, тогда события не публикуются.
func NewCreatePropertyUseCase(properties port.PropertyRepositoryPort, events port.PropertyEventPublisherPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{properties: properties, events: events}
}

// Execute назначает новый IDProperty и сохраняет объект.
// IDProperty из входных данных игнорируется.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, data domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"name":     data.Name,
	})

	ucLogger.Info("Use case started", nil)

	if err := data.Validate(); err != nil {
		ucLogger.Warn("Invalid property data", port.Fields{"error": err.Error()})
		return nil, err
	}

	property := domain.NewProperty(data)
	ucLogger = ucLogger.WithFields(port.Fields{"property_id": property.IDProperty})

	if err := uc.properties.Create(ctx, property); err != nil {
		ucLogger.Error("Failed to save property", err, nil)
		return nil, err
	}

	publishPropertyChanged(ctx, uc.events, ucLogger, domain.PropertyCreated, property.IDProperty, property)

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}
