package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type GetPropertyUseCase struct {
	properties port.PropertyRepositoryPort
	enricher   *PropertyEnricher
}

func NewGetPropertyUseCase(properties port.PropertyRepositoryPort, enricher *PropertyEnricher) *GetPropertyUseCase {
	return &GetPropertyUseCase{properties: properties, enricher: enricher}
}

// Execute возвращает (nil, nil), если объект не найден.
func (uc *GetPropertyUseCase) Execute(ctx context.Context, id string) (*domain.PropertyWithOwner, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetProperty",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	if property == nil {
		ucLogger.Info("Property not found", nil)
		return nil, nil
	}

	enriched, err := uc.enricher.Enrich(ctx, []domain.Property{*property})
	if err != nil {
		ucLogger.Error("Enrichment failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"owner_found": enriched[0].Owner != nil})
	return &enriched[0], nil
}
