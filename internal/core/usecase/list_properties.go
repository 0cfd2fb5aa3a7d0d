package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type ListPropertiesUseCase struct {
	properties port.PropertyRepositoryPort
	enricher   *PropertyEnricher
}

func NewListPropertiesUseCase(properties port.PropertyRepositoryPort, enricher *PropertyEnricher) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{properties: properties, enricher: enricher}
}

// Execute возвращает все подходящие объекты без пагинации.
func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filter domain.PropertyFilter) ([]domain.PropertyWithOwner, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListProperties",
		"filter":   filter,
	})

	ucLogger.Info("Use case started", nil)

	properties, err := uc.properties.FindAll(ctx, filter)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	result, err := uc.enricher.Enrich(ctx, properties)
	if err != nil {
		ucLogger.Error("Enrichment failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(result)})
	return result, nil
}
