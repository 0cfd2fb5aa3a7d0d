package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type ListPropertiesPaginatedUseCase struct {
	properties port.PropertyRepositoryPort
	enricher   *PropertyEnricher
}

func NewListPropertiesPaginatedUseCase(properties port.PropertyRepositoryPort, enricher *PropertyEnricher) *ListPropertiesPaginatedUseCase {
	return &ListPropertiesPaginatedUseCase{properties: properties, enricher: enricher}
}

// Execute считает все подходящие объекты и загружает одну страницу.
// Обогащается только страница, подсчет владельцев не трогает.
// Count и FindPage - два независимых запроса, при параллельной записи
// TotalItems и длина Data могут разойтись.
func (uc *ListPropertiesPaginatedUseCase) Execute(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) (*domain.PagedResult[domain.PropertyWithOwner], error) {
	page = domain.NewPageRequest(page.Page, page.PageSize)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ListPropertiesPaginated",
		"filter":    filter,
		"page":      page.Page,
		"page_size": page.PageSize,
	})

	ucLogger.Info("Use case started", nil)

	totalItems, err := uc.properties.Count(ctx, filter)
	if err != nil {
		ucLogger.Error("Failed to count properties", err, nil)
		return nil, err
	}

	// Если ничего не найдено, нет смысла делать второй запрос
	if totalItems == 0 {
		ucLogger.Info("No properties match the filter", nil)
		return domain.NewPagedResult([]domain.PropertyWithOwner{}, page, 0), nil
	}

	properties, err := uc.properties.FindPage(ctx, filter, page)
	if err != nil {
		ucLogger.Error("Failed to load page of properties", err, nil)
		return nil, err
	}

	enriched, err := uc.enricher.Enrich(ctx, properties)
	if err != nil {
		ucLogger.Error("Enrichment failed", err, nil)
		return nil, err
	}

	result := domain.NewPagedResult(enriched, page, totalItems)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalItems,
		"total_pages":   result.TotalPages,
		"items_on_page": len(result.Data),
	})
	return result, nil
}
