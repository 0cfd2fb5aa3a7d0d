package usecase

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

// PropertyEnricher присоединяет к объектам их владельцев.
// Владельцы загружаются одним запросом по уникальным IDOwner страницы.
type PropertyEnricher struct {
	owners port.OwnerRepositoryPort
}

func NewPropertyEnricher(owners port.OwnerRepositoryPort) *PropertyEnricher {
	return &PropertyEnricher{owners: owners}
}

// Enrich сохраняет порядок и количество входных объектов.
// Объект без найденного владельца остается в результате с Owner == nil.
func (e *PropertyEnricher) Enrich(ctx context.Context, properties []domain.Property) ([]domain.PropertyWithOwner, error) {
	result := make([]domain.PropertyWithOwner, len(properties))
	if len(properties) == 0 {
		return result, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PropertyEnricher",
		"properties": len(properties),
	})

	ownerIDs := domain.DistinctOwnerIDs(properties)
	ownerMap := make(map[string]domain.Owner, len(ownerIDs))

	if len(ownerIDs) > 0 {
		owners, err := e.owners.FindByIDs(ctx, ownerIDs)
		if err != nil {
			logger.Error("Failed to load owners", err, port.Fields{"owner_ids": len(ownerIDs)})
			return nil, fmt.Errorf("failed to load owners: %w", err)
		}
		for _, o := range owners {
			ownerMap[o.IDOwner] = o
		}
	}

	for i, p := range properties {
		result[i].Property = p
		if owner, ok := ownerMap[p.IDOwner]; ok {
			result[i].Owner = &owner
		}
	}

	logger.Debug("Properties enriched with owners", port.Fields{
		"owners_requested": len(ownerIDs),
		"owners_found":     len(ownerMap),
	})
	return result, nil
}
