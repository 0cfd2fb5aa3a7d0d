package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type CountPropertiesUseCase struct {
	properties port.PropertyRepositoryPort
}

func NewCountPropertiesUseCase(properties port.PropertyRepositoryPort) *CountPropertiesUseCase {
	return &CountPropertiesUseCase{properties: properties}
}

func (uc *CountPropertiesUseCase) Execute(ctx context.Context, filter domain.PropertyFilter) (int64, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CountProperties",
		"filter":   filter,
	})

	count, err := uc.properties.Count(ctx, filter)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return 0, err
	}

	ucLogger.Debug("Properties counted", port.Fields{"count": count})
	return count, nil
}
