package usecase

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/google/uuid"
)

type AddToFavoritesUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewAddToFavoritesUseCase(userRepo port.UserRepositoryPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{userRepo: userRepo}
}

// Execute возвращает false, если пользователя нет.
// Повторное добавление того же объекта не является ошибкой.
func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, propertyID string) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"user_id":     userID.String(),
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	ok, err := uc.userRepo.AddFavorite(ctx, userID, propertyID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished", port.Fields{"success": ok})
	return ok, nil
}

type RemoveFromFavoritesUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewRemoveFromFavoritesUseCase(userRepo port.UserRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{userRepo: userRepo}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, propertyID string) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"user_id":     userID.String(),
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	ok, err := uc.userRepo.RemoveFavorite(ctx, userID, propertyID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished", port.Fields{"success": ok})
	return ok, nil
}

type GetUserFavoritesUseCase struct {
	userRepo   port.UserRepositoryPort
	properties port.PropertyRepositoryPort
	enricher   *PropertyEnricher
}

func NewGetUserFavoritesUseCase(
	userRepo port.UserRepositoryPort,
	properties port.PropertyRepositoryPort,
	enricher *PropertyEnricher,
) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{
		userRepo:   userRepo,
		properties: properties,
		enricher:   enricher,
	}
}

// Execute возвращает избранные объекты в порядке добавления.
// Удаленные объекты молча пропускаются.
func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]domain.PropertyWithOwner, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to load user", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}

	if len(user.FavoriteProperties) == 0 {
		ucLogger.Info("User has no favorites", nil)
		return []domain.PropertyWithOwner{}, nil
	}

	// Шаг 1: одним запросом забираем все объекты.
	found, err := uc.properties.FindByIDs(ctx, user.FavoriteProperties)
	if err != nil {
		ucLogger.Error("Failed to load favorite properties", err, nil)
		return nil, fmt.Errorf("failed to load favorite properties: %w", err)
	}

	// Шаг 2: восстанавливаем порядок избранного, хранилище его не гарантирует.
	byID := make(map[string]domain.Property, len(found))
	for _, p := range found {
		byID[p.IDProperty] = p
	}
	ordered := make([]domain.Property, 0, len(user.FavoriteProperties))
	for _, id := range user.FavoriteProperties {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	// Шаг 3: подставляем владельцев.
	result, err := uc.enricher.Enrich(ctx, ordered)
	if err != nil {
		ucLogger.Error("Failed to enrich favorites", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"favorites_total": len(user.FavoriteProperties),
		"favorites_found": len(result),
	})
	return result, nil
}
