package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/google/uuid"
)

type GetProfileUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetProfileUseCase(userRepo port.UserRepositoryPort) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute возвращает domain.ErrUserNotFound, если пользователь не найден или деактивирован.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetProfile",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}

type UpdatePreferencesUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewUpdatePreferencesUseCase(userRepo port.UserRepositoryPort) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{userRepo: userRepo}
}

func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, userID uuid.UUID, update domain.PreferencesUpdate) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdatePreferences",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	prefs := update.Resolve()
	updated, err := uc.userRepo.UpdatePreferences(ctx, userID, prefs)
	if err != nil {
		ucLogger.Error("Repository failed to update preferences", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished", port.Fields{"updated": updated})
	return updated, nil
}

type UpdateProfileUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewUpdateProfileUseCase(userRepo port.UserRepositoryPort) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// Execute сохраняет новые данные профиля и возвращает обновленного пользователя.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateProfile",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	normalized, err := update.Normalize()
	if err != nil {
		ucLogger.Warn("Invalid profile data", port.Fields{"error": err.Error()})
		return nil, err
	}

	updated, err := uc.userRepo.UpdateProfile(ctx, userID, normalized)
	if err != nil {
		ucLogger.Error("Repository failed to update profile", err, nil)
		return nil, err
	}
	if !updated {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to reload user", err, nil)
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}
