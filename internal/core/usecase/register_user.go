package usecase

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
)

type RegisterUserUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
}

func NewRegisterUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, data domain.RegisterData) (*usecases_port.AuthResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"username": data.Username,
	})

	ucLogger.Info("Use case started: attempting to register user", nil)

	// Создаем нового пользователя (валидация и хэширование пароля внутри NewUser)
	user, err := domain.NewUser(data)
	if err != nil {
		ucLogger.Warn("Registration failed: invalid data", port.Fields{"error": err.Error()})
		return nil, err
	}

	existing, err := uc.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing username", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: username already in use", nil)
		return nil, domain.ErrUsernameInUse
	}

	existing, err = uc.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	// Уникальность дополнительно проверяется хранилищем на случай гонки
	if err := uc.userRepo.Create(ctx, user); err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}

	token, expiresAt, err := uc.tokenSvc.GenerateToken(ctx, user)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful registration", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user registered successfully", nil)
	return &usecases_port.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
