package usecase

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
	"time"
)

type LoginUserUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, username, password string) (*usecases_port.AuthResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		ucLogger.Error("Repository failed to find user by username", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	// Неизвестный и неактивный пользователь неотличимы от неверного пароля
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		ucLogger.Error("Failed to update last login", err, nil)
		return nil, err
	}
	user.LastLogin = &now

	token, expiresAt, err := uc.tokenSvc.GenerateToken(ctx, user)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return &usecases_port.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
