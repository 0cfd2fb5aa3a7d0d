package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// AuthResult - пользователь и выданный ему токен.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type RegisterUserUseCase interface {
	Execute(ctx context.Context, data domain.RegisterData) (*AuthResult, error)
}

type LoginUserUseCase interface {
	Execute(ctx context.Context, username, password string) (*AuthResult, error)
}

type ValidateTokenUseCase interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error)
}

type GetProfileUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type UpdatePreferencesUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID, update domain.PreferencesUpdate) (bool, error)
}

type UpdateProfileUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
}
