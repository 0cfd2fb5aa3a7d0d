package port

import (
	"context"
	"real-estate-system/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// UserRepositoryPort определяет, что мы хотим делать с хранилищем пользователей.
// Методы Find* возвращают только активных пользователей и (nil, nil), если пользователь не найден.
// Методы Update*/AddFavorite/RemoveFavorite возвращают false, если пользователя нет.
type UserRepositoryPort interface {
	// Create возвращает domain.ErrUsernameInUse или domain.ErrEmailInUse при конфликте.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.UserPreferences) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (bool, error)
	// AddFavorite идемпотентен: повторное добавление не дублирует запись.
	AddFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error)
	RemoveFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error)
}
