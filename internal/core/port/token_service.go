package port

import (
	"context"
	"real-estate-system/internal/core/domain"
	"time"
)

// TokenServicePort определяет, что мы хотим делать с токенами.
type TokenServicePort interface {
	// GenerateToken возвращает подписанный токен и момент его истечения.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateToken возвращает claims, если токен валиден, иначе domain.ErrTokenInvalid.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
