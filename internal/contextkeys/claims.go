package contextkeys

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// ContextWithClaims кладет claims аутентифицированного пользователя в контекст.
func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext возвращает claims или nil, если запрос не аутентифицирован.
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	if claims, ok := ctx.Value(claimsKey).(*domain.Claims); ok {
		return claims
	}
	return nil
}
