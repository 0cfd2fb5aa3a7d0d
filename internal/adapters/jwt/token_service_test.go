package token_adapter

import (
	"context"
	"errors"
	"real-estate-system/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T, cfg Config) *TokenService {
	t.Helper()
	svc, err := NewTokenService(cfg)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "jdoe", Email: "jdoe@example.com", Role: domain.RoleUser}
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Config{SigningKey: "secret", Issuer: "PropertyApi", Audience: "PropertyApiUsers", TTL: time.Hour})
	user := testUser()

	token, expiresAt, err := svc.GenerateToken(ctx, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Errorf("unexpected expiry in %s", d)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "jdoe" || claims.Email != user.Email || claims.Role != domain.RoleUser {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	base := Config{SigningKey: "secret", Issuer: "PropertyApi", Audience: "PropertyApiUsers", TTL: time.Hour}
	svc := newTestService(t, base)

	other := base
	other.SigningKey = "another-secret"
	wrongKey, _, _ := newTestService(t, other).GenerateToken(ctx, testUser())

	other = base
	other.Audience = "SomeoneElse"
	wrongAudience, _, _ := newTestService(t, other).GenerateToken(ctx, testUser())

	other = base
	other.Issuer = "SomeoneElse"
	wrongIssuer, _, _ := newTestService(t, other).GenerateToken(ctx, testUser())

	for name, token := range map[string]string{
		"garbage":        "not-a-token",
		"wrong key":      wrongKey,
		"wrong audience": wrongAudience,
		"wrong issuer":   wrongIssuer,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Config{SigningKey: "secret", TTL: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateToken(ctx, testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewTokenServiceValidatesConfig(t *testing.T) {
	if _, err := NewTokenService(Config{TTL: time.Hour}); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewTokenService(Config{SigningKey: "k"}); err == nil {
		t.Error("expected error for zero ttl")
	}
}
