package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config - параметры выпуска токенов.
type Config struct {
	SigningKey string
	Issuer     string
	Audience   string
	TTL        time.Duration
}

// TokenService - реализация TokenServicePort для JWT.
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
	now        func() time.Time
}

func NewTokenService(cfg Config) (*TokenService, error) {
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("JWT ttl must be positive, got %s", cfg.TTL)
	}
	return &TokenService{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		ttl:        cfg.TTL,
		now:        time.Now,
	}, nil
}

type jwtCustomClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken создает новый JWT токен и возвращает момент его истечения.
func (s *TokenService) GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "GenerateToken",
		"user_id":   user.ID.String(),
	})

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &jwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	if s.issuer != "" {
		claims.Issuer = s.issuer
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	serviceLogger.Debug("Token generated successfully.", port.Fields{"expires_at": expiresAt})
	return signedToken, expiresAt, nil
}

// ValidateToken проверяет подпись, срок, издателя и аудиторию.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			alg := token.Header["alg"]
			return nil, fmt.Errorf("unexpected signing method: %v", alg)
		}
		return s.signingKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Warn("Token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid token", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return &domain.Claims{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		}, nil
	}

	serviceLogger.Error("Token was parsed without error, but claims type assertion failed", nil, nil)
	return nil, domain.ErrTokenInvalid
}
