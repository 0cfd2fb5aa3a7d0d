package rest

import (
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
	"strings"
)

// AuthMiddleware проверяет Bearer токен и кладет claims в контекст запроса.
func AuthMiddleware(validateUC usecases_port.ValidateTokenUseCase) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context())

			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				logger.Warn("Authorization header is missing or malformed", nil)
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing or malformed")
				return
			}

			claims, err := validateUC.Execute(r.Context(), strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Token validation failed", port.Fields{"error": err.Error()})
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := contextkeys.ContextWithClaims(r.Context(), claims)
			ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": claims.UserID.String()}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
