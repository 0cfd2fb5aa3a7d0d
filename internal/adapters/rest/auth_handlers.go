package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AuthHandler struct {
	registerUC       usecases_port.RegisterUserUseCase
	loginUC          usecases_port.LoginUserUseCase
	profileUC        usecases_port.GetProfileUseCase
	preferencesUC    usecases_port.UpdatePreferencesUseCase
	updateProfileUC  usecases_port.UpdateProfileUseCase
	addFavoriteUC    usecases_port.AddToFavoritesUseCase
	removeFavoriteUC usecases_port.RemoveFromFavoritesUseCase
	favoritesUC      usecases_port.GetUserFavoritesUseCase
}

// AuthUseCases - зависимости AuthHandler.
type AuthUseCases struct {
	Register       usecases_port.RegisterUserUseCase
	Login          usecases_port.LoginUserUseCase
	Profile        usecases_port.GetProfileUseCase
	Preferences    usecases_port.UpdatePreferencesUseCase
	UpdateProfile  usecases_port.UpdateProfileUseCase
	AddFavorite    usecases_port.AddToFavoritesUseCase
	RemoveFavorite usecases_port.RemoveFromFavoritesUseCase
	Favorites      usecases_port.GetUserFavoritesUseCase
}

func NewAuthHandler(uc AuthUseCases) *AuthHandler {
	return &AuthHandler{
		registerUC:       uc.Register,
		loginUC:          uc.Login,
		profileUC:        uc.Profile,
		preferencesUC:    uc.Preferences,
		updateProfileUC:  uc.UpdateProfile,
		addFavoriteUC:    uc.AddFavorite,
		removeFavoriteUC: uc.RemoveFavorite,
		favoritesUC:      uc.Favorites,
	}
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	// пароль в лог не попадает
	handlerLogger := logger.WithFields(port.Fields{"username": req.Username})
	handlerLogger.Info("Processing login request", nil)

	result, err := h.loginUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "An error occurred during login")
		return
	}

	RespondWithJSON(w, http.StatusOK, toAuthResponse(result))
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode register request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"username": req.Username, "email": req.Email})
	handlerLogger.Info("Processing register request", nil)

	result, err := h.registerUC.Execute(r.Context(), domain.RegisterData{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "An error occurred during registration")
		return
	}

	w.Header().Set("Location", "/api/auth/profile")
	RespondWithJSON(w, http.StatusCreated, toAuthResponse(result))
}

// GetProfile обрабатывает GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProfile"})
	userID, ok := userIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	user, err := h.profileUC.Execute(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, logger, err, "An error occurred")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdatePreferences обрабатывает PUT /api/auth/preferences
func (h *AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdatePreferences"})
	userID, ok := userIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode preferences request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.preferencesUC.Execute(r.Context(), userID, domain.PreferencesUpdate{
		Theme:         req.Theme,
		Notifications: req.Notifications,
		Language:      req.Language,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "An error occurred")
		return
	}
	if !updated {
		WriteJSONError(w, http.StatusNotFound, "User not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Preferences updated successfully"})
}

// UpdateProfile обрабатывает PUT /api/auth/profile/update
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProfile"})
	userID, ok := userIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode profile request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.updateProfileUC.Execute(r.Context(), userID, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "An error occurred while updating profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// GetFavorites обрабатывает GET /api/auth/favorites
func (h *AuthHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavorites"})
	userID, ok := userIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	favorites, err := h.favoritesUC.Execute(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyWithOwnerList(favorites))
}

// AddFavorite обрабатывает POST /api/auth/favorites/{propertyId}
func (h *AuthHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeFavorite(w, r, "AddFavorite", h.addFavoriteUC.Execute, "Property added to favorites")
}

// RemoveFavorite обрабатывает DELETE /api/auth/favorites/{propertyId}
func (h *AuthHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeFavorite(w, r, "RemoveFavorite", h.removeFavoriteUC.Execute, "Property removed from favorites")
}

func (h *AuthHandler) changeFavorite(
	w http.ResponseWriter, r *http.Request, handler string,
	execute func(ctx context.Context, userID uuid.UUID, propertyID string) (bool, error),
	successMessage string,
) {
	propertyID := chi.URLParam(r, "propertyId")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler, "property_id": propertyID})
	userID, ok := userIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	changed, err := execute(r.Context(), userID, propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update favorites")
		return
	}
	if !changed {
		WriteJSONError(w, http.StatusNotFound, "User not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: successMessage})
}

// userIDFromRequest достает id пользователя из claims, которые положил AuthMiddleware.
func userIDFromRequest(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	claims := contextkeys.ClaimsFromContext(r.Context())
	if claims == nil || claims.UserID == uuid.Nil {
		logger.Error("Invalid or missing user claims in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func toAuthResponse(result *usecases_port.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		User:      toUserResponse(result.User),
		ExpiresAt: result.ExpiresAt,
	}
}
