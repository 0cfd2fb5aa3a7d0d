package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// writeUseCaseError переводит ошибку use case в HTTP-ответ.
// fallbackMessage уходит клиенту для неизвестных ошибок, детали остаются в логе.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		logger.Warn("Request rejected by validation", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		logger.Warn("Invalid credentials", nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, domain.ErrUsernameInUse), errors.Is(err, domain.ErrEmailInUse):
		logger.Warn("Conflict with existing user", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		logger.Warn("User not found", nil)
		WriteJSONError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrStorageUnavailable):
		logger.Error("Storage is unavailable", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "Storage is temporarily unavailable")
	default:
		logger.Error(fallbackMessage, err, nil)
		WriteJSONError(w, http.StatusInternalServerError, fallbackMessage)
	}
}
