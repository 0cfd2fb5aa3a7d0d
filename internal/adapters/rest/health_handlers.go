package rest

import (
	"net/http"
	"time"
)

const (
	serviceName    = "Property API"
	serviceVersion = "1.0.0"
)

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Health обрабатывает GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Service:   serviceName,
		Version:   serviceVersion,
	})
}

// Ping обрабатывает GET /api/health/ping
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, PingResponse{Message: "pong", Timestamp: h.now().UTC()})
}
