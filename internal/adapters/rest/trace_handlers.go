package rest

import (
	"encoding/json"
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type TraceHandler struct {
	byPropertyUC usecases_port.GetPropertyTracesUseCase
	allUC        usecases_port.GetAllTracesUseCase
	createUC     usecases_port.CreateTraceUseCase
	deleteUC     usecases_port.DeleteTraceUseCase
}

func NewTraceHandler(byPropertyUC usecases_port.GetPropertyTracesUseCase, allUC usecases_port.GetAllTracesUseCase,
	createUC usecases_port.CreateTraceUseCase, deleteUC usecases_port.DeleteTraceUseCase) *TraceHandler {
	return &TraceHandler{byPropertyUC: byPropertyUC, allUC: allUC, createUC: createUC, deleteUC: deleteUC}
}

// GetAllTraces обрабатывает GET /api/propertytrace
func (h *TraceHandler) GetAllTraces(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetAllTraces"})

	traces, err := h.allUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "Error getting property traces")
		return
	}
	RespondWithJSON(w, http.StatusOK, toTraceResponses(traces))
}

// GetTracesByProperty обрабатывает GET /api/propertytrace/property/{propertyId}
func (h *TraceHandler) GetTracesByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyId")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetTracesByProperty", "property_id": propertyID})

	traces, err := h.byPropertyUC.Execute(r.Context(), propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Error getting property traces")
		return
	}
	RespondWithJSON(w, http.StatusOK, toTraceResponses(traces))
}

// CreateTrace обрабатывает POST /api/propertytrace
func (h *TraceHandler) CreateTrace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateTrace"})

	var req TraceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode trace request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid trace data")
		return
	}

	trace, err := h.createUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Error creating property trace")
		return
	}

	w.Header().Set("Location", "/api/propertytrace/property/"+trace.IDProperty)
	RespondWithJSON(w, http.StatusCreated, toTraceResponse(*trace))
}

// DeleteTrace обрабатывает DELETE /api/propertytrace/{traceId}
func (h *TraceHandler) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceId")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteTrace", "trace_id": traceID})

	deleted, err := h.deleteUC.Execute(r.Context(), traceID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Error deleting property trace")
		return
	}
	if !deleted {
		WriteJSONError(w, http.StatusNotFound, "Property trace not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
