package rest

import (
	"encoding/json"
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type OwnerHandler struct {
	listUC   usecases_port.ListOwnersUseCase
	getUC    usecases_port.GetOwnerUseCase
	createUC usecases_port.CreateOwnerUseCase
}

func NewOwnerHandler(listUC usecases_port.ListOwnersUseCase, getUC usecases_port.GetOwnerUseCase,
	createUC usecases_port.CreateOwnerUseCase) *OwnerHandler {
	return &OwnerHandler{listUC: listUC, getUC: getUC, createUC: createUC}
}

// ListOwners обрабатывает GET /api/owners
func (h *OwnerHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListOwners"})

	owners, err := h.listUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve owners")
		return
	}

	resp := make([]OwnerResponse, len(owners))
	for i, o := range owners {
		resp[i] = toOwnerResponse(o)
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetOwner обрабатывает GET /api/owners/{id}
func (h *OwnerHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetOwner", "owner_id": id})

	owner, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve owner")
		return
	}
	if owner == nil {
		WriteJSONError(w, http.StatusNotFound, "Owner with ID "+id+" not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, toOwnerResponse(*owner))
}

// CreateOwner обрабатывает POST /api/owners
func (h *OwnerHandler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateOwner"})

	var req OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode owner request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner, err := h.createUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create owner")
		return
	}

	w.Header().Set("Location", "/api/owners/"+owner.IDOwner)
	RespondWithJSON(w, http.StatusCreated, toOwnerResponse(*owner))
}
