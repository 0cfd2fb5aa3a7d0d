package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const maxRequestBodyBytes = 1 << 20

type PropertyHandler struct {
	listUC      usecases_port.ListPropertiesUseCase
	paginatedUC usecases_port.ListPropertiesPaginatedUseCase
	countUC     usecases_port.CountPropertiesUseCase
	getUC       usecases_port.GetPropertyUseCase
	createUC    usecases_port.CreatePropertyUseCase
	updateUC    usecases_port.UpdatePropertyUseCase
	deleteUC    usecases_port.DeletePropertyUseCase
	pagination  PaginationConfig
}

func NewPropertyHandler(
	listUC usecases_port.ListPropertiesUseCase,
	paginatedUC usecases_port.ListPropertiesPaginatedUseCase,
	countUC usecases_port.CountPropertiesUseCase,
	getUC usecases_port.GetPropertyUseCase,
	createUC usecases_port.CreatePropertyUseCase,
	updateUC usecases_port.UpdatePropertyUseCase,
	deleteUC usecases_port.DeletePropertyUseCase,
	pagination PaginationConfig,
) *PropertyHandler {
	return &PropertyHandler{
		listUC:      listUC,
		paginatedUC: paginatedUC,
		countUC:     countUC,
		getUC:       getUC,
		createUC:    createUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		pagination:  pagination,
	}
}

// ListProperties обрабатывает GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid query parameters")
		return
	}

	properties, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyWithOwnerList(properties))
}

// ListPropertiesPaginated обрабатывает GET /api/properties/paginated
func (h *PropertyHandler) ListPropertiesPaginated(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListPropertiesPaginated"})
	query := r.URL.Query()

	filter, err := parseFilter(query)
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid query parameters")
		return
	}
	page, err := parsePageRequest(query, h.pagination)
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid query parameters")
		return
	}

	result, err := h.paginatedUC.Execute(r.Context(), filter, page)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, PagedResponse[PropertyWithOwnerResponse]{
		Data:            toPropertyWithOwnerList(result.Data),
		CurrentPage:     result.CurrentPage,
		PageSize:        result.PageSize,
		TotalItems:      result.TotalItems,
		TotalPages:      result.TotalPages,
		HasNextPage:     result.HasNextPage,
		HasPreviousPage: result.HasPreviousPage,
	})
}

// CountProperties обрабатывает GET /api/properties/count
func (h *PropertyHandler) CountProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CountProperties"})

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid query parameters")
		return
	}

	count, err := h.countUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to count properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, CountResponse{Count: count})
}

// GetProperty обрабатывает GET /api/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty", "property_id": id})

	property, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve property")
		return
	}
	if property == nil {
		WriteJSONError(w, http.StatusNotFound, "Property with ID "+id+" not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyWithOwnerResponse(*property))
}

// CreateProperty обрабатывает POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	req, ok := decodePropertyRequest(w, r, logger)
	if !ok {
		return
	}

	created, err := h.createUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create property")
		return
	}

	w.Header().Set("Location", "/api/properties/"+created.IDProperty)
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(*created))
}

// UpdateProperty обрабатывает PUT /api/properties/{id}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty", "property_id": id})

	req, ok := decodePropertyRequest(w, r, logger)
	if !ok {
		return
	}

	updated, err := h.updateUC.Execute(r.Context(), id, req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update property")
		return
	}
	if !updated {
		WriteJSONError(w, http.StatusNotFound, "Property with ID "+id+" not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProperty обрабатывает DELETE /api/properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty", "property_id": id})

	deleted, err := h.deleteUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete property")
		return
	}
	if !deleted {
		WriteJSONError(w, http.StatusNotFound, "Property with ID "+id+" not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodePropertyRequest проверяет тело по JSON-схеме и декодирует его.
// При ошибке ответ 400 уже отправлен.
func decodePropertyRequest(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (PropertyRequest, bool) {
	var req PropertyRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}

	if err := contracts.ValidateRequest(contracts.PropertyRequestSchema, body); err != nil {
		logger.Warn("Property request does not match schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("Failed to decode property request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	return req, true
}
