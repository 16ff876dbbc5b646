package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/contracts"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/usecase"
)

// PropertyHandlers serves the listing endpoints: public search and detail,
// owner-gated mutations.
type PropertyHandlers struct {
	searchUC *usecase.SearchPropertiesUseCase
	getUC    *usecase.GetPropertyUseCase
	createUC *usecase.CreatePropertyUseCase
	updateUC *usecase.UpdatePropertyUseCase
	deleteUC *usecase.DeletePropertyUseCase
	listUC   *usecase.ListLandlordPropertiesUseCase
	images   *ImageStore
}

func NewPropertyHandlers(
	searchUC *usecase.SearchPropertiesUseCase,
	getUC *usecase.GetPropertyUseCase,
	createUC *usecase.CreatePropertyUseCase,
	updateUC *usecase.UpdatePropertyUseCase,
	deleteUC *usecase.DeletePropertyUseCase,
	listUC *usecase.ListLandlordPropertiesUseCase,
	images *ImageStore,
) *PropertyHandlers {
	return &PropertyHandlers{
		searchUC: searchUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		images:   images,
	}
}

// Search handles GET /api/properties.
func (h *PropertyHandlers) Search(w http.ResponseWriter, r *http.Request) {
	filters, ve := parseSearchFilters(r)
	if ve != nil {
		writeValidationError(w, ve)
		return
	}

	result, err := h.searchUC.Execute(r.Context(), filters)
	if err != nil {
		WriteDomainError(w, contextkeys.LoggerFromContext(r.Context()), err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/properties/{id}. Every successful fetch counts
// one view.
func (h *PropertyHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteDomainError(w, contextkeys.LoggerFromContext(r.Context()), err)
		return
	}

	property, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		WriteDomainError(w, contextkeys.LoggerFromContext(r.Context()), err)
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// Create handles POST /api/properties. The body is either plain JSON or a
// multipart form with a "payload" JSON part and up to ten "images" files.
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	payload, files, err := h.readPropertyBody(r)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	if err := contracts.Validate(contracts.SchemaPropertyCreate, payload); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	var req createPropertyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Store the uploads only once the payload has passed validation, so a
	// rejected request leaves no orphan files behind.
	imagePaths, err := h.images.saveAll(files)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	property := req.toDomain(identity.UserID, imagePaths)
	created, err := h.createUC.Execute(r.Context(), identity.UserID, identity.Role, property)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/properties/{id}.
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	payload, files, err := h.readPropertyBody(r)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	if err := contracts.Validate(contracts.SchemaPropertyUpdate, payload); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	var update usecase.PropertyUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if update.Location != nil {
		update.Location.City = normalizeCity(update.Location.City)
	}

	imagePaths, err := h.images.saveAll(files)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}
	update.NewImages = imagePaths

	updated, err := h.updateUC.Execute(r.Context(), identity.UserID, identity.Role, id, update)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/properties/{id}.
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), identity.UserID, identity.Role, id); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "listing deleted"})
}

// MyProperties handles GET /api/properties/my: the caller's own listings,
// any status.
func (h *PropertyHandlers) MyProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page, limit := parsePageLimit(r)
	result, err := h.listUC.Execute(r.Context(), identity.UserID, page, limit)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// readPropertyBody extracts the JSON payload and the uploaded image parts.
// Nothing is written to disk here; callers store the images only after the
// payload validates. Plain JSON bodies have no images.
func (h *PropertyHandlers) readPropertyBody(r *http.Request) ([]byte, []*multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		payload, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxMultipartMem))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return payload, nil, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
		ve := &domain.ValidationError{}
		ve.Add("body", "malformed multipart form")
		return nil, nil, ve
	}

	payload := []byte(r.FormValue(payloadFormField))
	if len(payload) == 0 {
		ve := &domain.ValidationError{}
		ve.Add(payloadFormField, "payload part is required")
		return nil, nil, ve
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File[imagesFormField]
	}

	return payload, files, nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("'%s': %w", raw, domain.ErrInvalidID)
	}
	return id, nil
}
