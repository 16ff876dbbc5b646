package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"rentwise/internal/contextkeys"
	"rentwise/internal/contracts"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/usecase"
)

// UserHandlers serves the authenticated profile and saved-listing
// endpoints.
type UserHandlers struct {
	profileUC        *usecase.GetProfileUseCase
	updateProfileUC  *usecase.UpdateProfileUseCase
	changePasswordUC *usecase.ChangePasswordUseCase
	toggleSavedUC    *usecase.ToggleSavedPropertyUseCase
	savedListUC      *usecase.GetSavedPropertiesUseCase
}

func NewUserHandlers(
	profileUC *usecase.GetProfileUseCase,
	updateProfileUC *usecase.UpdateProfileUseCase,
	changePasswordUC *usecase.ChangePasswordUseCase,
	toggleSavedUC *usecase.ToggleSavedPropertyUseCase,
	savedListUC *usecase.GetSavedPropertiesUseCase,
) *UserHandlers {
	return &UserHandlers{
		profileUC:        profileUC,
		updateProfileUC:  updateProfileUC,
		changePasswordUC: changePasswordUC,
		toggleSavedUC:    toggleSavedUC,
		savedListUC:      savedListUC,
	}
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.profileUC.Execute(r.Context(), identity.UserID)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body, err := readBody(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := contracts.Validate(contracts.SchemaProfileUpdate, body); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	var update domain.ProfileUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.updateProfileUC.Execute(r.Context(), identity.UserID, update)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PUT /api/users/change-password.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body, err := readBody(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := contracts.Validate(contracts.SchemaChangePassword, body); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	var req changePasswordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.changePasswordUC.Execute(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// ToggleSaved handles POST /api/users/save-property/{id}.
func (h *UserHandlers) ToggleSaved(w http.ResponseWriter, r *http.Request) {
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

	saved, err := h.toggleSavedUC.Execute(r.Context(), identity.UserID, id)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, savedToggleResponse{PropertyID: id, IsSaved: saved})
}

// ListSaved handles GET /api/users/saved-properties.
func (h *UserHandlers) ListSaved(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identity, ok := contextkeys.IdentityFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page, limit := parsePageLimit(r)
	result, err := h.savedListUC.Execute(r.Context(), identity.UserID, page, limit)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, 1<<20))
}
