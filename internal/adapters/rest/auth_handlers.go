package rest

import (
	"encoding/json"
	"net/http"

	"rentwise/internal/contextkeys"
	"rentwise/internal/contracts"
	"rentwise/internal/core/usecase"
)

// AuthHandlers serves account registration. Token issuance lives with the
// identity provider, not here; a fresh account signs in there.
type AuthHandlers struct {
	registerUC *usecase.RegisterUserUseCase
}

func NewAuthHandlers(registerUC *usecase.RegisterUserUseCase) *AuthHandlers {
	return &AuthHandlers{registerUC: registerUC}
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	body, err := readBody(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := contracts.Validate(contracts.SchemaRegister, body); err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	var reg usecase.Registration
	if err := json.Unmarshal(body, &reg); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.registerUC.Execute(r.Context(), reg)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}
