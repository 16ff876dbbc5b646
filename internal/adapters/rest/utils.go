package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// successEnvelope is the uniform body of every 2xx response.
type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// errorEnvelope carries a message plus optional field-level details.
type errorEnvelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: message})
}

func writeValidationError(w http.ResponseWriter, ve *domain.ValidationError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:   "validation failed",
		Details: ve.Errors,
	})
}

// WriteDomainError maps the error taxonomy onto status codes. Anything
// outside the taxonomy is a 500 with a generic message; the cause is
// logged, not leaked.
func WriteDomainError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		writeValidationError(w, ve)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidID):
		WriteJSONError(w, http.StatusBadRequest, "invalid identifier")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, domain.ErrEmailTaken):
		WriteJSONError(w, http.StatusConflict, "email already registered")
	default:
		logger.Error("Unhandled error on REST boundary", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
