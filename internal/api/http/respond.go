package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartasset-backend/internal/repository"
	"smartasset-backend/internal/security"
	"smartasset-backend/internal/service"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, map[string]string{"error": message})
}

// RespondWithServiceError maps service and repository errors onto HTTP
// statuses. Unknown errors surface the raw provider message; the operator
// sees exactly what the backend said, and may simply retry.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateAsset):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrDateConflict):
		RespondWithError(w, http.StatusConflict, "Unavailable: Asset is already booked for these dates.")
	case errors.Is(err, repository.ErrInvalidTransition):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// ParseJSON parses a JSON request body
func ParseJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
