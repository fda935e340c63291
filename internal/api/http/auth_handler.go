package httpapi

import (
	"net/http"
	"strings"

	"smartasset-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type sessionRequest struct {
	IDToken string `json:"id_token"`
}

// EstablishSession exchanges a Firebase ID token for app session tokens.
func (h *AuthHandler) EstablishSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tokens, err := h.authSvc.EstablishSession(r.Context(), req.IDToken)
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token. The wire format is "<sessionID>.<jwt>";
// the session ID locates the stored hash.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sessionID, token, ok := strings.Cut(req.RefreshToken, ".")
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "malformed refresh token")
		return
	}
	tokens, err := h.authSvc.Refresh(r.Context(), sessionID, token)
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sessionID, _, ok := strings.Cut(req.RefreshToken, ".")
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "malformed refresh token")
		return
	}
	if err := h.authSvc.Logout(r.Context(), sessionID); err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusNoContent, nil)
}

type provisionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProvisionEmployee creates a Firebase login for a short username (admin
// only; enforced by route middleware).
func (h *AuthHandler) ProvisionEmployee(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	principal, err := h.authSvc.ProvisionEmployee(r.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, principal)
}
