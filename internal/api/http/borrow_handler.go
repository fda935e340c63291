package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/service"
)

type BorrowHandler struct {
	borrowSvc service.BorrowService
}

func NewBorrowHandler(borrowSvc service.BorrowService) *BorrowHandler {
	return &BorrowHandler{borrowSvc: borrowSvc}
}

// Request bodies use the same snake_case keys the responses serialize
// with.
type submitRequest struct {
	AssetID   string `json:"asset_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type rejectRequest struct {
	AdminNote string `json:"admin_note"`
}

func (h *BorrowHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	actor, _ := PrincipalFrom(r.Context())
	created, err := h.borrowSvc.Submit(r.Context(), actor.Email, req.AssetID, req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, created)
}

func (h *BorrowHandler) Approve(w http.ResponseWriter, r *http.Request) {
	updated, err := h.borrowSvc.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

func (h *BorrowHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := ParseJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.borrowSvc.Reject(r.Context(), mux.Vars(r)["id"], req.AdminNote)
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

func (h *BorrowHandler) Return(w http.ResponseWriter, r *http.Request) {
	updated, err := h.borrowSvc.Return(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

// List returns all requests for admins and only the caller's own requests
// for employees.
func (h *BorrowHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFrom(r.Context())

	var (
		requests []domain.BorrowRequest
		err      error
	)
	if actor.Role == domain.RoleAdmin {
		requests, err = h.borrowSvc.List(r.Context())
	} else {
		requests, err = h.borrowSvc.ListByRequester(r.Context(), actor.Email)
	}
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.BorrowRequest{}
	}
	RespondWithJSON(w, http.StatusOK, requests)
}
