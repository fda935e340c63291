package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/service"
)

type AssetHandler struct {
	assetSvc   service.AssetService
	historySvc service.HistoryService
}

func NewAssetHandler(assetSvc service.AssetService, historySvc service.HistoryService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc, historySvc: historySvc}
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetSvc.List(r.Context())
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	if assets == nil {
		assets = []domain.AssetWithTracking{}
	}
	RespondWithJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var asset domain.Asset
	if err := ParseJSON(r, &asset); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	actor, _ := PrincipalFrom(r.Context())
	if err := h.assetSvc.Create(r.Context(), &asset, actor); err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, asset)
}

// Update merge-writes mutable fields. The path ID wins over any assetId in
// the body: the ID is immutable once created.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var asset domain.Asset
	if err := ParseJSON(r, &asset); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset.AssetID = mux.Vars(r)["id"]
	actor, _ := PrincipalFrom(r.Context())
	if err := h.assetSvc.Update(r.Context(), &asset, actor); err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFrom(r.Context())
	if err := h.assetSvc.Delete(r.Context(), mux.Vars(r)["id"], actor); err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusNoContent, nil)
}

func (h *AssetHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	events, err := h.historySvc.Timeline(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	if events == nil {
		events = []domain.TimelineEvent{}
	}
	RespondWithJSON(w, http.StatusOK, events)
}
