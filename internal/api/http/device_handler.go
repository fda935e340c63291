package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/service"
)

type DeviceHandler struct {
	presenceSvc service.PresenceService
}

func NewDeviceHandler(presenceSvc service.PresenceService) *DeviceHandler {
	return &DeviceHandler{presenceSvc: presenceSvc}
}

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.presenceSvc.ListDevices(r.Context())
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	if devices == nil {
		devices = []domain.DevicePresence{}
	}
	RespondWithJSON(w, http.StatusOK, devices)
}

func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, err := h.presenceSvc.GetDevice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		RespondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, device)
}
