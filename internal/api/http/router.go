package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartasset-backend/internal/api/ws"
	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/metrics"
	"smartasset-backend/internal/security"
	"smartasset-backend/internal/service"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Auth     service.AuthService
	Assets   service.AssetService
	History  service.HistoryService
	Borrow   service.BorrowService
	Presence service.PresenceService
	Tokens   security.TokenManager
	Hub      *ws.Hub
	Metrics  *metrics.Metrics
}

// NewRouter wires all routes. Everything under /api/v1 except the auth
// endpoints requires a valid access token; asset mutations and request
// decisions are admin-only, request submission is employee-only.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth)
	assetHandler := NewAssetHandler(deps.Assets, deps.History)
	borrowHandler := NewBorrowHandler(deps.Borrow)
	deviceHandler := NewDeviceHandler(deps.Presence)

	requireAuth := AuthMiddleware(deps.Tokens)
	adminOnly := RequireRole(domain.RoleAdmin)
	employeeOnly := RequireRole(domain.RoleEmployee)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware, CORSMiddleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Session endpoints carry their own credentials.
	api.HandleFunc("/auth/session", authHandler.EstablishSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(requireAuth)

	admin := protected.NewRoute().Subrouter()
	admin.Use(adminOnly)
	admin.HandleFunc("/auth/employees", authHandler.ProvisionEmployee).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/assets", assetHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/assets/{id}", assetHandler.Update).Methods(http.MethodPut, http.MethodOptions)
	admin.HandleFunc("/assets/{id}", assetHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	admin.HandleFunc("/requests/{id}/approve", borrowHandler.Approve).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/requests/{id}/reject", borrowHandler.Reject).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/requests/{id}/return", borrowHandler.Return).Methods(http.MethodPost, http.MethodOptions)

	employee := protected.NewRoute().Subrouter()
	employee.Use(employeeOnly)
	employee.HandleFunc("/requests", borrowHandler.Submit).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/assets", assetHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/assets/{id}", assetHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/assets/{id}/history", assetHandler.Timeline).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/requests", borrowHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/devices", deviceHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/devices/{id}", deviceHandler.Get).Methods(http.MethodGet, http.MethodOptions)

	protected.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(deps.Hub, w, r)
	}).Methods(http.MethodGet)

	return r
}
