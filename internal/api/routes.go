package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vportan/bacbot/internal/api/handlers"
	"github.com/vportan/bacbot/internal/api/middleware"
	"github.com/vportan/bacbot/internal/services/entitlement"
)

// NewRouter builds the admin HTTP surface: a liveness probe plus
// token-protected entitlement management.
func NewRouter(entitlementService *entitlement.Service) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", handlers.HandleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(middleware.RequireAdmin)
	v1.HandleFunc("/entitlements/{userID}", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleGetEntitlement(entitlementService, w, r)
	}).Methods(http.MethodGet)
	v1.HandleFunc("/entitlements/{userID}", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleGrantEntitlement(entitlementService, w, r)
	}).Methods(http.MethodPost)
	v1.HandleFunc("/entitlements/{userID}", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleRevokeEntitlement(entitlementService, w, r)
	}).Methods(http.MethodDelete)

	return r
}
