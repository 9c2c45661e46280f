package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/services/entitlement"
	"github.com/vportan/bacbot/pkg/httpext"
)

type grantRequest struct {
	Days  int  `json:"days" validate:"gte=0,lte=365"`
	Trial bool `json:"trial"`
}

type entitlementResponse struct {
	UserID    string `json:"user_id"`
	Entitled  bool   `json:"entitled"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// HandleGetEntitlement reports whether the user currently has an active grant.
func HandleGetEntitlement(svc *entitlement.Service, w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	resp := entitlementResponse{
		UserID:   userID,
		Entitled: svc.IsEntitled(userID),
	}
	if until, ok := svc.ProUntil(userID); ok {
		resp.ExpiresAt = until.Format(time.RFC3339)
	}

	httpext.JSON(w, http.StatusOK, resp)
}

// HandleGrantEntitlement starts a grant window for the user. A trial request
// uses the fixed trial duration; otherwise days defaults to 30.
func HandleGrantEntitlement(svc *entitlement.Service, w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// use a single instance of Validate, it caches struct info
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	var err error
	if req.Trial {
		err = svc.StartTrial(userID)
	} else {
		duration := entitlement.DefaultGrantDuration
		if req.Days > 0 {
			duration = time.Duration(req.Days) * 24 * time.Hour
		}
		err = svc.Grant(userID, duration)
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to grant entitlement")
		httpext.JsonError(w, "Failed to persist grant", http.StatusInternalServerError)
		return
	}

	HandleGetEntitlement(svc, w, r)
}

// HandleRevokeEntitlement removes any grant for the user. Revoking an unknown
// user succeeds.
func HandleRevokeEntitlement(svc *entitlement.Service, w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	if err := svc.Revoke(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to revoke entitlement")
		httpext.JsonError(w, "Failed to persist revoke", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
