package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/accounts-backend/internal/dto"
	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/response"
)

type eventHandlers struct {
	ResponseHandler response.ResponseHandler
	ClaimsSvc       ClaimsService
}

func NewEventHandlers(deps *Deps) *eventHandlers {
	return &eventHandlers{
		ResponseHandler: deps.ResponseHandler,
		ClaimsSvc:       deps.ClaimsSvc,
	}
}

// ProfileWritten receives the change-feed push for writes to the profiles
// collection. There is no end-user token to verify; only the platform's
// event delivery can reach this route (invoker IAM on the trigger).
func (h *eventHandlers) ProfileWritten(w http.ResponseWriter, r *http.Request) {
	var event dto.ProfileChangeEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid event payload"))
		return
	}

	if err := h.ClaimsSvc.SyncProfileClaims(r.Context(), event); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
