package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/middleware"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/internal/response"
)

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      AccountService
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
	}
}

// CreateAccount is the signup entry point; it is mounted outside the auth
// middleware since the caller has no account yet.
func (h *accountHandlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	user, err := h.AccountSvc.CreateAccount(r.Context(), &account)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, user)
}

func (h *accountHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	caller := middleware.Caller(r.Context())

	accounts, err := h.AccountSvc.ListAccounts(r.Context(), caller)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *accountHandlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	caller := middleware.Caller(r.Context())
	updated, err := h.AccountSvc.UpdateAccount(r.Context(), caller, &account)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, updated)
}
