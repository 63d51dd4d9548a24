package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/middleware"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/internal/response"
)

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

// DeleteTransactions takes the batch in the request body rather than ids
// in the path; the response echoes the subset that was actually deleted.
func (h *transactionHandlers) DeleteTransactions(w http.ResponseWriter, r *http.Request) {
	var transactions []models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transactions); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	caller := middleware.Caller(r.Context())
	deleted, err := h.TransactionSvc.DeleteTransactions(r.Context(), caller, transactions)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, deleted)
}
