package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/internal/response"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

type stubTransactionService struct {
	deleted    []models.Transaction
	err        error
	lastCaller authz.Caller
	lastBatch  []models.Transaction
}

func (s *stubTransactionService) DeleteTransactions(_ context.Context, caller authz.Caller, transactions []models.Transaction) ([]models.Transaction, error) {
	s.lastCaller = caller
	s.lastBatch = transactions
	return s.deleted, s.err
}

func transactionTestDeps(svc *stubTransactionService) *Deps {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	return &Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		TransactionSvc:  svc,
	}
}

func TestDeleteTransactions_OK(t *testing.T) {
	svc := &stubTransactionService{
		deleted: []models.Transaction{{UID: "t1", UserUID: "u1"}},
	}
	h := NewTransactionHandlers(transactionTestDeps(svc))

	body := `[{"uid":"t1","user_uid":"u1","account_number":"123","amount":10}]`
	r := withCaller(httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader(body)), "u1", "user")
	w := httptest.NewRecorder()

	h.DeleteTransactions(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(svc.lastBatch) != 1 || svc.lastBatch[0].UID != "t1" {
		t.Fatalf("service got wrong batch: %+v", svc.lastBatch)
	}
	if svc.lastCaller.UID != "u1" {
		t.Fatalf("caller not passed through: %+v", svc.lastCaller)
	}

	var envelope struct {
		Success bool                 `json:"success"`
		Data    []models.Transaction `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].UID != "t1" {
		t.Fatalf("response does not echo deleted subset: %+v", envelope)
	}
}

func TestDeleteTransactions_BadBody(t *testing.T) {
	svc := &stubTransactionService{}
	h := NewTransactionHandlers(transactionTestDeps(svc))

	r := httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader(`{"not":"a list"}`))
	w := httptest.NewRecorder()

	h.DeleteTransactions(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.lastBatch != nil {
		t.Fatalf("service called with unparseable body")
	}
}
