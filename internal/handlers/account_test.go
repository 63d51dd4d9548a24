package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/middleware"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/internal/response"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

// --- Stub service ---

type stubAccountService struct {
	createUser  *auth.UserRecord
	createErr   error
	lastCreated *models.Account

	listAccounts []models.Account
	listErr      error
	lastCaller   authz.Caller

	updateAccount *models.Account
	updateErr     error
}

func (s *stubAccountService) CreateAccount(_ context.Context, account *models.Account) (*auth.UserRecord, error) {
	s.lastCreated = account
	return s.createUser, s.createErr
}

func (s *stubAccountService) ListAccounts(_ context.Context, caller authz.Caller) ([]models.Account, error) {
	s.lastCaller = caller
	return s.listAccounts, s.listErr
}

func (s *stubAccountService) UpdateAccount(_ context.Context, caller authz.Caller, _ *models.Account) (*models.Account, error) {
	s.lastCaller = caller
	return s.updateAccount, s.updateErr
}

// --- Helpers ---

func testDeps(svc *stubAccountService) *Deps {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	return &Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		AccountSvc:      svc,
	}
}

// withCaller injects a verified caller into the request context, the way
// the auth middleware would.
func withCaller(r *http.Request, uid, role string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	return r.WithContext(ctx)
}

func userRecord(uid string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}
}

// --- Tests ---

func TestCreateAccount_OK(t *testing.T) {
	svc := &stubAccountService{createUser: userRecord("new-uid")}
	h := NewAccountHandlers(testDeps(svc))

	body := `{"credentials":{"user":{"email":"jane@example.com"},"password":"hunter2"},"profile":{"firstname":"Jane"}}`
	r := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateAccount(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if svc.lastCreated == nil || svc.lastCreated.Profile.FirstName != "Jane" {
		t.Fatalf("service got wrong account: %+v", svc.lastCreated)
	}

	var envelope response.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("success = false: %+v", envelope)
	}
}

func TestCreateAccount_BadBody(t *testing.T) {
	svc := &stubAccountService{}
	h := NewAccountHandlers(testDeps(svc))

	r := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.CreateAccount(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.lastCreated != nil {
		t.Fatalf("service called with unparseable body")
	}
}

func TestCreateAccount_ProviderFailure(t *testing.T) {
	svc := &stubAccountService{
		createErr: errs.NewInternalError("Error creating new user", nil),
	}
	h := NewAccountHandlers(testDeps(svc))

	r := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.CreateAccount(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "internal_error" || resp.Message != "Error creating new user" {
		t.Fatalf("unexpected error response: %+v", resp)
	}
}

func TestListAccounts_OK(t *testing.T) {
	svc := &stubAccountService{
		listAccounts: []models.Account{
			{Profile: models.Profile{UID: "u1"}},
		},
	}
	h := NewAccountHandlers(testDeps(svc))

	r := withCaller(httptest.NewRequest(http.MethodGet, "/accounts", nil), "boss", "admin")
	w := httptest.NewRecorder()

	h.ListAccounts(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.lastCaller.UID != "boss" || svc.lastCaller.Role != "admin" {
		t.Fatalf("caller not passed through: %+v", svc.lastCaller)
	}
}

func TestListAccounts_Forbidden(t *testing.T) {
	svc := &stubAccountService{
		listErr: errs.NewPermissionDeniedError("Only administrators are allowed to access this function."),
	}
	h := NewAccountHandlers(testDeps(svc))

	r := withCaller(httptest.NewRequest(http.MethodGet, "/accounts", nil), "u1", "user")
	w := httptest.NewRecorder()

	h.ListAccounts(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "permission_denied" {
		t.Fatalf("unexpected error code: %+v", resp)
	}
}

func TestUpdateAccount_OK(t *testing.T) {
	account := &models.Account{Profile: models.Profile{UID: "u1", FirstName: "Renamed"}}
	svc := &stubAccountService{updateAccount: account}
	h := NewAccountHandlers(testDeps(svc))

	body := `{"profile":{"uid":"u1","firstname":"Renamed"}}`
	r := withCaller(httptest.NewRequest(http.MethodPut, "/accounts", strings.NewReader(body)), "u1", "user")
	w := httptest.NewRecorder()

	h.UpdateAccount(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.lastCaller.UID != "u1" {
		t.Fatalf("caller not passed through: %+v", svc.lastCaller)
	}
}
