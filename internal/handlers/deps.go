package handlers

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/dto"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/internal/response"
)

type AccountService interface {
	CreateAccount(ctx context.Context, account *models.Account) (*auth.UserRecord, error)
	ListAccounts(ctx context.Context, caller authz.Caller) ([]models.Account, error)
	UpdateAccount(ctx context.Context, caller authz.Caller, account *models.Account) (*models.Account, error)
}

type TransactionService interface {
	DeleteTransactions(ctx context.Context, caller authz.Caller, transactions []models.Transaction) ([]models.Transaction, error)
}

type ClaimsService interface {
	SyncProfileClaims(ctx context.Context, event dto.ProfileChangeEvent) error
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AccountSvc      AccountService
	TransactionSvc  TransactionService
	ClaimsSvc       ClaimsService
	Firebase        *auth.Client
}
