package services

import (
	"context"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

type transactionTSStore interface {
	Delete(ctx context.Context, id string) error
}

type transactionService struct {
	Txs transactionTSStore
}

func NewTransactionService(txs transactionTSStore) *transactionService {
	return &transactionService{Txs: txs}
}

// DeleteTransactions deletes each transaction the caller owns (or all of
// them for an admin). Denied items are logged and skipped rather than
// failing the batch; items without an id have nothing to delete and are
// skipped too. Returns the deleted subset in input order.
func (s *transactionService) DeleteTransactions(ctx context.Context, caller authz.Caller, transactions []models.Transaction) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	deleted := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if err := authz.RequireSelfOrAdmin(caller, transaction.UserUID); err != nil {
			log.Warn("transaction can't be deleted by caller",
				"transaction_uid", transaction.UID,
				"caller_uid", caller.UID)
			continue
		}

		if transaction.UID == "" {
			continue
		}

		if err := s.Txs.Delete(ctx, transaction.UID); err != nil {
			return nil, err
		}
		deleted = append(deleted, transaction)
	}

	return deleted, nil
}
