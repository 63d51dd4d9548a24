package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/accounts-backend/internal/errs"
)

type transactionStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{
		Client:     client,
		Collection: client.Collection("transactions"),
	}
}

// Delete removes the transaction document by id. No existence check.
func (ts *transactionStore) Delete(ctx context.Context, id string) error {
	_, err := ts.Collection.Doc(id).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}
