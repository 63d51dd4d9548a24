package store

import (
	"context"
	"iter"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/models"
)

// profileDoc is the storage shape of a Profile. The uid lives in the
// document id and the password must never reach Firestore, so neither has
// a field here.
type profileDoc struct {
	FirstName string `firestore:"firstname,omitempty"`
	LastName  string `firestore:"lastname,omitempty"`
	Email     string `firestore:"email,omitempty"`
	Role      string `firestore:"role,omitempty"`
}

func toProfileDoc(p *models.Profile) profileDoc {
	return profileDoc{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Role:      p.Role,
	}
}

func fromProfileDoc(id string, d profileDoc) *models.Profile {
	return &models.Profile{
		UID:       id,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Role:      d.Role,
	}
}

type profileStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewProfileStore(client *firestore.Client) *profileStore {
	return &profileStore{
		Client:     client,
		Collection: client.Collection("profiles"),
	}
}

// Save replaces the document at the profile's uid. Full overwrite, no
// merge.
func (ps *profileStore) Save(ctx context.Context, profile *models.Profile) error {
	_, err := ps.Collection.Doc(profile.UID).Set(ctx, toProfileDoc(profile))
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save profile", err)
	}
	return nil
}

func (ps *profileStore) Get(ctx context.Context, uid string) (*models.Profile, error) {
	doc, err := ps.Collection.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get profile", err)
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse profile data", err)
	}
	return fromProfileDoc(doc.Ref.ID, d), nil
}

// All returns a lazy, one-shot sequence over every profile document, in
// store order. The sequence stops at the first error.
func (ps *profileStore) All(ctx context.Context) iter.Seq2[*models.Profile, error] {
	return func(yield func(*models.Profile, error) bool) {
		it := ps.Collection.Documents(ctx)
		defer it.Stop()

		for {
			doc, err := it.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				yield(nil, errs.NewDatabaseError("read", "failed to list profiles", err))
				return
			}

			var d profileDoc
			if err := doc.DataTo(&d); err != nil {
				yield(nil, errs.NewDatabaseError("read", "failed to parse profile data", err))
				return
			}
			if !yield(fromProfileDoc(doc.Ref.ID, d), nil) {
				return
			}
		}
	}
}

// Delete removes the document at uid. No existence check; deleting a
// missing profile succeeds.
func (ps *profileStore) Delete(ctx context.Context, uid string) error {
	_, err := ps.Collection.Doc(uid).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete profile", err)
	}
	return nil
}
