package services

import (
	"context"
	"iter"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

// role given to every newly created account
const defaultRole = "user"

type identityASGateway interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

type profileASStore interface {
	Save(ctx context.Context, profile *models.Profile) error
	All(ctx context.Context) iter.Seq2[*models.Profile, error]
}

type accountService struct {
	Identity identityASGateway
	Profiles profileASStore
}

func NewAccountService(identity identityASGateway, profiles profileASStore) *accountService {
	return &accountService{
		Identity: identity,
		Profiles: profiles,
	}
}

// CreateAccount registers the user with the identity provider, then writes
// the profile document under the new uid. Any provider failure surfaces as
// a generic internal error and nothing is written. If the profile write
// fails the auth user is not rolled back; the next profile write closes
// the gap.
func (s *accountService) CreateAccount(ctx context.Context, account *models.Account) (*auth.UserRecord, error) {
	log := logger.FromContext(ctx)

	var email string
	if account.Credentials.User != nil {
		email = account.Credentials.User.Email
	}
	displayName := account.Profile.FirstName + " " + account.Profile.LastName

	user, err := s.Identity.CreateUser(ctx, email, account.Credentials.Password, displayName)
	if err != nil {
		log.Error("failed to create user", "error", err)
		return nil, errs.NewInternalError("Error creating new user", err)
	}

	profile := account.Profile
	profile.UID = user.UID
	profile.Role = defaultRole
	if err := s.Profiles.Save(ctx, &profile); err != nil {
		return nil, err
	}

	account.Credentials.User = user
	account.Profile = profile

	log.Info("account created", "uid", user.UID)
	return user, nil
}

// ListAccounts joins every profile document with its auth record, one
// sequential provider lookup per profile. Admin only.
func (s *accountService) ListAccounts(ctx context.Context, caller authz.Caller) ([]models.Account, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}

	accounts := []models.Account{}
	for profile, err := range s.Profiles.All(ctx) {
		if err != nil {
			return nil, err
		}

		user, err := s.Identity.GetUser(ctx, profile.UID)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, models.Account{
			Profile:     *profile,
			Credentials: models.Credentials{User: user},
		})
	}

	return accounts, nil
}

// UpdateAccount overwrites the caller's own profile document, or any
// profile when the caller is an admin. The account is echoed back.
func (s *accountService) UpdateAccount(ctx context.Context, caller authz.Caller, account *models.Account) (*models.Account, error) {
	if err := authz.RequireSelfOrAdmin(caller, account.Profile.UID); err != nil {
		return nil, err
	}

	if err := s.Profiles.Save(ctx, &account.Profile); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("account updated", "uid", account.Profile.UID)
	return account, nil
}
