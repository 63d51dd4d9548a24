package firebaseclient

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/errs"
)

// Adapter wraps the Firebase Auth admin client. It is the only place the
// identity provider SDK is called; services depend on it through narrow
// interfaces so tests can substitute fakes.
type Adapter struct {
	client *auth.Client
}

func NewAdapter(client *auth.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) CreateUser(ctx context.Context, email, password, displayName string) (*auth.UserRecord, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	return a.client.CreateUser(ctx, params)
}

func (a *Adapter) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	user, err := a.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errs.NewNotFoundError("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error {
	return a.client.SetCustomUserClaims(ctx, uid, claims)
}
