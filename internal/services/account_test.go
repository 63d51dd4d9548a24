package services

import (
	"context"
	"errors"
	"iter"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/internal/errs"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/pkg/helpers"
)

type fakeIdentity struct {
	created         *auth.UserRecord
	createErr       error
	createUserCalls int
	lastEmail       string
	lastPassword    string
	lastDisplayName string

	users        map[string]*auth.UserRecord
	getUserCalls int
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, password, displayName string) (*auth.UserRecord, error) {
	f.createUserCalls++
	f.lastEmail = email
	f.lastPassword = password
	f.lastDisplayName = displayName
	return f.created, f.createErr
}

func (f *fakeIdentity) GetUser(_ context.Context, uid string) (*auth.UserRecord, error) {
	f.getUserCalls++
	user, ok := f.users[uid]
	if !ok {
		return nil, errs.NewNotFoundError("user not found")
	}
	return user, nil
}

type fakeProfileStore struct {
	saved     []*models.Profile
	saveErr   error
	profiles  []*models.Profile
	allCalls  int
	saveCalls int
}

func (f *fakeProfileStore) Save(_ context.Context, profile *models.Profile) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	p := *profile
	f.saved = append(f.saved, &p)
	return nil
}

func (f *fakeProfileStore) All(_ context.Context) iter.Seq2[*models.Profile, error] {
	f.allCalls++
	return func(yield func(*models.Profile, error) bool) {
		for _, p := range f.profiles {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func userRecord(uid, email string, verified bool) *auth.UserRecord {
	return &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:   uid,
			Email: email,
		},
		EmailVerified: verified,
	}
}

func TestCreateAccount(t *testing.T) {
	identity := &fakeIdentity{created: userRecord("new-uid", "jane@example.com", false)}
	profiles := &fakeProfileStore{}
	svc := NewAccountService(identity, profiles)

	account := &models.Account{
		Credentials: models.Credentials{
			User:     userRecord("", "jane@example.com", false),
			Password: "hunter2",
		},
		Profile: models.Profile{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	}

	user, err := svc.CreateAccount(helpers.TestCtx(), account)
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	if user.UID != "new-uid" {
		t.Fatalf("unexpected user returned: %+v", user)
	}
	if identity.lastEmail != "jane@example.com" || identity.lastPassword != "hunter2" {
		t.Fatalf("provider got wrong credentials: %q %q", identity.lastEmail, identity.lastPassword)
	}
	if identity.lastDisplayName != "Jane Doe" {
		t.Fatalf("unexpected display name %q", identity.lastDisplayName)
	}

	if len(profiles.saved) != 1 {
		t.Fatalf("saved %d profiles, want 1", len(profiles.saved))
	}
	saved := profiles.saved[0]
	if saved.UID != "new-uid" {
		t.Fatalf("profile not keyed by new uid: %+v", saved)
	}
	if saved.Role != "user" {
		t.Fatalf("role not forced to user: %+v", saved)
	}

	if account.Credentials.User.UID != "new-uid" {
		t.Fatalf("account credentials not updated: %+v", account.Credentials.User)
	}
}

func TestCreateAccountProviderFailure(t *testing.T) {
	identity := &fakeIdentity{createErr: errors.New("EMAIL_EXISTS")}
	profiles := &fakeProfileStore{}
	svc := NewAccountService(identity, profiles)

	account := &models.Account{
		Credentials: models.Credentials{User: userRecord("", "dup@example.com", false)},
	}

	_, err := svc.CreateAccount(helpers.TestCtx(), account)

	var internal *errs.InternalError
	if !errors.As(err, &internal) {
		t.Fatalf("expected *errs.InternalError, got %v", err)
	}
	if !errors.Is(err, identity.createErr) {
		t.Fatalf("provider error not wrapped: %v", err)
	}
	if profiles.saveCalls != 0 {
		t.Fatalf("profile written despite provider failure")
	}
}

func TestCreateAccountNoRollbackOnSaveFailure(t *testing.T) {
	identity := &fakeIdentity{created: userRecord("orphan-uid", "o@example.com", false)}
	profiles := &fakeProfileStore{saveErr: errors.New("write failed")}
	svc := NewAccountService(identity, profiles)

	account := &models.Account{
		Credentials: models.Credentials{User: userRecord("", "o@example.com", false)},
	}

	_, err := svc.CreateAccount(helpers.TestCtx(), account)
	if err == nil {
		t.Fatalf("expected error from profile save")
	}

	// the auth user stays behind; there is no compensating delete
	if identity.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", identity.createUserCalls)
	}
}

func TestListAccounts(t *testing.T) {
	identity := &fakeIdentity{
		users: map[string]*auth.UserRecord{
			"u1": userRecord("u1", "one@example.com", true),
			"u2": userRecord("u2", "two@example.com", false),
		},
	}
	profiles := &fakeProfileStore{
		profiles: []*models.Profile{
			{UID: "u1", FirstName: "One", Role: "user"},
			{UID: "u2", FirstName: "Two", Role: "admin"},
		},
	}
	svc := NewAccountService(identity, profiles)

	accounts, err := svc.ListAccounts(helpers.TestCtx(), authz.Caller{UID: "boss", Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("ListAccounts returned error: %v", err)
	}

	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].Profile.UID != "u1" || accounts[0].Credentials.User.UID != "u1" {
		t.Fatalf("profile and user not joined: %+v", accounts[0])
	}
	if identity.getUserCalls != 2 {
		t.Fatalf("GetUser called %d times, want 2", identity.getUserCalls)
	}
}

func TestListAccountsDeniedBeforeAnyRead(t *testing.T) {
	identity := &fakeIdentity{}
	profiles := &fakeProfileStore{
		profiles: []*models.Profile{{UID: "u1"}},
	}
	svc := NewAccountService(identity, profiles)

	_, err := svc.ListAccounts(helpers.TestCtx(), authz.Caller{UID: "u1", Role: "user"})

	var pd *errs.PermissionDeniedError
	if !errors.As(err, &pd) {
		t.Fatalf("expected *errs.PermissionDeniedError, got %v", err)
	}
	if profiles.allCalls != 0 {
		t.Fatalf("store read despite denial")
	}
	if identity.getUserCalls != 0 {
		t.Fatalf("provider read despite denial")
	}
}

func TestListAccountsMissingUserFails(t *testing.T) {
	identity := &fakeIdentity{users: map[string]*auth.UserRecord{}}
	profiles := &fakeProfileStore{
		profiles: []*models.Profile{{UID: "ghost"}},
	}
	svc := NewAccountService(identity, profiles)

	_, err := svc.ListAccounts(helpers.TestCtx(), authz.Caller{Role: authz.RoleAdmin})

	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *errs.NotFoundError, got %v", err)
	}
}

func TestUpdateAccount(t *testing.T) {
	profiles := &fakeProfileStore{}
	svc := NewAccountService(&fakeIdentity{}, profiles)

	account := &models.Account{
		Profile: models.Profile{UID: "u1", FirstName: "Renamed"},
	}

	// owner updates their own profile
	updated, err := svc.UpdateAccount(helpers.TestCtx(), authz.Caller{UID: "u1", Role: "user"}, account)
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated != account {
		t.Fatalf("account not echoed back")
	}

	// admin updates someone else's profile
	_, err = svc.UpdateAccount(helpers.TestCtx(), authz.Caller{UID: "boss", Role: authz.RoleAdmin}, account)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	if profiles.saveCalls != 2 {
		t.Fatalf("Save called %d times, want 2", profiles.saveCalls)
	}
}

func TestUpdateAccountDenied(t *testing.T) {
	profiles := &fakeProfileStore{}
	svc := NewAccountService(&fakeIdentity{}, profiles)

	account := &models.Account{Profile: models.Profile{UID: "u1"}}

	_, err := svc.UpdateAccount(helpers.TestCtx(), authz.Caller{UID: "u2", Role: "user"}, account)

	var pd *errs.PermissionDeniedError
	if !errors.As(err, &pd) {
		t.Fatalf("expected *errs.PermissionDeniedError, got %v", err)
	}
	if profiles.saveCalls != 0 {
		t.Fatalf("profile written despite denial")
	}
}
