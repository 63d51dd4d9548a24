package services

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/dto"
	"github.com/GregMSThompson/accounts-backend/internal/models"
	"github.com/GregMSThompson/accounts-backend/pkg/helpers"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

// Every synced claim set carries this access level, whatever the role.
// TODO: derive accessLevel from the role once levels are defined.
const defaultAccessLevel = 9

type identityCSGateway interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error
}

type claimsService struct {
	Identity identityCSGateway
}

func NewClaimsService(identity identityCSGateway) *claimsService {
	return &claimsService{Identity: identity}
}

// SyncProfileClaims mirrors a committed profile write into the user's
// custom claims. Delete events are a no-op: the document is gone and there
// is nothing to sync.
func (s *claimsService) SyncProfileClaims(ctx context.Context, event dto.ProfileChangeEvent) error {
	if event.After == nil {
		return nil
	}

	user, err := s.Identity.GetUser(ctx, event.UID)
	if err != nil {
		return err
	}

	claims := models.CustomClaims{
		Role:        event.After.Role,
		AccessLevel: helpers.Ptr(defaultAccessLevel),
	}
	s.setCustomClaims(ctx, user, claims)
	return nil
}

// setCustomClaims is best-effort: the triggering write already committed,
// so provider failures are logged and swallowed. Users without a verified
// email keep whatever claims they had.
func (s *claimsService) setCustomClaims(ctx context.Context, user *auth.UserRecord, claims models.CustomClaims) {
	log := logger.FromContext(ctx)

	if user.Email == "" || !user.EmailVerified {
		log.Info("skipping claim assignment, email not verified", "uid", user.UID)
		return
	}

	if err := s.Identity.SetCustomClaims(ctx, user.UID, claims.Map()); err != nil {
		log.Error("failed to set custom claims", "uid", user.UID, "error", err)
	}
}
