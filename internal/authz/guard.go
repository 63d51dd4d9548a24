package authz

import (
	"github.com/GregMSThompson/accounts-backend/internal/errs"
)

const RoleAdmin = "admin"

// deniedMessage is returned verbatim on every guard denial, whichever rule
// tripped it.
const deniedMessage = "Only administrators are allowed to access this function."

// Caller identifies the authenticated caller of an entry point. A zero
// Caller means the request carried no verified identity; every guard denies
// it.
type Caller struct {
	UID  string
	Role string
}

// RequireAdmin allows only callers holding the admin role claim.
func RequireAdmin(c Caller) error {
	if c.Role == RoleAdmin {
		return nil
	}
	return errs.NewPermissionDeniedError(deniedMessage)
}

// RequireSelfOrAdmin allows admins, or a caller acting on a resource they
// own. An empty caller uid never matches, so unauthenticated callers are
// denied even when ownerUID is itself empty.
func RequireSelfOrAdmin(c Caller, ownerUID string) error {
	if c.Role == RoleAdmin {
		return nil
	}
	if c.UID != "" && c.UID == ownerUID {
		return nil
	}
	return errs.NewPermissionDeniedError(deniedMessage)
}
