package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/accounts-backend/internal/authz"
	"github.com/GregMSThompson/accounts-backend/pkg/logger"
)

type Middleware struct {
	AuthClient *auth.Client
}

func NewMiddleware(client *auth.Client) *Middleware {
	return &Middleware{AuthClient: client}
}

// context keys
type contextKey string

const (
	UIDKey  contextKey = "uid"
	RoleKey contextKey = "role"
)

// FirebaseAuth verifies the bearer ID token and stashes the caller's uid
// and role claim in the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		// The role custom claim rides on the verified token; absent means
		// an ordinary user with no elevated rights.
		role, _ := token.Claims["role"].(string)

		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		ctx = context.WithValue(ctx, RoleKey, role)
		_, ctx = logger.With(ctx, "uid", token.UID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID extracts the verified caller uid.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// Caller assembles the guard's view of the verified caller. Zero-valued
// when the request never passed FirebaseAuth.
func Caller(ctx context.Context) authz.Caller {
	role, _ := ctx.Value(RoleKey).(string)
	return authz.Caller{
		UID:  UID(ctx),
		Role: role,
	}
}
