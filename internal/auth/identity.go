package auth

import (
	"context"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userKey is the context key for the resolved request identity.
const userKey ctxKey = "user"

// WithUser stores the resolved identity in the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the resolved identity for the current request,
// or nil for anonymous requests. Anonymous access is valid for queries;
// mutations that require a caller reject nil themselves.
func UserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
