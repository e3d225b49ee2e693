package service

import (
	"context"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
)

type userCtxKey struct{}

// WithUser attaches the authenticated user to ctx.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user the guard resolved.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// ActorFromContext is the policy view of the authenticated user. The zero
// Actor owns nothing and is not admin.
func ActorFromContext(ctx context.Context) policy.Actor {
	u, ok := UserFromContext(ctx)
	if !ok {
		return policy.Actor{}
	}
	return policy.ActorFromUser(u)
}
