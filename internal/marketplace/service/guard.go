package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// Guard resolves bearer tokens to live users. It implements
// httpx.Authenticator.
type Guard struct {
	Tokens *TokenService
	Store  store.Store
}

var _ httpx.Authenticator = (*Guard)(nil)

// Authenticate verifies token and attaches the user to the returned context.
func (g *Guard) Authenticate(ctx context.Context, token string) (context.Context, error) {
	if token == "" {
		return ctx, ErrTokenMissing
	}
	userID, err := g.Tokens.VerifyAccess(token)
	if err != nil {
		return ctx, err
	}

	u, err := g.Store.Users().GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ctx, ErrUserNotFound
	case err != nil:
		return ctx, apperr.Internal(err)
	case u.IsDeleted:
		return ctx, ErrAccountDeleted
	}

	ctx = WithUser(ctx, u)
	ctx = httpx.WithUserID(ctx, u.ID)
	return slogx.With(ctx, "user_id", u.ID), nil
}
