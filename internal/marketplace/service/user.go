package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

type UserService struct {
	Store  store.Store
	Policy policy.Policy
	Events events.Publisher
	Now    func() time.Time
}

// Profile returns the caller's record. Admins get the whole roster
// instead and a nil user.
func (s *UserService) Profile(ctx context.Context, actor policy.Actor) (*domain.User, []domain.User, error) {
	if s.Policy.IsAdmin(actor) {
		users, err := s.Store.Users().ListUsers(ctx)
		if err != nil {
			return nil, nil, apperr.Internal(err)
		}
		return nil, users, nil
	}

	u, err := s.Store.Users().GetUserByID(ctx, actor.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrNoSuchUser
	}
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return &u, nil, nil
}

// DeleteAccount soft-deletes a user. Users may delete themselves; the admin
// may delete anyone.
func (s *UserService) DeleteAccount(ctx context.Context, actor policy.Actor, id string) error {
	if !s.Policy.CanMutate(actor, id) {
		return ErrNotAuthorized
	}

	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSuchUser
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if u.IsDeleted {
		return nil
	}

	u.IsDeleted = true
	u.RefreshFingerprint = ""
	u.UpdatedAt = now(s.Now)
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, events.UserDeleted, map[string]any{"user_id": id, "by": actor.ID})
	slogx.FromContext(ctx).Info("account deleted", "deleted_user", id)
	return nil
}

func now(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return time.Now()
}
