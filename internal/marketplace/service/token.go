package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
)

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService mints and checks bearer tokens. Access and refresh tokens
// share the signer but carry different types and lifetimes.
type TokenService struct {
	Signer     *jwtx.HS256
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (s *TokenService) now() time.Time { return now(s.Now) }

// Mint issues a fresh access/refresh pair for u.
func (s *TokenService) Mint(u domain.User) (TokenPair, error) {
	now := s.now()
	access := jwtx.NewClaims(u.ID, jwtx.AccessToken, u.RoleStrings(), s.AccessTTL, "", now)
	refresh := jwtx.NewClaims(u.ID, jwtx.RefreshToken, nil, s.RefreshTTL, "", now)

	at, err := s.Signer.Sign(access)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := s.Signer.Sign(refresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      at,
		RefreshToken:     rt,
		AccessExpiresAt:  access.ExpiresAt.Time,
		RefreshExpiresAt: refresh.ExpiresAt.Time,
	}, nil
}

// VerifyAccess returns the user id in an access token. Expired tokens are
// reported separately so clients can prompt for a fresh login.
func (s *TokenService) VerifyAccess(raw string) (string, error) {
	claims, err := s.Signer.Verify(raw)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if claims.ValidateType(jwtx.AccessToken) != nil || claims.Identity() == "" {
		return "", ErrTokenInvalid
	}
	return claims.Identity(), nil
}

// VerifyRefresh returns the user id in a refresh token.
func (s *TokenService) VerifyRefresh(raw string) (string, error) {
	claims, err := s.Signer.Verify(raw)
	if err != nil || claims.ValidateType(jwtx.RefreshToken) != nil || claims.Identity() == "" {
		return "", ErrRefreshInvalid
	}
	return claims.Identity(), nil
}
