package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default lifetimes. Login hands out a two day access token; the refresh
// token lives for a week. Both are overridable from configuration.
const (
	DefaultAccessTokenTTL  = 48 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType separates access tokens from refresh tokens so one can never be
// replayed as the other.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims carried by every token we mint. The user id is duplicated into
// "id" because existing web and mobile clients read it from there.
type Claims struct {
	jwt.RegisteredClaims

	UserID string    `json:"id"`
	Type   TokenType `json:"typ"`
	Roles  []string  `json:"roles,omitempty"`
}

// NewClaims builds claims for userID valid from now for ttl.
func NewClaims(userID string, typ TokenType, roles []string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID: userID,
		Type:   typ,
		Roles:  roles,
	}
}

// NewJTI returns a random URL-safe token identifier.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Identity returns the user id, preferring sub over the legacy id claim.
func (c Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}

// ValidateType rejects tokens minted for a different purpose.
func (c Claims) ValidateType(want TokenType) error {
	if c.Type != want {
		return ErrWrongType
	}
	return nil
}

// ValidateExpiryAt checks exp and nbf against now.
func (c Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
