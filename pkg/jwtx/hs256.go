package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a shared secret.
type HS256 struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewHS256 returns an HS256 signer/verifier. An empty issuer disables the
// issuer check on verification.
func NewHS256(secret []byte, issuer string, leeway time.Duration) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256{secret: secret, issuer: issuer, leeway: leeway}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (h *HS256) Sign(c Claims) (string, error) {
	if c.Issuer == "" {
		c.Issuer = h.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Verify checks signature, algorithm, expiry and issuer, and maps library
// errors onto the package sentinels.
func (h *HS256) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(h.leeway),
	}
	if h.issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return Claims{}, ErrIssuer
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
		}
	}
	if !tok.Valid {
		return Claims{}, ErrInvalidClaim
	}
	return claims, nil
}
