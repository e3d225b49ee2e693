// Package otp keeps short-lived login codes keyed by phone number.
//
// Codes are never stored in the clear: a backend only sees a keyed digest
// of (phone, code). All check-then-act sequences on one phone run inside
// the backend so concurrent send, resend and verify requests for the same
// number cannot interleave.
package otp

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoEntry means there is no live code for the phone, either because
	// none was issued or because it expired.
	ErrNoEntry = errors.New("otp: no live code")

	// ErrMismatch means a live code exists but the submitted one differs.
	// The entry is left untouched.
	ErrMismatch = errors.New("otp: code mismatch")

	// ErrRateLimited means a code was issued for the phone less than the
	// resend interval ago.
	ErrRateLimited = errors.New("otp: resend too soon")
)

// Entry is one live code.
type Entry struct {
	Digest    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer usable at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Backend stores entries. Implementations must make Issue and Redeem
// atomic per phone.
type Backend interface {
	// Issue stores e for phone, replacing any previous entry, unless a live
	// entry was created less than minGap before e.CreatedAt, in which case
	// it returns ErrRateLimited and changes nothing.
	Issue(ctx context.Context, phone string, e Entry, minGap time.Duration) error

	// Get returns the stored entry, expired or not, or ErrNoEntry.
	Get(ctx context.Context, phone string) (Entry, error)

	// Redeem deletes the entry if it is live at now and its digest equals
	// digest. Otherwise it returns ErrNoEntry or ErrMismatch.
	Redeem(ctx context.Context, phone, digest string, now time.Time) error

	// Delete removes the entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, phone string) error

	// DeleteExpired removes every entry with ExpiresAt <= now.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)

	Ping(ctx context.Context) error
}
