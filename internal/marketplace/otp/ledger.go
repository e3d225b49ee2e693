package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"github.com/aussiebroadwan/estate/pkg/cryptox"
)

const (
	DefaultTTL            = 10 * time.Minute
	DefaultResendInterval = 30 * time.Second
	DefaultSweepInterval  = 60 * time.Second
)

// CodeSource produces a fresh numeric code.
type CodeSource func() (string, error)

// RandomCode is uniform over 1000..9999.
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}

// Ledger issues, checks and consumes codes on top of a Backend.
type Ledger struct {
	backend Backend
	now     func() time.Time
	ttl     time.Duration
	resend  time.Duration
	codes   CodeSource
	key     []byte
}

type Option func(*Ledger)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

func WithTTL(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.ttl = d
		}
	}
}

// WithResendInterval sets the minimum gap between two issuances for the
// same phone. Zero disables the check.
func WithResendInterval(d time.Duration) Option {
	return func(l *Ledger) {
		if d >= 0 {
			l.resend = d
		}
	}
}

func WithCodeSource(src CodeSource) Option { return func(l *Ledger) { l.codes = src } }

// WithDigestKey sets the key codes are digested under. Instances sharing
// a backend must share the key.
func WithDigestKey(key []byte) Option { return func(l *Ledger) { l.key = key } }

func NewLedger(b Backend, opts ...Option) *Ledger {
	l := &Ledger{
		backend: b,
		now:     time.Now,
		ttl:     DefaultTTL,
		resend:  DefaultResendInterval,
		codes:   RandomCode,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TTL is how long an issued code stays valid.
func (l *Ledger) TTL() time.Duration { return l.ttl }

// ResendInterval is the minimum gap between issuances for one phone.
func (l *Ledger) ResendInterval() time.Duration { return l.resend }

// Issue generates and stores a new code for phone, replacing the previous
// one. It returns the plain code for delivery.
func (l *Ledger) Issue(ctx context.Context, phone string) (string, Entry, error) {
	code, err := l.codes()
	if err != nil {
		return "", Entry{}, err
	}

	now := l.now()
	e := Entry{
		Digest:    cryptox.DigestCode(l.key, phone, code),
		CreatedAt: now,
		ExpiresAt: now.Add(l.ttl),
	}
	if err := l.backend.Issue(ctx, phone, e, l.resend); err != nil {
		return "", Entry{}, err
	}
	return code, e, nil
}

// Peek returns the live entry for phone. Expired entries are reported as
// absent even before the sweep removes them.
func (l *Ledger) Peek(ctx context.Context, phone string) (Entry, bool, error) {
	e, err := l.backend.Get(ctx, phone)
	switch {
	case errors.Is(err, ErrNoEntry):
		return Entry{}, false, nil
	case err != nil:
		return Entry{}, false, err
	case e.Expired(l.now()):
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Verify checks code without consuming it.
func (l *Ledger) Verify(ctx context.Context, phone, code string) error {
	e, ok, err := l.Peek(ctx, phone)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoEntry
	}
	if !cryptox.EqualDigest(e.Digest, cryptox.DigestCode(l.key, phone, code)) {
		return ErrMismatch
	}
	return nil
}

// Redeem checks code and consumes the entry in one step, so a code is
// accepted at most once even under concurrent verification. A mismatch
// leaves the entry in place.
func (l *Ledger) Redeem(ctx context.Context, phone, code string) error {
	return l.backend.Redeem(ctx, phone, cryptox.DigestCode(l.key, phone, code), l.now())
}

// Consume drops the entry for phone.
func (l *Ledger) Consume(ctx context.Context, phone string) error {
	return l.backend.Delete(ctx, phone)
}

// Sweep removes every entry that has expired and returns how many went.
func (l *Ledger) Sweep(ctx context.Context) (int, error) {
	return l.backend.DeleteExpired(ctx, l.now())
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.backend.Ping(ctx)
}
