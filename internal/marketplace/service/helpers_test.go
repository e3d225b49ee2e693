package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store/drivers/sqlite"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	adminPhone = "9000000001"
	buyerPhone = "9876543210"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeSMS remembers the last code per phone.
type fakeSMS struct {
	mu    sync.Mutex
	codes map[string]string
	fail  bool
}

func (f *fakeSMS) SendOTP(_ context.Context, phone, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("provider down")
	}
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[phone] = code
	return nil
}

func (f *fakeSMS) last(phone string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[phone]
}

// stubStorage pretends to be disk storage.
type stubStorage struct{ n atomic.Int64 }

func (s *stubStorage) Store(_ context.Context, f media.File) (string, error) {
	if err := media.Validate(f); err != nil {
		return "", err
	}
	return "/uploads/" + strconv.FormatInt(s.n.Add(1), 10) + f.Ext(), nil
}

func (s *stubStorage) Name() string { return "stub" }

type fixture struct {
	store  *sqlite.Store
	clock  *testClock
	sms    *fakeSMS
	events *events.Recorder
	policy policy.Policy
	tokens *TokenService
	auth   *AuthService
	guard  *Guard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := &testClock{now: time.Now().UTC().Truncate(time.Second)}
	var seq atomic.Int64
	seq.Store(999)
	ledger := otp.NewLedger(otp.NewMemory(),
		otp.WithClock(clock.Now),
		otp.WithDigestKey([]byte("test-key")),
		otp.WithCodeSource(func() (string, error) {
			return strconv.FormatInt(seq.Add(1), 10), nil
		}),
	)

	signer, err := jwtx.NewHS256([]byte("test-secret"), "", 0)
	require.NoError(t, err)
	tokens := &TokenService{
		Signer:     signer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	f := &fixture{
		store:  st,
		clock:  clock,
		sms:    &fakeSMS{},
		events: &events.Recorder{},
		policy: policy.Policy{AdminPhone: adminPhone},
		tokens: tokens,
	}
	f.auth = &AuthService{
		Store:       st,
		Ledger:      ledger,
		SMS:         f.sms,
		Tokens:      tokens,
		Policy:      f.policy,
		Events:      f.events,
		ExposeCodes: true,
		Now:         clock.Now,
	}
	f.guard = &Guard{Tokens: tokens, Store: st}
	return f
}

// login runs send + verify for phone under role.
func (f *fixture) login(t *testing.T, phone, role string) LoginResult {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.RequestCode(ctx, phone, role)
	require.NoError(t, err)
	res, err := f.auth.Verify(ctx, phone, f.sms.last(phone), role, "")
	require.NoError(t, err)
	f.clock.Advance(f.auth.Ledger.ResendInterval())
	return res
}

func (f *fixture) seedUser(t *testing.T, phone string, roles ...domain.Role) domain.User {
	t.Helper()
	now := f.clock.Now()
	u := domain.User{
		ID:         idx.New().String(),
		Phone:      phone,
		Roles:      roles,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return u
}

func ptr[T any](v T) *T { return &v }
