package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
)

func TestRequestCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("input validation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		tests := []struct {
			name  string
			phone string
			role  string
			want  error
		}{
			{"missing phone", "", "buyer", ErrPhoneRoleRequired},
			{"short phone", "12345", "buyer", ErrInvalidPhone},
			{"bad leading digit", "5876543210", "buyer", ErrInvalidPhone},
			{"missing role", buyerPhone, "", ErrPhoneRoleRequired},
			{"unknown role", buyerPhone, "landlord", ErrInvalidRole},
			{"admin role requested", buyerPhone, "admin", ErrInvalidRole},
		}
		for _, tt := range tests {
			_, err := f.auth.RequestCode(ctx, tt.phone, tt.role)
			require.ErrorIs(t, err, tt.want, tt.name)
		}
	})

	t.Run("admin needs no role", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		res, err := f.auth.RequestCode(ctx, adminPhone, "")
		require.NoError(t, err)
		require.True(t, res.Delivered)
		require.Len(t, res.DebugCode, 4)
	})

	t.Run("phone is normalised", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.auth.RequestCode(ctx, "+91 98765-43210", "buyer")
		require.NoError(t, err)
		require.NotEmpty(t, f.sms.last(buyerPhone))
	})

	t.Run("resend within interval is rate limited", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)

		_, err = f.auth.ResendCode(ctx, buyerPhone)
		e := apperr.As(err)
		require.Equal(t, apperr.KindRateLimited, e.Kind)
		require.Equal(t, "Please wait 30 seconds before requesting another OTP", e.Message)

		f.clock.Advance(30 * time.Second)
		res, err := f.auth.ResendCode(ctx, buyerPhone)
		require.NoError(t, err)
		require.Equal(t, "1001", res.DebugCode)
	})

	t.Run("delivery failure keeps the code", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sms.fail = true

		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)
		require.False(t, res.Delivered)

		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.NoError(t, err)
	})

	t.Run("codes hidden unless exposed", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.auth.ExposeCodes = false
		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)
		require.Empty(t, res.DebugCode)
	})

	t.Run("stamps last send on known users", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := f.seedUser(t, buyerPhone, domain.RoleBuyer)

		_, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)

		got, err := f.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastOTPSentAt)
		require.Equal(t, []string{events.OTPIssued}, f.events.Names())
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("roles accumulate across logins", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		first := f.login(t, buyerPhone, "buyer")
		require.True(t, first.IsNewUser)
		require.False(t, first.IsAdmin)
		require.Nil(t, first.AllUsers)
		require.Equal(t, []domain.Role{domain.RoleBuyer}, first.User.Roles)
		require.NotEmpty(t, first.Tokens.AccessToken)

		second := f.login(t, buyerPhone, "Seller")
		require.False(t, second.IsNewUser)
		require.Equal(t, first.User.ID, second.User.ID)
		require.Equal(t, []domain.Role{domain.RoleBuyer, domain.RoleSeller}, second.User.Roles)

		third := f.login(t, buyerPhone, "buyer")
		require.Len(t, third.User.Roles, 2)
	})

	t.Run("code works exactly once", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)

		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("wrong code leaves the entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)

		_, err = f.auth.Verify(ctx, buyerPhone, "9999", "buyer", "")
		require.ErrorIs(t, err, ErrCodeIncorrect)
		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.NoError(t, err)
	})

	t.Run("expired code", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)

		f.clock.Advance(otp.DefaultTTL)
		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("request shape", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.auth.Verify(ctx, "", "1000", "buyer", "")
		require.ErrorIs(t, err, ErrInvalidOTPRequest)
		_, err = f.auth.Verify(ctx, buyerPhone, "", "buyer", "")
		require.ErrorIs(t, err, ErrInvalidOTPRequest)
		_, err = f.auth.Verify(ctx, buyerPhone, "1000", "", "")
		require.ErrorIs(t, err, ErrPhoneRoleRequired)
	})

	t.Run("admin sees every user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.login(t, buyerPhone, "buyer")
		f.login(t, "9123456789", "agent")

		res := f.login(t, adminPhone, "buyer")
		require.True(t, res.IsAdmin)
		require.Equal(t, []domain.Role{domain.RoleAdmin}, res.User.Roles)
		require.Len(t, res.AllUsers, 3)
	})

	t.Run("admin totp", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		key, err := totp.Generate(totp.GenerateOpts{Issuer: "estate", AccountName: adminPhone})
		require.NoError(t, err)
		f.auth.AdminTOTPSecret = key.Secret()

		res, err := f.auth.RequestCode(ctx, adminPhone, "")
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, adminPhone, res.DebugCode, "", "000000x")
		require.ErrorIs(t, err, ErrAdminTOTP)

		code, err := totp.GenerateCode(key.Secret(), time.Now())
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, adminPhone, res.DebugCode, "", code)
		require.NoError(t, err)
	})

	t.Run("deleted account is refused without consuming", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := f.seedUser(t, buyerPhone, domain.RoleBuyer)
		u.IsDeleted = true
		require.NoError(t, f.store.Users().UpdateUser(ctx, u))

		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, buyerPhone, res.DebugCode, "buyer", "")
		require.ErrorIs(t, err, ErrAccountDeleted)

		_, live, err := f.auth.Ledger.Peek(ctx, buyerPhone)
		require.NoError(t, err)
		require.True(t, live)
	})

	t.Run("debug bypass needs the switch", func(t *testing.T) {
		t.Parallel()
		if !otp.IsDebugBypass("1234") {
			t.Skip("bypass compiled out")
		}
		f := newFixture(t)
		_, err := f.auth.Verify(ctx, buyerPhone, "1234", "buyer", "")
		require.ErrorIs(t, err, ErrCodeExpired)

		f.auth.AllowDebugBypass = true
		res, err := f.auth.Verify(ctx, buyerPhone, "1234", "buyer", "")
		require.NoError(t, err)
		require.True(t, res.IsNewUser)
	})

	t.Run("issued code equal to the debug code is consumed", func(t *testing.T) {
		t.Parallel()
		if !otp.IsDebugBypass("1234") {
			t.Skip("bypass compiled out")
		}
		f := newFixture(t)
		f.auth.Ledger = otp.NewLedger(otp.NewMemory(),
			otp.WithClock(f.clock.Now),
			otp.WithDigestKey([]byte("test-key")),
			otp.WithCodeSource(func() (string, error) { return "1234", nil }),
		)
		f.auth.AllowDebugBypass = true

		res, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)
		require.Equal(t, "1234", res.DebugCode)

		_, err = f.auth.Verify(ctx, buyerPhone, "1234", "buyer", "")
		require.NoError(t, err)

		_, live, err := f.auth.Ledger.Peek(ctx, buyerPhone)
		require.NoError(t, err)
		require.False(t, live, "verified code must leave the ledger")

		f.auth.AllowDebugBypass = false
		_, err = f.auth.Verify(ctx, buyerPhone, "1234", "buyer", "")
		require.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("refused code leaves accounts untouched", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, buyerPhone, "9999", "buyer", "")
		require.ErrorIs(t, err, ErrCodeIncorrect)
		_, err = f.store.Users().GetUserByPhone(ctx, buyerPhone)
		require.ErrorIs(t, err, store.ErrNotFound)

		f.login(t, buyerPhone, "buyer")
		_, err = f.auth.RequestCode(ctx, buyerPhone, "seller")
		require.NoError(t, err)
		_, err = f.auth.Verify(ctx, buyerPhone, "9999", "seller", "")
		require.ErrorIs(t, err, ErrCodeIncorrect)

		u, err := f.store.Users().GetUserByPhone(ctx, buyerPhone)
		require.NoError(t, err)
		require.Equal(t, []domain.Role{domain.RoleBuyer}, u.Roles)
	})

	t.Run("events", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.login(t, buyerPhone, "buyer")
		f.login(t, buyerPhone, "buyer")
		require.Equal(t, []string{
			events.OTPIssued, events.UserCreated, events.UserLoggedIn,
			events.OTPIssued, events.UserLoggedIn,
		}, f.events.Names())
	})
}

func TestRefreshAndLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	login := f.login(t, buyerPhone, "buyer")

	_, err := f.auth.Refresh(ctx, login.Tokens.AccessToken)
	require.ErrorIs(t, err, ErrRefreshInvalid)

	rotated, err := f.auth.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, login.Tokens.RefreshToken, rotated.RefreshToken)

	_, err = f.auth.Refresh(ctx, login.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshInvalid)

	require.NoError(t, f.auth.Logout(ctx, login.User.ID))
	_, err = f.auth.Refresh(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshInvalid)

	require.ErrorIs(t, f.auth.Logout(ctx, "missing"), ErrNoSuchUser)
}
