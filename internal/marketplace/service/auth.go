package service

import (
	"context"
	"errors"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/notify"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// CodeResult describes an issued login code.
type CodeResult struct {
	Delivered bool
	ExpiresAt time.Time
	// DebugCode is the plain code, set only outside production.
	DebugCode string
}

// LoginResult is the outcome of a successful verification.
type LoginResult struct {
	User      domain.User
	Tokens    TokenPair
	IsAdmin   bool
	IsNewUser bool
	// AllUsers is populated for admin logins only.
	AllUsers []domain.User
}

// AuthService runs the phone + one-time-code login flow.
type AuthService struct {
	Store  store.Store
	Ledger *otp.Ledger
	SMS    notify.SMSSender
	Tokens *TokenService
	Policy policy.Policy
	Events events.Publisher

	// ExposeCodes returns issued codes in responses. Never set in production.
	ExposeCodes bool
	// AllowDebugBypass accepts the fixed debug code when the build has it.
	AllowDebugBypass bool
	// AdminTOTPSecret, when set, makes admin logins present a TOTP code too.
	AdminTOTPSecret string

	Now func() time.Time
}

func (s *AuthService) now() time.Time { return now(s.Now) }

// RequestCode issues a code for phone. Non-admin callers must name the role
// they intend to sign in as; the role is validated here and applied at
// verification.
func (s *AuthService) RequestCode(ctx context.Context, phone, role string) (CodeResult, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return CodeResult{}, ErrPhoneRoleRequired
	}
	if !domain.ValidPhone(phone) {
		return CodeResult{}, ErrInvalidPhone
	}
	if !s.Policy.IsAdmin(policy.Actor{Phone: phone}) {
		if role == "" {
			return CodeResult{}, ErrPhoneRoleRequired
		}
		if _, err := s.loginRole(role); err != nil {
			return CodeResult{}, err
		}
	}
	return s.issue(ctx, phone)
}

// ResendCode replaces the code for phone, subject to the same spacing as
// RequestCode.
func (s *AuthService) ResendCode(ctx context.Context, phone string) (CodeResult, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return CodeResult{}, apperr.Validation("Phone number is required")
	}
	if !domain.ValidPhone(phone) {
		return CodeResult{}, ErrInvalidPhone
	}
	return s.issue(ctx, phone)
}

func (s *AuthService) issue(ctx context.Context, phone string) (CodeResult, error) {
	log := slogx.FromContext(ctx)

	code, entry, err := s.Ledger.Issue(ctx, phone)
	if errors.Is(err, otp.ErrRateLimited) {
		return CodeResult{}, resendTooSoon(s.Ledger.ResendInterval())
	}
	if err != nil {
		return CodeResult{}, apperr.Internal(err)
	}
	s.stampSent(ctx, phone, entry.CreatedAt)

	res := CodeResult{ExpiresAt: entry.ExpiresAt}
	if s.ExposeCodes {
		res.DebugCode = code
	}
	if err := s.SMS.SendOTP(ctx, phone, code, s.Ledger.TTL()); err != nil {
		log.Warn("otp delivery failed", "error", err)
	} else {
		res.Delivered = true
	}

	events.Emit(ctx, s.Events, events.OTPIssued, map[string]any{
		"phone":      phone,
		"delivered":  res.Delivered,
		"expires_at": entry.ExpiresAt,
	})
	return res, nil
}

// stampSent records the send time on an existing account. Unknown phones
// are left alone; the account is created on first verification.
func (s *AuthService) stampSent(ctx context.Context, phone string, at time.Time) {
	u, err := s.Store.Users().GetUserByPhone(ctx, phone)
	if err != nil {
		return
	}
	u.LastOTPSentAt = &at
	u.UpdatedAt = s.now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		slogx.FromContext(ctx).Warn("failed to stamp otp send time", "error", err)
	}
}

// Verify checks the code for phone and signs the user in, creating the
// account on first login. A code is accepted at most once.
func (s *AuthService) Verify(ctx context.Context, phone, code, role, totpCode string) (LoginResult, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" || code == "" {
		return LoginResult{}, ErrInvalidOTPRequest
	}

	isAdmin := s.Policy.IsAdmin(policy.Actor{Phone: phone})
	var want domain.Role
	if isAdmin {
		want = domain.RoleAdmin
		if s.AdminTOTPSecret != "" && !totp.Validate(totpCode, s.AdminTOTPSecret) {
			return LoginResult{}, ErrAdminTOTP
		}
	} else {
		if role == "" {
			return LoginResult{}, ErrPhoneRoleRequired
		}
		r, err := s.loginRole(role)
		if err != nil {
			return LoginResult{}, err
		}
		want = r
	}

	existing, err := s.Store.Users().GetUserByPhone(ctx, phone)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return LoginResult{}, apperr.Internal(err)
	case existing.IsDeleted:
		return LoginResult{}, ErrAccountDeleted
	}

	var res LoginResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := s.now()
		u, err := tx.Users().GetUserByPhone(ctx, phone)
		switch {
		case errors.Is(err, store.ErrNotFound):
			u = domain.User{
				ID:        idx.New().String(),
				Phone:     phone,
				CreatedAt: now,
			}
			res.IsNewUser = true
		case err != nil:
			return err
		}

		u.AddRole(want)
		u.IsVerified = true
		u.UpdatedAt = now

		pair, err := s.Tokens.Mint(u)
		if err != nil {
			return err
		}
		u.RefreshFingerprint = cryptox.FingerprintToken(pair.RefreshToken)

		if res.IsNewUser {
			err = tx.Users().CreateUser(ctx, u)
		} else {
			err = tx.Users().UpdateUser(ctx, u)
		}
		if err != nil {
			return err
		}

		res.User = u
		res.Tokens = pair
		res.IsAdmin = isAdmin
		if isAdmin {
			if res.AllUsers, err = tx.Users().ListUsers(ctx); err != nil {
				return err
			}
		}

		// Last step before commit: a store failure above leaves the code
		// usable, a refused code rolls the account changes back.
		return s.redeem(ctx, phone, code)
	})
	if err != nil {
		return LoginResult{}, apperr.As(err)
	}

	if res.IsNewUser {
		events.Emit(ctx, s.Events, events.UserCreated, map[string]any{"user_id": res.User.ID, "roles": res.User.RoleStrings()})
	}
	events.Emit(ctx, s.Events, events.UserLoggedIn, map[string]any{"user_id": res.User.ID, "admin": isAdmin})
	slogx.FromContext(ctx).Info("user logged in", "user_id", res.User.ID, "new", res.IsNewUser, "admin", isAdmin)
	return res, nil
}

// redeem consumes the live code for phone. The debug code is only
// considered when the ledger has nothing matching, so an issued code that
// happens to equal it is still consumed.
func (s *AuthService) redeem(ctx context.Context, phone, code string) error {
	err := s.Ledger.Redeem(ctx, phone, code)
	if errors.Is(err, otp.ErrNoEntry) || errors.Is(err, otp.ErrMismatch) {
		if s.AllowDebugBypass && otp.IsDebugBypass(code) {
			slogx.FromContext(ctx).Warn("debug otp bypass used", "phone", phone)
			return nil
		}
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, otp.ErrNoEntry):
		return ErrCodeExpired
	case errors.Is(err, otp.ErrMismatch):
		return ErrCodeIncorrect
	default:
		return apperr.Internal(err)
	}
}

// Refresh rotates a refresh token. The presented token must be the latest
// one issued to the user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrRefreshInvalid
	}
	userID, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return TokenPair{}, ErrRefreshInvalid
	case err != nil:
		return TokenPair{}, apperr.Internal(err)
	case u.IsDeleted:
		return TokenPair{}, ErrAccountDeleted
	case !cryptox.MatchFingerprint(refreshToken, u.RefreshFingerprint):
		return TokenPair{}, ErrRefreshInvalid
	}

	pair, err := s.Tokens.Mint(u)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	u.RefreshFingerprint = cryptox.FingerprintToken(pair.RefreshToken)
	u.UpdatedAt = s.now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	return pair, nil
}

// Logout invalidates the user's refresh token. Access tokens stay valid
// until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSuchUser
	}
	if err != nil {
		return apperr.Internal(err)
	}
	u.RefreshFingerprint = ""
	u.UpdatedAt = s.now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return apperr.Internal(err)
	}
	slogx.FromContext(ctx).Debug("refresh token revoked", "user_id", userID)
	return nil
}

// loginRole parses a requested role. Admin is granted by phone, never by
// request.
func (s *AuthService) loginRole(raw string) (domain.Role, error) {
	r, ok := domain.ParseRole(raw)
	if !ok || r == domain.RoleAdmin {
		return "", ErrInvalidRole
	}
	return r, nil
}
