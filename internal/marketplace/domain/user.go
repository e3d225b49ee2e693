package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer      Role = "buyer"
	RoleSeller     Role = "seller"
	RoleOwner      Role = "owner"
	RoleInvestor   Role = "investor"
	RoleAgent      Role = "agent"
	RoleConsultant Role = "consultant"
	RoleAdmin      Role = "admin"
)

var allRoles = []Role{RoleBuyer, RoleSeller, RoleOwner, RoleInvestor, RoleAgent, RoleConsultant, RoleAdmin}

// ParseRole accepts any enum value, case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, slices.Contains(allRoles, r)
}

type User struct {
	ID            string     `json:"id"`
	Phone         string     `json:"phone"`
	Roles         []Role     `json:"roles"`
	IsVerified    bool       `json:"isVerified"`
	IsDeleted     bool       `json:"isDeleted"`
	LastOTPSentAt *time.Time `json:"lastOtpSentAt,omitempty"`

	// RefreshFingerprint is the hash of the current refresh token; empty
	// once logged out.
	RefreshFingerprint string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) HasRole(r Role) bool { return slices.Contains(u.Roles, r) }

// AddRole appends r if missing and reports whether anything changed.
// Roles are never removed.
func (u *User) AddRole(r Role) bool {
	if u.HasRole(r) {
		return false
	}
	u.Roles = append(u.Roles, r)
	return true
}

// RoleStrings is the claim form of the role set.
func (u User) RoleStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}

var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)

// NormalizePhone strips formatting and a leading 91 country code so
// "+91 98765-43210" and "9876543210" name the same account.
func NormalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	return digits
}

// ValidPhone reports whether phone is a normalised 10 digit Indian mobile
// number.
func ValidPhone(phone string) bool {
	return indianMobile.MatchString(phone)
}
