// Package policy decides who may change what. Every resource handler asks
// here instead of comparing phone numbers itself.
package policy

import "github.com/aussiebroadwan/estate/internal/marketplace/domain"

// Actor is the authenticated caller as the guard resolved it.
type Actor struct {
	ID    string
	Phone string
	Roles []domain.Role
}

func ActorFromUser(u domain.User) Actor {
	return Actor{ID: u.ID, Phone: u.Phone, Roles: u.Roles}
}

// Policy carries the configured super-admin phone. An empty AdminPhone
// means nobody is super-admin.
type Policy struct {
	AdminPhone string
}

// IsAdmin reports whether a is the super-admin. Stored roles do not
// matter; only the configured phone does.
func (p Policy) IsAdmin(a Actor) bool {
	return p.AdminPhone != "" && a.Phone == p.AdminPhone
}

// CanMutate allows the super-admin and the resource's owner. Unowned
// resources are admin-only.
func (p Policy) CanMutate(a Actor, owner string) bool {
	if p.IsAdmin(a) {
		return true
	}
	return owner != "" && a.ID != "" && a.ID == owner
}

// CanApprove is strictly the admin check; owning the resource is not
// enough.
func (p Policy) CanApprove(a Actor) bool {
	return p.IsAdmin(a)
}
