package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers expose one repository
// per resource; a Tx exposes the same repositories bound to a transaction
// and refuses to nest.
type Store interface {
	Users() Users
	Properties() Properties
	Agents() Agents
	Consultants() Consultants
	Payments() Payments

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or
	// Rollback the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByPhone looks up by normalised phone, deleted or not.
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// CreateUser inserts u. A phone already on file is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites roles, flags, timestamps and the refresh
	// fingerprint. Phone and created_at never change.
	UpdateUser(ctx context.Context, u domain.User) error

	// ListUsers returns every user, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Properties interface {
	CreateProperty(ctx context.Context, p domain.Property) error
	GetProperty(ctx context.Context, id string) (domain.Property, error)

	// FindDuplicate returns the owner's listing matching key, if any.
	FindDuplicate(ctx context.Context, key domain.DuplicateKey) (domain.Property, error)

	ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error)
	UpdateProperty(ctx context.Context, p domain.Property) error

	// IncrementViews bumps views_count by one without touching updated_at.
	IncrementViews(ctx context.Context, id string) error

	DeleteProperty(ctx context.Context, id string) error
}

type Agents interface {
	CreateAgent(ctx context.Context, a domain.Agent) error
	GetAgent(ctx context.Context, id string) (domain.Agent, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	UpdateAgent(ctx context.Context, a domain.Agent) error
	DeleteAgent(ctx context.Context, id string) error
}

type Consultants interface {
	// CreateConsultant inserts c. A (name, phone) pair already on file is
	// ErrAlreadyExists.
	CreateConsultant(ctx context.Context, c domain.Consultant) error
	GetConsultant(ctx context.Context, id string) (domain.Consultant, error)

	// ListConsultants returns newest first, optionally narrowed to
	// locations containing location, case-insensitively.
	ListConsultants(ctx context.Context, location string) ([]domain.Consultant, error)

	UpdateConsultant(ctx context.Context, c domain.Consultant) error
	DeleteConsultant(ctx context.Context, id string) error
}

type Payments interface {
	CreatePayment(ctx context.Context, p domain.Payment) error
	GetPaymentByOrderID(ctx context.Context, orderID string) (domain.Payment, error)
	UpdatePayment(ctx context.Context, p domain.Payment) error
}
