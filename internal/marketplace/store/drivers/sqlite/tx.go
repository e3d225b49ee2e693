package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/estate/internal/marketplace/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                         { return nil }
func (t *txStore) Ping(context.Context) error           { return nil }
func (t *txStore) ApplyMigrations() error               { return nil }
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users             { return &usersRepo{db: t.tx} }
func (t *txStore) Properties() store.Properties   { return &propertiesRepo{db: t.tx} }
func (t *txStore) Agents() store.Agents           { return &agentsRepo{db: t.tx} }
func (t *txStore) Consultants() store.Consultants { return &consultantsRepo{db: t.tx} }
func (t *txStore) Payments() store.Payments       { return &paymentsRepo{db: t.tx} }
