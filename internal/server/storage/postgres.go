// Package storage implements ledger.Store on top of PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/accounts"
)

// PostgresStore runs every atomic step in one SERIALIZABLE transaction.
// Every account a step reads is created if missing and locked with
// SELECT ... FOR UPDATE, so concurrent steps touching the same account apply
// one after another. Steps that lose a serialization conflict or a deadlock
// are rerun with backoff.
type PostgresStore struct {
	db       *sql.DB
	accounts func(db dbx.DBTX) accounts.Repository
	retry    dbx.RetryPolicy
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

var _ ledger.Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB, repo func(db dbx.DBTX) accounts.Repository) *PostgresStore {
	return &PostgresStore{db: db, accounts: repo, retry: dbx.DefaultRetryPolicy()}
}

// WithRetryPolicy replaces the policy used to rerun conflicting steps.
func (s *PostgresStore) WithRetryPolicy(p dbx.RetryPolicy) *PostgresStore {
	s.retry = p
	return s
}

func (s *PostgresStore) Lamports(ctx context.Context, addr address.Address) (uint64, error) {
	return s.accounts(s.db).Lamports(ctx, addr.String())
}

func (s *PostgresStore) Atomic(ctx context.Context, fn func(ctx context.Context, accounts ledger.Accounts) error) error {
	return dbx.WithTxRetry(ctx, s.db, serializable, s.retry, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &txAccounts{
			repo:  s.accounts(tx),
			cache: make(map[address.Address]uint64),
		})
	})
}

// txAccounts caches balances read inside one transaction so each row is
// locked once.
type txAccounts struct {
	repo  accounts.Repository
	cache map[address.Address]uint64
}

func (a *txAccounts) Lamports(ctx context.Context, addr address.Address) (uint64, error) {
	if v, ok := a.cache[addr]; ok {
		return v, nil
	}
	v, err := a.repo.LockLamports(ctx, addr.String())
	if err != nil {
		return 0, err
	}
	a.cache[addr] = v
	return v, nil
}

func (a *txAccounts) SetLamports(ctx context.Context, addr address.Address, lamports uint64) error {
	if err := a.repo.SetLamports(ctx, addr.String(), lamports); err != nil {
		if errors.Is(err, accounts.ErrBalanceTooLarge) {
			return ledger.ErrOverflow
		}
		return err
	}
	a.cache[addr] = lamports
	return nil
}
