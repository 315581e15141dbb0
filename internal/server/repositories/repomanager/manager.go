// Package repomanager selects the persistence backend of the server and vends
// repositories bound to it.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/receipts"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// DB is the non-transactional handle passed to repository factories.
	DB() dbx.DBTX
	// WithTx runs fn in a single transaction of the backend.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	// LedgerStore returns the balance store the ledger runtime executes on.
	LedgerStore() ledger.Store
	Receipts(db dbx.DBTX) receipts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Close() error
}
