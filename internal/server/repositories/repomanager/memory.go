package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/receipts"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/refreshtokens"
)

// MemoryRepositoryManager keeps all state in process memory. Repository
// factories ignore their DBTX argument and WithTx only serializes callers;
// a failing fn does not undo the writes it already made.
type MemoryRepositoryManager struct {
	mu       sync.Mutex
	store    *ledger.MemoryStore
	receipts *receipts.MemoryRepository
	tokens   *refreshtokens.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		store:    ledger.NewMemoryStore(),
		receipts: receipts.NewMemoryRepository(),
		tokens:   refreshtokens.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) DB() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) LedgerStore() ledger.Store { return m.store }

func (m *MemoryRepositoryManager) Receipts(dbx.DBTX) receipts.Repository { return m.receipts }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }

func (m *MemoryRepositoryManager) Close() error { return nil }
