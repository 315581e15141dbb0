package ledger

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/lamportvault/internal/address"
)

// MemoryStore keeps balances in process memory. Atomic steps are serialized
// by a single mutex and staged in an overlay that is merged only on success.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[address.Address]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[address.Address]uint64)}
}

func (s *MemoryStore) Lamports(_ context.Context, addr address.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[addr], nil
}

func (s *MemoryStore) Atomic(ctx context.Context, fn func(ctx context.Context, accounts Accounts) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := &overlay{base: s.balances, staged: make(map[address.Address]uint64)}
	if err := fn(ctx, o); err != nil {
		return err
	}
	for a, v := range o.staged {
		if v == 0 {
			delete(s.balances, a)
			continue
		}
		s.balances[a] = v
	}
	return nil
}

type overlay struct {
	base   map[address.Address]uint64
	staged map[address.Address]uint64
}

func (o *overlay) Lamports(_ context.Context, addr address.Address) (uint64, error) {
	if v, ok := o.staged[addr]; ok {
		return v, nil
	}
	return o.base[addr], nil
}

func (o *overlay) SetLamports(_ context.Context, addr address.Address, lamports uint64) error {
	o.staged[addr] = lamports
	return nil
}
