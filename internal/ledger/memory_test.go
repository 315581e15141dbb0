package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := address.Address{1}

	err := s.Atomic(ctx, func(ctx context.Context, acc Accounts) error {
		return acc.SetLamports(ctx, a, 100)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Atomic(ctx, func(ctx context.Context, acc Accounts) error {
		require.NoError(t, acc.SetLamports(ctx, a, 1))
		v, _ := acc.Lamports(ctx, a)
		assert.Equal(t, uint64(1), v)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := s.Lamports(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), v)
}

func TestMemoryStore_UnknownIsZero(t *testing.T) {
	v, err := NewMemoryStore().Lamports(context.Background(), address.Address{42})
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewMemoryStore().Atomic(ctx, func(context.Context, Accounts) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMemoryStore_Serialized(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := address.Address{1}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Atomic(ctx, func(ctx context.Context, acc Accounts) error {
				v, _ := acc.Lamports(ctx, a)
				return acc.SetLamports(ctx, a, v+1)
			})
		}()
	}
	wg.Wait()

	v, _ := s.Lamports(ctx, a)
	assert.Equal(t, uint64(50), v)
}
