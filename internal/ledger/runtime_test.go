package ledger

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = address.Address{0xAB, 0xCD}

// fakeProgram runs fn for every instruction.
type fakeProgram struct {
	fn func(ctx context.Context, bank Bank, ix Instruction) error
}

func (p *fakeProgram) ID() address.Address { return testProgramID }

func (p *fakeProgram) Process(ctx context.Context, bank Bank, ix Instruction) error {
	return p.fn(ctx, bank, ix)
}

func derivedFor(t *testing.T, tag string) (address.Address, [][]byte) {
	t.Helper()
	for n := 255; n >= 0; n-- {
		seeds := [][]byte{[]byte(tag), {byte(n)}}
		a, err := address.CreateProgramAddress(seeds, testProgramID)
		if err == nil {
			return a, seeds
		}
	}
	t.Fatal("no off-curve address")
	return address.Address{}, nil
}

func amount(ix Instruction) uint64 {
	return binary.LittleEndian.Uint64(ix.Data)
}

func newTestRuntime(t *testing.T, fn func(ctx context.Context, bank Bank, ix Instruction) error) (*Runtime, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	rt := NewRuntime(store, DefaultConfig(), logging.Nop{}, &fakeProgram{fn: fn})
	return rt, store
}

func signedTx(t *testing.T, rt *Runtime, metas []AccountMeta, lamports uint64) *Transaction {
	t.Helper()
	priv, signer := testKey(1)
	data := binary.LittleEndian.AppendUint64(nil, lamports)
	tx := NewTransaction(signer, Instruction{ProgramID: testProgramID, Accounts: metas, Data: data}, rt.now())
	require.NoError(t, tx.Sign(priv))
	return tx
}

func TestRuntime_TransferChargesFee(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	dest := address.Address{5}

	rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
		return bank.Transfer(ctx, ix.Accounts[0].Address, ix.Accounts[1].Address, amount(ix))
	})
	_, err := rt.Airdrop(ctx, signer, 1_000_000)
	require.NoError(t, err)

	metas := []AccountMeta{
		{Address: signer, IsSigner: true, IsWritable: true},
		{Address: dest, IsWritable: true},
	}
	rcpt, err := rt.Execute(ctx, signedTx(t, rt, metas, 100_000))
	require.NoError(t, err)

	assert.Equal(t, uint64(5000), rcpt.Fee)
	got, _ := rcpt.BalanceOf(signer)
	assert.Equal(t, uint64(1_000_000-5000-100_000), got)
	got, _ = rcpt.BalanceOf(dest)
	assert.Equal(t, uint64(100_000), got)
	assert.Equal(t, []Movement{{From: signer, To: dest, Lamports: 100_000}}, rcpt.Movements)

	bal, err := rt.Balance(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), bal)
}

func TestRuntime_FailureRollsBackFee(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	dest := address.Address{5}

	rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
		return bank.Transfer(ctx, ix.Accounts[0].Address, ix.Accounts[1].Address, amount(ix))
	})
	_, err := rt.Airdrop(ctx, signer, 10_000)
	require.NoError(t, err)

	metas := []AccountMeta{
		{Address: signer, IsSigner: true, IsWritable: true},
		{Address: dest, IsWritable: true},
	}
	_, err = rt.Execute(ctx, signedTx(t, rt, metas, 9_000))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	bal, _ := rt.Balance(ctx, signer)
	assert.Equal(t, uint64(10_000), bal)
	bal, _ = rt.Balance(ctx, dest)
	assert.Zero(t, bal)
}

func TestRuntime_InsufficientForFee(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })

	metas := []AccountMeta{{Address: signer, IsSigner: true, IsWritable: true}}
	_, err := rt.Execute(ctx, signedTx(t, rt, metas, 0))
	assert.ErrorIs(t, err, ErrInsufficientFundsForFee)
}

func TestRuntime_TransferSigned(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	pda, seeds := derivedFor(t, "t")

	rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
		return bank.TransferSigned(ctx, ix.Accounts[1].Address, ix.Accounts[0].Address, amount(ix), seeds)
	})
	_, err := rt.Airdrop(ctx, signer, 10_000)
	require.NoError(t, err)
	_, err = rt.Airdrop(ctx, pda, 3_000)
	require.NoError(t, err)

	metas := []AccountMeta{
		{Address: signer, IsSigner: true, IsWritable: true},
		{Address: pda, IsWritable: true},
	}
	_, err = rt.Execute(ctx, signedTx(t, rt, metas, 3_000))
	require.NoError(t, err)

	bal, _ := rt.Balance(ctx, pda)
	assert.Zero(t, bal)
	bal, _ = rt.Balance(ctx, signer)
	assert.Equal(t, uint64(10_000-5000+3_000), bal)
}

func TestRuntime_TransferSignedWrongSeeds(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	pda, _ := derivedFor(t, "t")
	_, otherSeeds := derivedFor(t, "u")

	rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
		return bank.TransferSigned(ctx, ix.Accounts[1].Address, ix.Accounts[0].Address, 1, otherSeeds)
	})
	_, _ = rt.Airdrop(ctx, signer, 10_000)
	_, _ = rt.Airdrop(ctx, pda, 10)

	metas := []AccountMeta{
		{Address: signer, IsSigner: true, IsWritable: true},
		{Address: pda, IsWritable: true},
	}
	_, err := rt.Execute(ctx, signedTx(t, rt, metas, 1))
	assert.ErrorIs(t, err, ErrAuthorityMismatch)
}

func TestRuntime_TransferRequiresSignerAndWritable(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	other := address.Address{5}

	t.Run("unsigned source", func(t *testing.T) {
		rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
			return bank.Transfer(ctx, other, signer, 1)
		})
		_, _ = rt.Airdrop(ctx, signer, 10_000)
		_, _ = rt.Airdrop(ctx, other, 10)
		metas := []AccountMeta{
			{Address: signer, IsSigner: true, IsWritable: true},
			{Address: other, IsWritable: true},
		}
		_, err := rt.Execute(ctx, signedTx(t, rt, metas, 1))
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("readonly destination", func(t *testing.T) {
		rt, _ := newTestRuntime(t, func(ctx context.Context, bank Bank, ix Instruction) error {
			return bank.Transfer(ctx, signer, other, 1)
		})
		_, _ = rt.Airdrop(ctx, signer, 10_000)
		metas := []AccountMeta{
			{Address: signer, IsSigner: true, IsWritable: true},
			{Address: other},
		}
		_, err := rt.Execute(ctx, signedTx(t, rt, metas, 1))
		assert.ErrorIs(t, err, ErrAccountNotWritable)
	})
}

func TestRuntime_RejectsForeignSignerMeta(t *testing.T) {
	ctx := context.Background()
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })
	_, signer := testKey(1)
	_, _ = rt.Airdrop(ctx, signer, 10_000)

	metas := []AccountMeta{
		{Address: signer, IsSigner: true, IsWritable: true},
		{Address: address.Address{3}, IsSigner: true},
	}
	_, err := rt.Execute(ctx, signedTx(t, rt, metas, 0))
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestRuntime_UnknownProgram(t *testing.T) {
	ctx := context.Background()
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })
	priv, signer := testKey(1)
	tx := NewTransaction(signer, Instruction{ProgramID: address.Address{1}}, rt.now())
	require.NoError(t, tx.Sign(priv))

	_, err := rt.Execute(ctx, tx)
	assert.ErrorIs(t, err, ErrUnknownProgram)
}

func TestRuntime_ExpiredAndDuplicate(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })
	_, _ = rt.Airdrop(ctx, signer, 100_000)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rt.now = func() time.Time { return base }

	metas := []AccountMeta{{Address: signer, IsSigner: true, IsWritable: true}}
	tx := signedTx(t, rt, metas, 0)

	_, err := rt.Execute(ctx, tx)
	require.NoError(t, err)
	_, err = rt.Execute(ctx, tx)
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	rt.now = func() time.Time { return base.Add(3 * time.Minute) }
	_, err = rt.Execute(ctx, signedTx(t, rt, metas, 0))
	require.NoError(t, err)
	_, err = rt.Execute(ctx, tx)
	assert.ErrorIs(t, err, ErrTransactionExpired)
}

func TestRuntime_ZeroMaxAgeKeepsReplayWindow(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	cfg := DefaultConfig()
	cfg.MaxAge = 0
	rt := NewRuntime(NewMemoryStore(), cfg, logging.Nop{}, &fakeProgram{fn: func(context.Context, Bank, Instruction) error { return nil }})
	_, _ = rt.Airdrop(ctx, signer, 100_000)
	assert.Equal(t, DefaultMaxAge, rt.cfg.MaxAge)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rt.now = func() time.Time { return base }
	metas := []AccountMeta{{Address: signer, IsSigner: true, IsWritable: true}}
	_, err := rt.Execute(ctx, signedTx(t, rt, metas, 0))
	require.NoError(t, err)

	stale := signedTx(t, rt, metas, 0)
	rt.now = func() time.Time { return base.Add(time.Hour) }
	_, err = rt.Execute(ctx, stale)
	assert.ErrorIs(t, err, ErrTransactionExpired)

	_, err = rt.Execute(ctx, signedTx(t, rt, metas, 0))
	require.NoError(t, err)
	assert.Len(t, rt.seen, 1, "ids past the window are forgotten")
}

func TestRuntime_FailedTransactionCanBeRetried(t *testing.T) {
	ctx := context.Background()
	_, signer := testKey(1)
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })

	metas := []AccountMeta{{Address: signer, IsSigner: true, IsWritable: true}}
	tx := signedTx(t, rt, metas, 0)
	_, err := rt.Execute(ctx, tx)
	assert.ErrorIs(t, err, ErrInsufficientFundsForFee)

	_, _ = rt.Airdrop(ctx, signer, 5000)
	_, err = rt.Execute(ctx, tx)
	assert.NoError(t, err)
}

func TestRuntime_AirdropOverflow(t *testing.T) {
	ctx := context.Background()
	rt, _ := newTestRuntime(t, func(context.Context, Bank, Instruction) error { return nil })
	a := address.Address{1}
	_, err := rt.Airdrop(ctx, a, ^uint64(0))
	require.NoError(t, err)
	_, err = rt.Airdrop(ctx, a, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestRuntime_Accessors(t *testing.T) {
	rt, _ := newTestRuntime(t, nil)
	assert.Equal(t, DefaultRent(), rt.Rent())
	assert.Equal(t, DefaultLamportsPerSignature, rt.LamportsPerSignature())
}
