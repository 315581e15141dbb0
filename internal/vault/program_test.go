package vault

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fee = ledger.DefaultLamportsPerSignature

type harness struct {
	t  *testing.T
	rt *ledger.Runtime
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := ledger.DefaultConfig()
	rt := ledger.NewRuntime(ledger.NewMemoryStore(), cfg, logging.Nop{}, NewProgram(testProgramID, logging.Nop{}))
	return &harness{t: t, rt: rt}
}

func (h *harness) submit(priv ed25519.PrivateKey, ix ledger.Instruction) (*ledger.Receipt, error) {
	h.t.Helper()
	signer := address.Address(priv.Public().(ed25519.PublicKey))
	tx := ledger.NewTransaction(signer, ix, time.Now())
	require.NoError(h.t, tx.Sign(priv))
	return h.rt.Execute(context.Background(), tx)
}

func (h *harness) deposit(priv ed25519.PrivateKey, amount uint64) error {
	h.t.Helper()
	owner := address.Address(priv.Public().(ed25519.PublicKey))
	ix, err := NewDepositInstruction(testProgramID, owner, amount)
	require.NoError(h.t, err)
	_, err = h.submit(priv, ix)
	return err
}

func (h *harness) withdraw(priv ed25519.PrivateKey) error {
	h.t.Helper()
	owner := address.Address(priv.Public().(ed25519.PublicKey))
	ix, err := NewWithdrawInstruction(testProgramID, owner)
	require.NoError(h.t, err)
	_, err = h.submit(priv, ix)
	return err
}

func (h *harness) balance(a address.Address) uint64 {
	h.t.Helper()
	v, err := h.rt.Balance(context.Background(), a)
	require.NoError(h.t, err)
	return v
}

func TestProgram_DepositWithdrawLifecycle(t *testing.T) {
	h := newHarness(t)
	priv, owner := ownerKey(1)
	vault, _, err := NewAddressDeriver(testProgramID).Derive(owner)
	require.NoError(t, err)

	_, err = h.rt.Airdrop(context.Background(), owner, 10_000_000)
	require.NoError(t, err)

	// EMPTY -> FUNDED
	require.NoError(t, h.deposit(priv, 1_000_000))
	assert.Equal(t, uint64(1_000_000), h.balance(vault))
	assert.Equal(t, uint64(10_000_000-1_000_000-fee), h.balance(owner))

	// a funded vault rejects a second deposit and the fee is not charged
	err = h.deposit(priv, 1_000_000)
	assert.ErrorIs(t, err, ErrVaultAlreadyInUse)
	assert.Equal(t, uint64(10_000_000-1_000_000-fee), h.balance(owner))

	// FUNDED -> EMPTY
	require.NoError(t, h.withdraw(priv))
	assert.Zero(t, h.balance(vault))
	assert.Equal(t, uint64(10_000_000-2*fee), h.balance(owner))

	err = h.deposit(priv, 500)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// the vault can be reused
	require.NoError(t, h.deposit(priv, 2_000_000))
	assert.Equal(t, uint64(2_000_000), h.balance(vault))
}

func TestProgram_WithdrawEmptyVault(t *testing.T) {
	h := newHarness(t)
	priv, owner := ownerKey(1)
	_, err := h.rt.Airdrop(context.Background(), owner, 100_000)
	require.NoError(t, err)

	require.NoError(t, h.withdraw(priv))
	assert.Equal(t, uint64(100_000-fee), h.balance(owner))
}

func TestProgram_DepositInsufficientFunds(t *testing.T) {
	h := newHarness(t)
	priv, owner := ownerKey(1)
	_, err := h.rt.Airdrop(context.Background(), owner, 900_000)
	require.NoError(t, err)

	err = h.deposit(priv, 899_000)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, uint64(900_000), h.balance(owner))
}

func TestProgram_RejectsForeignVault(t *testing.T) {
	h := newHarness(t)
	victimPriv, victim := ownerKey(1)
	thiefPriv, thief := ownerKey(2)
	ctx := context.Background()
	_, _ = h.rt.Airdrop(ctx, victim, 10_000_000)
	_, _ = h.rt.Airdrop(ctx, thief, 10_000_000)

	require.NoError(t, h.deposit(victimPriv, 1_000_000))
	victimVault, _, err := NewAddressDeriver(testProgramID).Derive(victim)
	require.NoError(t, err)

	ix := ledger.Instruction{
		ProgramID: testProgramID,
		Accounts:  vaultAccounts(thief, victimVault),
		Data:      EncodeWithdraw(),
	}
	_, err = h.submit(thiefPriv, ix)
	assert.ErrorIs(t, err, ErrSeedsMismatch)
	assert.Equal(t, uint64(1_000_000), h.balance(victimVault))

	ix.Data = EncodeDeposit(1_000_000)
	_, err = h.submit(thiefPriv, ix)
	assert.ErrorIs(t, err, ErrSeedsMismatch)
}

func TestProgram_DistinctOwnersIndependent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a, aOwner := ownerKey(1)
	b, bOwner := ownerKey(2)
	_, _ = h.rt.Airdrop(ctx, aOwner, 10_000_000)
	_, _ = h.rt.Airdrop(ctx, bOwner, 10_000_000)

	require.NoError(t, h.deposit(a, 1_000_000))
	require.NoError(t, h.deposit(b, 3_000_000))
	require.NoError(t, h.withdraw(a))

	d := NewAddressDeriver(testProgramID)
	av, _, _ := d.Derive(aOwner)
	bv, _, _ := d.Derive(bOwner)
	assert.Zero(t, h.balance(av))
	assert.Equal(t, uint64(3_000_000), h.balance(bv))
}

func TestProgram_AccountValidation(t *testing.T) {
	h := newHarness(t)
	priv, owner := ownerKey(1)
	_, _ = h.rt.Airdrop(context.Background(), owner, 10_000_000)
	v, _, err := NewAddressDeriver(testProgramID).Derive(owner)
	require.NoError(t, err)

	tests := []struct {
		name    string
		metas   []ledger.AccountMeta
		wantErr error
	}{
		{"too few", vaultAccounts(owner, v)[:2], ledger.ErrNotEnoughAccounts},
		{"owner not signer", []ledger.AccountMeta{
			{Address: owner, IsWritable: true},
			{Address: v, IsWritable: true},
			{Address: ledger.SystemProgramID},
		}, ledger.ErrMissingSignature},
		{"vault readonly", []ledger.AccountMeta{
			{Address: owner, IsSigner: true, IsWritable: true},
			{Address: v},
			{Address: ledger.SystemProgramID},
		}, ledger.ErrAccountNotWritable},
		{"wrong system program", []ledger.AccountMeta{
			{Address: owner, IsSigner: true, IsWritable: true},
			{Address: v, IsWritable: true},
			{Address: address.Address{1}},
		}, ledger.ErrInvalidAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := ledger.Instruction{ProgramID: testProgramID, Accounts: tt.metas, Data: EncodeDeposit(1_000_000)}
			_, err := h.submit(priv, ix)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProgram_ReceiptBalances(t *testing.T) {
	h := newHarness(t)
	priv, owner := ownerKey(1)
	_, _ = h.rt.Airdrop(context.Background(), owner, 10_000_000)
	v, _, _ := NewAddressDeriver(testProgramID).Derive(owner)

	ix, err := NewDepositInstruction(testProgramID, owner, 1_000_000)
	require.NoError(t, err)
	rcpt, err := h.submit(priv, ix)
	require.NoError(t, err)

	got, ok := rcpt.BalanceOf(v)
	require.True(t, ok)
	assert.Equal(t, uint64(1_000_000), got)
	assert.Equal(t, fee, rcpt.Fee)
}
