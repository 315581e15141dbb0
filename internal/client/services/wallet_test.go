package services

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lamportvault/internal/grpcx"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "node-a:50051"

func newWallet(t *testing.T, fc *fakeClient) (*walletService, *client.Repositories) {
	t.Helper()
	repos := setupRepos(t)
	return walletOn(repos, fc, testEndpoint), repos
}

func walletOn(repos *client.Repositories, fc *fakeClient, endpoint string) *walletService {
	w := NewWalletService(fc, repos.Metadata, repos.Receipts, endpoint).(*walletService)
	w.now = func() time.Time { return time.Unix(1700000000, 0) }
	return w
}

// brokenMetadata fails every read.
type brokenMetadata struct {
	metadata.Repository
}

func (brokenMetadata) GetAddress(context.Context, string) (address.Address, bool, error) {
	return address.Address{}, false, errors.New("disk I/O error")
}

func ownerOf(t *testing.T, key ed25519.PrivateKey) address.Address {
	t.Helper()
	a, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	return a
}

func TestProgramID_CachedInJournal(t *testing.T) {
	fc := &fakeClient{}
	w, repos := newWallet(t, fc)
	ctx := context.Background()

	id, err := w.ProgramID(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, id)

	fc.InfoErr = client.ErrUnavailable
	id, err = w.ProgramID(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, id)
	assert.Equal(t, 1, fc.InfoCalls)

	v, ok, err := repos.Metadata.GetAddress(ctx, metadata.ProgramIDKey(testEndpoint))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, testProgramID, v)
}

func TestProgramID_CachedPerEndpoint(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	otherID := address.MustParse("11111111111111111111111111111112")

	a := walletOn(repos, &fakeClient{}, "node-a:50051")
	id, err := a.ProgramID(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, id)

	fb := &fakeClient{InfoProgramID: otherID}
	b := walletOn(repos, fb, "node-b:50051")
	id, err = b.ProgramID(ctx)
	require.NoError(t, err)
	assert.Equal(t, otherID, id, "another node is asked, not served the first node's id")
	assert.Equal(t, 1, fb.InfoCalls)

	offlineA := walletOn(repos, &fakeClient{InfoErr: client.ErrUnavailable}, "node-a:50051")
	id, err = offlineA.ProgramID(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, id)
}

func TestProgramID_UnreadableCacheAsksNode(t *testing.T) {
	repos := setupRepos(t)
	fc := &fakeClient{}
	w := NewWalletService(fc, brokenMetadata{repos.Metadata}, repos.Receipts, testEndpoint)

	id, err := w.ProgramID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProgramID, id)
	assert.Equal(t, 1, fc.InfoCalls)
}

func TestProgramID_Unavailable(t *testing.T) {
	w, _ := newWallet(t, &fakeClient{InfoErr: client.ErrUnavailable})
	_, err := w.ProgramID(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestVaultOfAndBalances(t *testing.T) {
	key := testKey(5)
	owner := ownerOf(t, key)
	want, nonce, err := vault.NewAddressDeriver(testProgramID).Derive(owner)
	require.NoError(t, err)

	fc := &fakeClient{Balances: map[string]uint64{owner.String(): 10, want.String(): 20}}
	w, _ := newWallet(t, fc)
	ctx := context.Background()

	v, n, err := w.VaultOf(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, want, v)
	assert.Equal(t, nonce, n)

	b, err := w.Balances(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, &Balances{Owner: owner, Vault: want, OwnerLamports: 10, VaultLamports: 20}, b)
}

func TestDeposit_SignsAndJournals(t *testing.T) {
	key := testKey(6)
	owner := ownerOf(t, key)
	fc := &fakeClient{}
	fc.SubmitFn = func(tx *ledger.Transaction) (*models.Receipt, error) {
		op, amount, err := vault.DecodeInstruction(tx.Instruction.Data)
		require.NoError(t, err)
		assert.Equal(t, vault.OpDeposit, op)
		assert.Equal(t, uint64(1_000_000_000), amount)
		assert.Equal(t, owner, tx.Signer)
		return &models.Receipt{
			ID: "r1", TxID: tx.ID.String(), Signer: owner.String(), Instruction: "deposit", Amount: amount,
			Fee: 5000, Status: models.ReceiptStatusOK, Vault: tx.Instruction.Accounts[1].Address.String(),
			VaultBalance: amount, CreatedAt: time.Unix(1700000000, 0).UTC(),
		}, nil
	}
	w, repos := newWallet(t, fc)
	ctx := context.Background()

	rc, err := w.Deposit(ctx, key, 1_000_000_000)
	require.NoError(t, err)
	assert.True(t, rc.OK())

	list, err := repos.Receipts.ListBySigner(ctx, owner.String(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rc, list[0])
}

func TestWithdraw_FailureJournaledWithNodeReceiptID(t *testing.T) {
	key := testKey(7)
	owner := ownerOf(t, key)
	statusErr := grpcx.ToStatus(vault.Report(vault.KindVaultAlreadyInUse, "balance 0"), "receipt_id", "node-rid")
	fc := &fakeClient{SubmitFn: func(tx *ledger.Transaction) (*models.Receipt, error) {
		op, _, err := vault.DecodeInstruction(tx.Instruction.Data)
		require.NoError(t, err)
		assert.Equal(t, vault.OpWithdraw, op)
		return nil, grpcx.FromStatus(statusErr)
	}}
	w, repos := newWallet(t, fc)
	ctx := context.Background()

	rc, err := w.Withdraw(ctx, key)
	require.Error(t, err)
	assert.ErrorIs(t, err, vault.ErrVaultAlreadyInUse)
	require.NotNil(t, rc)
	assert.Equal(t, "node-rid", rc.ID)
	assert.Equal(t, fc.LastTx.ID.String(), rc.TxID)

	list, err := repos.Receipts.ListBySigner(ctx, owner.String(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].OK())
	assert.Equal(t, "withdraw", list[0].Instruction)
}

func TestSubmit_UnrecordedErrorNotJournaled(t *testing.T) {
	key := testKey(8)
	fc := &fakeClient{SubmitFn: func(*ledger.Transaction) (*models.Receipt, error) {
		return nil, client.ErrUnavailable
	}}
	w, repos := newWallet(t, fc)
	ctx := context.Background()

	rc, err := w.Deposit(ctx, key, 1)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, rc)

	list, err := repos.Receipts.ListBySigner(ctx, ownerOf(t, key).String(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHistory_OnlineRefreshesJournal_OfflineReadsIt(t *testing.T) {
	fc := &fakeClient{ListRet: []*models.Receipt{
		{ID: "2", Signer: "alice", Status: "ok", CreatedAt: time.Unix(1700000060, 0).UTC()},
		{ID: "1", Signer: "alice", Status: "failed", CreatedAt: time.Unix(1700000000, 0).UTC()},
	}}
	w, _ := newWallet(t, fc)
	ctx := context.Background()

	online, err := w.History(ctx, "alice", 10, true)
	require.NoError(t, err)
	assert.Len(t, online, 2)

	fc.ListErr = errors.New("must not be called")
	offline, err := w.History(ctx, "alice", 10, false)
	require.NoError(t, err)
	require.Len(t, offline, 2)
	assert.Equal(t, "2", offline[0].ID)
}

func TestAirdrop(t *testing.T) {
	w, _ := newWallet(t, &fakeClient{})
	bal, err := w.Airdrop(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), bal)
}
