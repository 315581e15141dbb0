package services

import (
	"context"
	"crypto/ed25519"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/stretchr/testify/require"
)

var testProgramID = address.MustParse("8ZYbvge282tfWmbg5MtDaWTicbbj46zDT8HKynnvC9Qn")

func setupRepos(t *testing.T) *client.Repositories {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return client.NewRepositories(db)
}

func testKey(seed byte) ed25519.PrivateKey {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = seed
	}
	return ed25519.NewKeyFromSeed(s)
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	PingErr  error
	CloseErr error

	InfoCalls     int
	InfoErr       error
	InfoProgramID address.Address

	LoginErr       error
	LastLoginOwner string
	LastLoginTS    int64
	LastLoginSig   []byte
	LoggedOut      bool

	Balances map[string]uint64

	AirdropErr error

	SubmitFn func(tx *ledger.Transaction) (*models.Receipt, error)
	LastTx   *ledger.Transaction

	ListRet []*models.Receipt
	ListErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { return f.CloseErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) ProgramInfo(ctx context.Context) (*models.ProgramInfo, error) {
	f.InfoCalls++
	if f.InfoErr != nil {
		return nil, f.InfoErr
	}
	id := testProgramID
	if !f.InfoProgramID.IsZero() {
		id = f.InfoProgramID
	}
	return &models.ProgramInfo{ProgramID: id.String(), LamportsPerSignature: 5000}, nil
}

func (f *fakeClient) Login(ctx context.Context, owner string, ts int64, sig []byte) error {
	f.LastLoginOwner, f.LastLoginTS, f.LastLoginSig = owner, ts, sig
	return f.LoginErr
}

func (f *fakeClient) Logout() { f.LoggedOut = true }

func (f *fakeClient) DeriveVault(ctx context.Context, owner string) (string, uint8, error) {
	return "", 0, nil
}

func (f *fakeClient) Balance(ctx context.Context, addr string) (uint64, error) {
	return f.Balances[addr], nil
}

func (f *fakeClient) Airdrop(ctx context.Context, lamports uint64) (uint64, error) {
	return lamports, f.AirdropErr
}

func (f *fakeClient) SubmitTransaction(ctx context.Context, raw []byte) (*models.Receipt, error) {
	var tx ledger.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	if err := tx.VerifySignature(); err != nil {
		return nil, err
	}
	f.LastTx = &tx
	return f.SubmitFn(&tx)
}

func (f *fakeClient) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	return f.ListRet, f.ListErr
}
