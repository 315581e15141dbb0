package cli

import (
	"bufio"
	"bytes"
	"context"
	"crypto/ed25519"
	"io"
	"testing"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/client/services"
)

func testKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{7}, ed25519.SeedSize))
}

func ownerOf(t *testing.T, key ed25519.PrivateKey) address.Address {
	t.Helper()
	a, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ io.Writer) ([]byte, error) {
		pw := []byte(pws[i%len(pws)])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// stubAnswer makes getSimpleText return answer.
func stubAnswer(t *testing.T, answer string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return answer, nil }
	t.Cleanup(func() { getSimpleText = orig })
}

type fakeAuth struct {
	keygenAddr address.Address
	keygenPass string
	keygenErr  error

	unlockKey  ed25519.PrivateKey
	unlockPass string
	unlockErr  error

	onlineErr error
	onlineKey ed25519.PrivateKey

	pingErr     error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuth) Keygen(_ context.Context, pass []byte) (address.Address, error) {
	f.keygenPass = string(pass)
	return f.keygenAddr, f.keygenErr
}
func (f *fakeAuth) Unlock(_ context.Context, pass []byte) (ed25519.PrivateKey, error) {
	f.unlockPass = string(pass)
	return f.unlockKey, f.unlockErr
}
func (f *fakeAuth) OnlineLogin(_ context.Context, key ed25519.PrivateKey) (address.Address, error) {
	f.onlineKey = key
	if f.onlineErr != nil {
		return address.Address{}, f.onlineErr
	}
	return address.FromPublicKey(key.Public().(ed25519.PublicKey))
}
func (f *fakeAuth) SavedOwner(context.Context) (string, error) { return "", nil }
func (f *fakeAuth) Ping(context.Context) error                 { return f.pingErr }
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}
func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeWallet struct {
	vault    address.Address
	nonce    uint8
	balances *services.Balances
	err      error

	airdropped uint64
	deposited  uint64
	withdrawn  bool
	receipt    *models.Receipt

	history       []*models.Receipt
	historyErr    error
	historyOnline []bool
	historyLimit  int
}

func (f *fakeWallet) ProgramID(context.Context) (address.Address, error) {
	return address.Address{}, f.err
}
func (f *fakeWallet) VaultOf(context.Context, address.Address) (address.Address, uint8, error) {
	return f.vault, f.nonce, f.err
}
func (f *fakeWallet) Balances(context.Context, address.Address) (*services.Balances, error) {
	return f.balances, f.err
}
func (f *fakeWallet) Airdrop(_ context.Context, lamports uint64) (uint64, error) {
	f.airdropped = lamports
	return lamports, f.err
}
func (f *fakeWallet) Deposit(_ context.Context, _ ed25519.PrivateKey, lamports uint64) (*models.Receipt, error) {
	f.deposited = lamports
	return f.receipt, f.err
}
func (f *fakeWallet) Withdraw(context.Context, ed25519.PrivateKey) (*models.Receipt, error) {
	f.withdrawn = true
	return f.receipt, f.err
}
func (f *fakeWallet) History(_ context.Context, _ string, limit int, online bool) ([]*models.Receipt, error) {
	f.historyLimit = limit
	f.historyOnline = append(f.historyOnline, online)
	if online && f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

// newTestApp returns an App wired to fakes and writing to a buffer.
func newTestApp(fa *fakeAuth, fw *fakeWallet) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: fa, walletService: fw, out: &out}, &out
}

func loggedIn(t *testing.T, a *App, mode Mode) {
	t.Helper()
	a.key = testKey()
	a.owner = ownerOf(t, a.key).String()
	a.Mode = mode
}
