// Package services contains application services for the wallet CLI.
// This file defines the authentication service: the encrypted key file,
// signed login against the node, liveness probe and logout housekeeping.
package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/cryptox"
)

var (
	ErrKeyFileExists  = errors.New("key file already exists")
	ErrNoKeyFile      = errors.New("no key file, run keygen first")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrNodeNotReached = errors.New("node not reachable")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Keygen: create and seal a new key pair; never overwrites an existing file.
//   - Unlock: open the key file with a passphrase.
//   - OnlineLogin: prove key ownership to the node and remember the owner.
//   - SavedOwner: the last logged-in owner, usable offline.
//   - Logout: drop the session and the remembered owner.
type AuthService interface {
	Keygen(ctx context.Context, passphrase []byte) (address.Address, error)
	Unlock(ctx context.Context, passphrase []byte) (ed25519.PrivateKey, error)
	OnlineLogin(ctx context.Context, key ed25519.PrivateKey) (address.Address, error)
	SavedOwner(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	metadata metadata.Repository
	keyFile  string
	now      func() time.Time
}

// NewAuthService constructs an AuthService bound to the API client, the
// journal metadata and the key file path.
func NewAuthService(c client.Client, meta metadata.Repository, keyFile string) AuthService {
	return &authService{client: c, metadata: meta, keyFile: keyFile, now: time.Now}
}

func (a *authService) Keygen(ctx context.Context, passphrase []byte) (address.Address, error) {
	if _, err := os.Stat(a.keyFile); err == nil {
		return address.Address{}, fmt.Errorf("%w: %s", ErrKeyFileExists, a.keyFile)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return address.Address{}, err
	}
	defer common.WipeByteArray(priv)

	kf, err := cryptox.SealKey(priv, passphrase)
	if err != nil {
		return address.Address{}, fmt.Errorf("seal key: %w", err)
	}
	if err := cryptox.WriteKeyFile(a.keyFile, kf); err != nil {
		return address.Address{}, fmt.Errorf("write key file: %w", err)
	}
	return address.FromPublicKey(pub)
}

func (a *authService) Unlock(ctx context.Context, passphrase []byte) (ed25519.PrivateKey, error) {
	kf, err := cryptox.ReadKeyFile(a.keyFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoKeyFile
		}
		return nil, err
	}
	return kf.Unseal(passphrase)
}

// OnlineLogin signs the login challenge for the current second and opens a
// session. The owner is remembered for offline history.
func (a *authService) OnlineLogin(ctx context.Context, key ed25519.PrivateKey) (address.Address, error) {
	owner, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		return address.Address{}, err
	}

	ts := a.now()
	sig := ed25519.Sign(key, common.LoginChallenge(ts))
	if err := a.client.Login(ctx, owner.String(), ts.Unix(), sig); err != nil {
		return address.Address{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.metadata.SetAddress(ctx, metadata.KeyOwner, owner); err != nil {
		return address.Address{}, fmt.Errorf("offline data saving error: %w", err)
	}
	return owner, nil
}

// SavedOwner returns the remembered owner, or ErrNotLoggedIn.
func (a *authService) SavedOwner(ctx context.Context) (string, error) {
	owner, ok, err := a.metadata.GetAddress(ctx, metadata.KeyOwner)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotLoggedIn
	}
	return owner.String(), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return a.metadata.Delete(ctx, metadata.KeyOwner)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
