package cryptox

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/filex"
)

const keyFileVersion = 1

var (
	ErrWrongPassphrase = errors.New("wrong passphrase")
	ErrCorruptKeyFile  = errors.New("corrupt key file")
)

// KeyFile is the on-disk envelope of an ed25519 key pair. Only the 32-byte
// seed is encrypted; the address is kept in clear so the wallet can show it
// before unlocking.
type KeyFile struct {
	Version    int             `json:"version"`
	Address    address.Address `json:"address"`
	Salt       []byte          `json:"salt"`
	Verifier   []byte          `json:"verifier"`
	Nonce      []byte          `json:"nonce"`
	Ciphertext []byte          `json:"ciphertext"`
}

// SealKey encrypts key under passphrase.
func SealKey(key ed25519.PrivateKey, passphrase []byte) (*KeyFile, error) {
	salt := common.GenerateRandByteArray(16)
	master := DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(master)

	ciphertext, nonce, err := Seal(key.Seed(), master)
	if err != nil {
		return nil, err
	}

	addr, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}

	return &KeyFile{
		Version:    keyFileVersion,
		Address:    addr,
		Salt:       salt,
		Verifier:   MakeVerifier(master),
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// Unseal decrypts the key pair and checks it matches the recorded address.
func (kf *KeyFile) Unseal(passphrase []byte) (ed25519.PrivateKey, error) {
	if kf.Version != keyFileVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorruptKeyFile, kf.Version)
	}

	master := DeriveMasterKey(passphrase, kf.Salt)
	defer common.WipeByteArray(master)

	if !bytes.Equal(MakeVerifier(master), kf.Verifier) {
		return nil, ErrWrongPassphrase
	}

	seed, err := Open(kf.Ciphertext, kf.Nonce, master)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	defer common.WipeByteArray(seed)
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed is %d bytes", ErrCorruptKeyFile, len(seed))
	}

	key := ed25519.NewKeyFromSeed(seed)
	if address.Address(key.Public().(ed25519.PublicKey)) != kf.Address {
		return nil, fmt.Errorf("%w: address mismatch", ErrCorruptKeyFile)
	}
	return key, nil
}

// WriteKeyFile stores kf at path with owner-only permissions.
func WriteKeyFile(path string, kf *KeyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	if _, err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadKeyFile loads a key file written by WriteKeyFile.
func ReadKeyFile(path string) (*KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kf KeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	return &kf, nil
}
