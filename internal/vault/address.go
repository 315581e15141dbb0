package vault

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/address"
)

// VaultTag is the fixed first seed of every vault address.
const VaultTag = "vault"

var createProgramAddress = address.CreateProgramAddress

// AddressDeriver computes vault addresses under one program id.
type AddressDeriver struct {
	programID address.Address
}

func NewAddressDeriver(programID address.Address) AddressDeriver {
	return AddressDeriver{programID: programID}
}

func (d AddressDeriver) ProgramID() address.Address {
	return d.programID
}

// Seeds returns the derivation inputs for owner at nonce.
func (d AddressDeriver) Seeds(owner address.Address, nonce uint8) [][]byte {
	return [][]byte{[]byte(VaultTag), owner.Bytes(), {nonce}}
}

// Derive searches nonces from 255 down to 0 and returns the first one whose
// address is off the ed25519 curve.
func (d AddressDeriver) Derive(owner address.Address) (address.Address, uint8, error) {
	for n := 255; n >= 0; n-- {
		nonce := uint8(n)
		vault, err := createProgramAddress(d.Seeds(owner, nonce), d.programID)
		if errors.Is(err, address.ErrOnCurve) {
			continue
		}
		if err != nil {
			return address.Address{}, 0, err
		}
		return vault, nonce, nil
	}
	return address.Address{}, 0, Report(KindNoViableNonce, "owner %s", owner)
}

// Verify re-derives the address for owner at nonce and checks it is vault.
func (d AddressDeriver) Verify(owner address.Address, nonce uint8, vault address.Address) error {
	got, err := createProgramAddress(d.Seeds(owner, nonce), d.programID)
	if err != nil {
		return Report(KindSeedsMismatch, "owner %s nonce %d: %v", owner, nonce, err)
	}
	if got != vault {
		return Report(KindSeedsMismatch, "expected %s, got %s", got, vault)
	}
	return nil
}

// DerivedAuthority is the proof a vault presents instead of a signature.
type DerivedAuthority struct {
	Tag   string
	Owner address.Address
	Nonce uint8
}

func (a DerivedAuthority) Seeds() [][]byte {
	return [][]byte{[]byte(a.Tag), a.Owner.Bytes(), {a.Nonce}}
}

func (a DerivedAuthority) String() string {
	return fmt.Sprintf("%s/%s/%d", a.Tag, a.Owner, a.Nonce)
}
