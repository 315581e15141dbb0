// Package address defines the 32-byte account addresses used by the ledger,
// their base58 text form, and the program-derived address primitive.
//
// A program-derived address is a SHA-256 digest of seeds, a program id and a
// fixed marker that does not decode to a point on the ed25519 curve. Nobody can
// hold a private key for it, so only the program it was derived under can
// authorize debits from it.
package address

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const (
	// Size is the length of an address in bytes.
	Size = 32
	// MaxSeeds is the maximum number of seeds (including the nonce) accepted
	// by CreateProgramAddress.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

var pdaMarker = []byte("ProgramDerivedAddress")

var (
	ErrInvalidLength         = errors.New("invalid address length")
	ErrInvalidEncoding       = errors.New("invalid address encoding")
	ErrMaxSeedsExceeded      = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("seed too long")
	// ErrOnCurve is returned when the derived candidate is a valid ed25519
	// point and therefore cannot be used as a key-less address.
	ErrOnCurve = errors.New("derived address is on the ed25519 curve")
)

// Address is a ledger account address: an ed25519 public key for ordinary
// accounts, or an off-curve digest for program-derived ones.
type Address [Size]byte

// FromBytes copies b into an Address.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// FromPublicKey returns the address of an ed25519 public key.
func FromPublicKey(pub ed25519.PublicKey) (Address, error) {
	return FromBytes(pub)
}

// Parse decodes a base58 address.
func Parse(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return FromBytes(b)
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Equal(other Address) bool {
	return bytes.Equal(a[:], other[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// PublicKey returns the address as an ed25519 public key.
func (a Address) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(a.Bytes())
}

// IsOnCurve reports whether b decodes to a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != Size {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress computes sha256(seeds... || programID || marker) and
// returns it if it lies off the curve. The result depends only on its inputs.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, ErrMaxSeedsExceeded
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Address{}, ErrMaxSeedLengthExceeded
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	var candidate Address
	copy(candidate[:], h.Sum(nil))

	if IsOnCurve(candidate[:]) {
		return Address{}, ErrOnCurve
	}
	return candidate, nil
}
