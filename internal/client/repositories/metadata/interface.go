// Package metadata remembers wallet settings in the local journal: the last
// logged-in owner and the node's vault program id. Both are addresses, so
// the store is typed accordingly.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/lamportvault/internal/address"
)

// Keys used by the wallet.
const (
	KeyOwner     = "owner"
	KeyProgramID = "program_id"
)

// ProgramIDKey is the key of the program id reported by the node at
// endpoint. Nodes may run the vault under different ids.
func ProgramIDKey(endpoint string) string {
	return KeyProgramID + "@" + endpoint
}

// Repository stores one address per key.
type Repository interface {
	// GetAddress returns the address under key; ok is false when none is set.
	GetAddress(ctx context.Context, key string) (addr address.Address, ok bool, err error)
	// SetAddress inserts or replaces the address under key.
	SetAddress(ctx context.Context, key string, addr address.Address) error
	// Delete forgets key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
