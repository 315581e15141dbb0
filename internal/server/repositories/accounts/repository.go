// Package accounts persists ledger balances in PostgreSQL.
package accounts

import "context"

// Repository reads and writes account balances. Absent accounts hold zero
// lamports.
type Repository interface {
	// Lamports returns the committed balance of address.
	Lamports(ctx context.Context, address string) (uint64, error)

	// LockLamports creates the row if needed, locks it for the rest of the
	// surrounding transaction and returns its balance.
	LockLamports(ctx context.Context, address string) (uint64, error)

	// SetLamports writes the balance of address, creating the row if needed.
	SetLamports(ctx context.Context, address string, lamports uint64) error
}
