package models

import "time"

// Account is a ledger row: an address and its lamport balance.
type Account struct {
	Address   string
	Lamports  uint64
	UpdatedAt time.Time
}
