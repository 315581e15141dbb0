// Package models defines client-side data models used by the wallet CLI.
package models

import "time"

const (
	ReceiptStatusOK     = "ok"
	ReceiptStatusFailed = "failed"
)

// Receipt is a journal entry for one submitted transaction, as reported by
// the node. Amounts are lamports.
type Receipt struct {
	ID            string
	TxID          string
	Signer        string
	Instruction   string
	Amount        uint64
	Fee           uint64
	Status        string
	Error         string
	Vault         string
	VaultBalance  uint64
	SignerBalance uint64
	CreatedAt     time.Time
}

func (r *Receipt) OK() bool {
	return r.Status == ReceiptStatusOK
}
