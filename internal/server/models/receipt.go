package models

import "time"

// Receipt statuses.
const (
	ReceiptStatusOK     = "ok"
	ReceiptStatusFailed = "failed"
)

// Receipt is the persisted outcome of a submitted transaction. Failed
// submissions are recorded too, with Status set to ReceiptStatusFailed and
// the error text in Error. A failed transaction may be resubmitted, so one
// TxID can appear on several receipts.
type Receipt struct {
	ID            string    `cbor:"id"`
	TxID          string    `cbor:"tx_id"`
	Signer        string    `cbor:"signer"`
	Instruction   string    `cbor:"instruction"`
	Amount        uint64    `cbor:"amount"`
	Fee           uint64    `cbor:"fee"`
	Status        string    `cbor:"status"`
	Error         string    `cbor:"error,omitempty"`
	Vault         string    `cbor:"vault,omitempty"`
	VaultBalance  uint64    `cbor:"vault_balance"`
	SignerBalance uint64    `cbor:"signer_balance"`
	CreatedAt     time.Time `cbor:"created_at"`
}

// OK reports whether the transaction was applied.
func (r *Receipt) OK() bool {
	return r.Status == ReceiptStatusOK
}
