package ledger

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/google/uuid"
)

// SystemProgramID is the address of the built-in program that owns plain
// lamport transfers. It is the all-zero address.
var SystemProgramID = address.Address{}

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	Address    address.Address
	IsSigner   bool
	IsWritable bool
}

// Instruction is a call into a program.
type Instruction struct {
	ProgramID address.Address
	Accounts  []AccountMeta
	Data      []byte
}

// Transaction wraps one instruction signed by a single fee payer.
type Transaction struct {
	ID          uuid.UUID
	Signer      address.Address
	Timestamp   time.Time
	Instruction Instruction
	Signature   []byte
}

// Program is an on-ledger program addressed by its id.
type Program interface {
	ID() address.Address
	Process(ctx context.Context, bank Bank, ix Instruction) error
}

// Bank is the view of the ledger a program gets while one transaction executes.
// All changes made through it belong to the same atomic step.
type Bank interface {
	// Balance returns the lamports held by addr; unknown accounts hold zero.
	Balance(ctx context.Context, addr address.Address) (uint64, error)

	// Transfer moves lamports from an account that signed the transaction.
	Transfer(ctx context.Context, from, to address.Address, lamports uint64) error

	// TransferSigned moves lamports from a program-derived account. The
	// ledger re-derives the address from seeds under the calling program id
	// and rejects the transfer unless it equals from.
	TransferSigned(ctx context.Context, from, to address.Address, lamports uint64, seeds [][]byte) error

	// Rent returns the ledger's storage economics.
	Rent() Rent
}

// Accounts is the raw balance table seen inside one atomic step.
type Accounts interface {
	Lamports(ctx context.Context, addr address.Address) (uint64, error)
	SetLamports(ctx context.Context, addr address.Address, lamports uint64) error
}

// Store persists balances. Atomic runs fn as one all-or-nothing step; steps
// are applied in a single global order.
type Store interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, accounts Accounts) error) error
	Lamports(ctx context.Context, addr address.Address) (uint64, error)
}

// Movement is a single lamport transfer performed while executing a transaction.
type Movement struct {
	From     address.Address
	To       address.Address
	Lamports uint64
}

// AccountBalance is a post-execution balance.
type AccountBalance struct {
	Address  address.Address
	Lamports uint64
}

// Receipt describes a committed transaction.
type Receipt struct {
	TxID       uuid.UUID
	Signer     address.Address
	ProgramID  address.Address
	Data       []byte
	Fee        uint64
	Movements  []Movement
	Balances   []AccountBalance
	ExecutedAt time.Time
}

// BalanceOf returns the post-execution balance recorded for addr.
func (r *Receipt) BalanceOf(addr address.Address) (uint64, bool) {
	for _, b := range r.Balances {
		if b.Address == addr {
			return b.Lamports, true
		}
	}
	return 0, false
}
