package vault

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
)

// Op is a vault instruction.
type Op uint8

const (
	OpDeposit Op = iota + 1
	OpWithdraw
)

func (o Op) String() string {
	switch o {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

const discriminatorSize = 8

var (
	depositDiscriminator  = discriminator("deposit")
	withdrawDiscriminator = discriminator("withdraw")
)

func discriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:discriminatorSize]
}

// EncodeDeposit returns the instruction data for a deposit of amount lamports.
func EncodeDeposit(amount uint64) []byte {
	b := append([]byte(nil), depositDiscriminator...)
	return binary.LittleEndian.AppendUint64(b, amount)
}

func EncodeWithdraw() []byte {
	return append([]byte(nil), withdrawDiscriminator...)
}

// DecodeInstruction parses instruction data. The amount is zero for withdraw.
func DecodeInstruction(data []byte) (Op, uint64, error) {
	if len(data) < discriminatorSize {
		return 0, 0, fmt.Errorf("%w: %d bytes", ledger.ErrInvalidInstruction, len(data))
	}
	head, body := data[:discriminatorSize], data[discriminatorSize:]
	switch {
	case bytes.Equal(head, depositDiscriminator):
		if len(body) != 8 {
			return 0, 0, fmt.Errorf("%w: deposit takes an 8 byte amount", ledger.ErrInvalidInstruction)
		}
		return OpDeposit, binary.LittleEndian.Uint64(body), nil
	case bytes.Equal(head, withdrawDiscriminator):
		if len(body) != 0 {
			return 0, 0, fmt.Errorf("%w: withdraw takes no arguments", ledger.ErrInvalidInstruction)
		}
		return OpWithdraw, 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown discriminator %x", ledger.ErrInvalidInstruction, head)
	}
}

func vaultAccounts(owner, vault address.Address) []ledger.AccountMeta {
	return []ledger.AccountMeta{
		{Address: owner, IsSigner: true, IsWritable: true},
		{Address: vault, IsWritable: true},
		{Address: ledger.SystemProgramID},
	}
}

// NewDepositInstruction builds a deposit of amount from owner into its vault.
func NewDepositInstruction(programID, owner address.Address, amount uint64) (ledger.Instruction, error) {
	vault, _, err := NewAddressDeriver(programID).Derive(owner)
	if err != nil {
		return ledger.Instruction{}, err
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  vaultAccounts(owner, vault),
		Data:      EncodeDeposit(amount),
	}, nil
}

// NewWithdrawInstruction builds a withdrawal of owner's whole vault balance.
func NewWithdrawInstruction(programID, owner address.Address) (ledger.Instruction, error) {
	vault, _, err := NewAddressDeriver(programID).Derive(owner)
	if err != nil {
		return ledger.Instruction{}, err
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  vaultAccounts(owner, vault),
		Data:      EncodeWithdraw(),
	}, nil
}
