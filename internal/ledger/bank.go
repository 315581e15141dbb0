package ledger

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/address"
)

// bank is the Bank handed to a program for the duration of one transaction.
type bank struct {
	accounts  Accounts
	program   address.Address
	signers   map[address.Address]struct{}
	writable  map[address.Address]struct{}
	rent      Rent
	movements []Movement
}

func newBank(accounts Accounts, program address.Address, signer address.Address, metas []AccountMeta, rent Rent) *bank {
	b := &bank{
		accounts: accounts,
		program:  program,
		signers:  map[address.Address]struct{}{signer: {}},
		writable: make(map[address.Address]struct{}, len(metas)),
		rent:     rent,
	}
	for _, m := range metas {
		if m.IsWritable {
			b.writable[m.Address] = struct{}{}
		}
	}
	return b
}

func (b *bank) Balance(ctx context.Context, addr address.Address) (uint64, error) {
	return b.accounts.Lamports(ctx, addr)
}

func (b *bank) Rent() Rent {
	return b.rent
}

func (b *bank) Transfer(ctx context.Context, from, to address.Address, lamports uint64) error {
	if _, ok := b.signers[from]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingSignature, from)
	}
	return b.move(ctx, from, to, lamports)
}

func (b *bank) TransferSigned(ctx context.Context, from, to address.Address, lamports uint64, seeds [][]byte) error {
	derived, err := address.CreateProgramAddress(seeds, b.program)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorityMismatch, err)
	}
	if derived != from {
		return fmt.Errorf("%w: derived %s, debited %s", ErrAuthorityMismatch, derived, from)
	}
	return b.move(ctx, from, to, lamports)
}

func (b *bank) move(ctx context.Context, from, to address.Address, lamports uint64) error {
	for _, a := range []address.Address{from, to} {
		if _, ok := b.writable[a]; !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotWritable, a)
		}
	}

	fromBal, err := b.accounts.Lamports(ctx, from)
	if err != nil {
		return err
	}
	if fromBal < lamports {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, fromBal, lamports)
	}

	if from != to {
		toBal, err := b.accounts.Lamports(ctx, to)
		if err != nil {
			return err
		}
		if toBal+lamports < toBal {
			return ErrOverflow
		}
		if err := b.accounts.SetLamports(ctx, from, fromBal-lamports); err != nil {
			return err
		}
		if err := b.accounts.SetLamports(ctx, to, toBal+lamports); err != nil {
			return err
		}
	}

	b.movements = append(b.movements, Movement{From: from, To: to, Lamports: lamports})
	return nil
}
