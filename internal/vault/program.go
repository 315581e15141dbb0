package vault

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
)

// Program is the vault as a ledger program. It expects the accounts
// [owner (signer, writable), vault (writable), system program].
type Program struct {
	id       address.Address
	deriver  AddressDeriver
	guard    VaultGuard
	executor TransferExecutor
	logger   logging.Logger
}

var _ ledger.Program = (*Program)(nil)

func NewProgram(programID address.Address, logger logging.Logger) *Program {
	d := NewAddressDeriver(programID)
	return &Program{
		id:       programID,
		deriver:  d,
		guard:    NewVaultGuard(d),
		executor: NewTransferExecutor(d),
		logger:   logger.With("module", "vault", "program", programID.String()),
	}
}

func (p *Program) ID() address.Address {
	return p.id
}

func (p *Program) Deriver() AddressDeriver {
	return p.deriver
}

func (p *Program) Process(ctx context.Context, bank ledger.Bank, ix ledger.Instruction) error {
	op, amount, err := DecodeInstruction(ix.Data)
	if err != nil {
		return err
	}
	owner, vault, err := p.accounts(ix.Accounts)
	if err != nil {
		return err
	}

	switch op {
	case OpDeposit:
		return p.deposit(ctx, bank, owner, vault, amount)
	case OpWithdraw:
		return p.withdraw(ctx, bank, owner, vault)
	}
	return ledger.ErrInvalidInstruction
}

func (p *Program) accounts(metas []ledger.AccountMeta) (owner, vault address.Address, err error) {
	if len(metas) < 3 {
		return owner, vault, fmt.Errorf("%w: want 3, got %d", ledger.ErrNotEnoughAccounts, len(metas))
	}
	o, v, sys := metas[0], metas[1], metas[2]
	if !o.IsSigner {
		return owner, vault, fmt.Errorf("%w: owner %s", ledger.ErrMissingSignature, o.Address)
	}
	if !o.IsWritable || !v.IsWritable {
		return owner, vault, ledger.ErrAccountNotWritable
	}
	if sys.Address != ledger.SystemProgramID {
		return owner, vault, fmt.Errorf("%w: expected system program, got %s", ledger.ErrInvalidAccount, sys.Address)
	}
	return o.Address, v.Address, nil
}

func (p *Program) deposit(ctx context.Context, bank ledger.Bank, owner, vault address.Address, amount uint64) error {
	if _, err := p.guard.CheckVaultAccount(owner, vault); err != nil {
		return err
	}
	balance, err := bank.Balance(ctx, vault)
	if err != nil {
		return err
	}
	if err := p.guard.CheckDeposit(balance, amount, bank.Rent()); err != nil {
		return err
	}
	if err := p.executor.MoveOwnerToVault(ctx, bank, owner, vault, amount); err != nil {
		return err
	}
	p.logger.Debug(ctx, "deposit", "owner", owner.String(), "vault", vault.String(), "lamports", amount)
	return nil
}

func (p *Program) withdraw(ctx context.Context, bank ledger.Bank, owner, vault address.Address) error {
	nonce, err := p.guard.CheckVaultAccount(owner, vault)
	if err != nil {
		return err
	}
	auth := DerivedAuthority{Tag: VaultTag, Owner: owner, Nonce: nonce}
	moved, err := p.executor.MoveVaultToOwner(ctx, bank, auth, vault)
	if err != nil {
		return err
	}
	p.logger.Debug(ctx, "withdraw", "owner", owner.String(), "vault", vault.String(), "lamports", moved)
	return nil
}
