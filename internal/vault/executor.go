package vault

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
)

// TransferExecutor moves lamports between an owner and its vault.
type TransferExecutor struct {
	deriver AddressDeriver
}

func NewTransferExecutor(deriver AddressDeriver) TransferExecutor {
	return TransferExecutor{deriver: deriver}
}

// MoveOwnerToVault transfers amount from owner, who must have signed the
// transaction.
func (e TransferExecutor) MoveOwnerToVault(ctx context.Context, bank ledger.Bank, owner, vault address.Address, amount uint64) error {
	return bank.Transfer(ctx, owner, vault, amount)
}

// MoveVaultToOwner transfers the whole vault balance back to auth.Owner and
// returns the amount moved. The authority is re-derived on every call.
func (e TransferExecutor) MoveVaultToOwner(ctx context.Context, bank ledger.Bank, auth DerivedAuthority, vault address.Address) (uint64, error) {
	derived, err := createProgramAddress(auth.Seeds(), e.deriver.ProgramID())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ledger.ErrAuthorityMismatch, auth, err)
	}
	if derived != vault {
		return 0, fmt.Errorf("%w: %s derives %s, not %s", ledger.ErrAuthorityMismatch, auth, derived, vault)
	}

	balance, err := bank.Balance(ctx, vault)
	if err != nil {
		return 0, err
	}
	if err := bank.TransferSigned(ctx, vault, auth.Owner, balance, auth.Seeds()); err != nil {
		return 0, err
	}
	return balance, nil
}
