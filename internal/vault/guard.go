package vault

import (
	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
)

// VaultGuard runs the preconditions that must hold before any lamports move.
type VaultGuard struct {
	deriver AddressDeriver
}

func NewVaultGuard(deriver AddressDeriver) VaultGuard {
	return VaultGuard{deriver: deriver}
}

// CheckVaultAccount ensures vault is the canonical derived account of owner
// and returns its nonce.
func (g VaultGuard) CheckVaultAccount(owner, vault address.Address) (uint8, error) {
	want, nonce, err := g.deriver.Derive(owner)
	if err != nil {
		return 0, err
	}
	if want != vault {
		return 0, Report(KindSeedsMismatch, "vault %s is not derived from owner %s", vault, owner)
	}
	return nonce, nil
}

// CheckDeposit validates a deposit of amount into a vault holding balance.
// The balance is checked before the amount.
func (g VaultGuard) CheckDeposit(balance, amount uint64, rent ledger.Rent) error {
	if balance != 0 {
		return Report(KindVaultAlreadyInUse, "balance %d", balance)
	}
	if minimum := rent.MinimumBalance(0); amount <= minimum {
		return Report(KindInvalidAmount, "%d does not exceed rent-exempt minimum %d", amount, minimum)
	}
	return nil
}
