package cli

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/shopspring/decimal"
)

const LamportsPerSOL = common.LamportsPerSOL

const solDecimals = 9

var ErrInvalidAmount = errors.New("invalid amount")

// ParseSOL converts a decimal SOL amount such as "1.5" to lamports. Negative
// values, more than nine fractional digits and values above 2^64-1 lamports
// are rejected.
func ParseSOL(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}

	lamports := d.Shift(solDecimals)
	if !lamports.IsInteger() {
		return 0, fmt.Errorf("%w: more than %d decimals", ErrInvalidAmount, solDecimals)
	}
	bi := lamports.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return bi.Uint64(), nil
}

// FormatSOL renders lamports as SOL without trailing zeros.
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -solDecimals).String() + " SOL"
}
