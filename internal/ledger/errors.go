package ledger

import "errors"

var (
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInsufficientFundsForFee = errors.New("insufficient funds for fee")
	ErrOverflow                = errors.New("arithmetic overflow")
	ErrMissingSignature        = errors.New("missing required signature")
	ErrInvalidSignature        = errors.New("invalid transaction signature")
	ErrAuthorityMismatch       = errors.New("derived authority does not match debited account")
	ErrAccountNotWritable      = errors.New("account not writable")
	ErrUnknownProgram          = errors.New("unknown program")
	ErrInvalidInstruction      = errors.New("invalid instruction data")
	ErrNotEnoughAccounts       = errors.New("not enough account keys")
	ErrInvalidAccount          = errors.New("invalid account")
	ErrInvalidTransaction      = errors.New("malformed transaction")
	ErrTransactionExpired      = errors.New("transaction expired")
	ErrDuplicateTransaction    = errors.New("transaction already processed")
)
