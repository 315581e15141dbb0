package vault

import (
	"errors"
	"fmt"
)

// Kind identifies a vault failure. The numeric value is stable and travels
// over the wire.
type Kind uint32

const (
	KindUnknown           Kind = 0
	KindSeedsMismatch     Kind = 2006
	KindVaultAlreadyInUse Kind = 6000
	KindInvalidAmount     Kind = 6001
	KindNoViableNonce     Kind = 6002
)

func (k Kind) String() string {
	switch k {
	case KindSeedsMismatch:
		return "SeedsMismatch"
	case KindVaultAlreadyInUse:
		return "VaultAlreadyInUse"
	case KindInvalidAmount:
		return "InvalidAmount"
	case KindNoViableNonce:
		return "NoViableNonce"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// Error is a vault failure of a given Kind. Two errors match under errors.Is
// when their kinds are equal, so wrapped reports still match the sentinels.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, uint32(e.Kind), e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrSeedsMismatch     = &Error{Kind: KindSeedsMismatch, Msg: "A seeds constraint was violated"}
	ErrVaultAlreadyInUse = &Error{Kind: KindVaultAlreadyInUse, Msg: "Vault already in use"}
	ErrInvalidAmount     = &Error{Kind: KindInvalidAmount, Msg: "Invalid amount"}
	ErrNoViableNonce     = &Error{Kind: KindNoViableNonce, Msg: "Unable to find a viable program address nonce"}
)

var sentinels = map[Kind]*Error{
	KindSeedsMismatch:     ErrSeedsMismatch,
	KindVaultAlreadyInUse: ErrVaultAlreadyInUse,
	KindInvalidAmount:     ErrInvalidAmount,
	KindNoViableNonce:     ErrNoViableNonce,
}

// Report builds an error of the given kind carrying call-specific detail.
func Report(kind Kind, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if s, ok := sentinels[kind]; ok {
		msg = s.Msg + ": " + msg
	}
	return &Error{Kind: kind, Msg: msg}
}

// KindOf returns the kind of the first vault error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FromCode returns the sentinel for a wire code.
func FromCode(code uint32) (error, bool) {
	s, ok := sentinels[Kind(code)]
	if !ok {
		return nil, false
	}
	return s, true
}
