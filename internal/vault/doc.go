// Package vault implements the custodial vault program: every owner gets one
// key-less account derived from the owner's key under the program id, and
// the program alone can move lamports out of it.
//
// A call goes through the same pipeline every time:
//
//	AddressDeriver -> VaultGuard -> TransferExecutor
//
// and every rejected precondition surfaces as a stable error Kind.
package vault
