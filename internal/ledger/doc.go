// Package ledger is the account-balance state machine the vault program runs
// on. It stores lamport balances, verifies transaction signatures, charges
// fees and executes each transaction as one atomic step: every balance change
// made while processing a transaction is committed together or not at all.
//
// Programs never touch the store directly. They receive a Bank bound to the
// transaction being executed, whose Transfer and TransferSigned methods are the
// only way to move value. Transfer debits an account that signed the
// transaction; TransferSigned debits a program-derived account after
// re-deriving its address from the supplied seeds under the calling program id.
package ledger
