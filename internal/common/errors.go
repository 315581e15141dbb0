// Package common defines constants, sentinel errors and small helpers shared
// by the vault node and the wallet client. Callers match errors with errors.Is.
package common

import "errors"

var (
	// repository errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorFaucetClosed = errors.New("faucet disabled")
	ErrFaucetLimit    = errors.New("airdrop amount outside faucet limit")
	ErrInvalidAddress = errors.New("invalid address")

	// login errors
	ErrInvalidLoginProof = errors.New("invalid login proof")
	ErrLoginExpired      = errors.New("login proof outside the accepted window")

	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
