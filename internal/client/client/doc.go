// Package client contains client-side building blocks for the wallet CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to a vault node: Ping, ProgramInfo, Login, DeriveVault, Balance,
//     Airdrop, SubmitTransaction and ListReceipts.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes expired tokens, and maps gRPC statuses back to sentinel
//     errors with grpcx.FromStatus.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     receipt journal: an SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized.
// Domain errors keep their identity across the wire, so callers can test
// errors.Is(err, vault.ErrVaultAlreadyInUse) directly.
package client
