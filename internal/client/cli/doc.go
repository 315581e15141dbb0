// Package cli provides the interactive wallet command-line client.
//
// It wires configuration, the local receipt journal, the node API and an
// interactive REPL that keeps working offline. Typical flow: unlock the key
// file, log in to the node, start a background connectivity watcher, then
// move lamports in and out of the owner's vault.
//
// Key features:
//   - keygen / login / logout with a passphrase-sealed ed25519 key
//   - address, balance, airdrop
//   - deposit <sol> and withdraw against the vault program
//   - history, served from the journal while offline
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
