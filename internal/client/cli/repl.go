package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Keygen(ctx context.Context) error
	Login(ctx context.Context) error
	Address(ctx context.Context) error
	Balance(ctx context.Context) error
	Airdrop(ctx context.Context, args []string) error
	Deposit(ctx context.Context, args []string) error
	Withdraw(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. The loop
// exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - keygen         create a new key file
//	  - login          unlock the key file and open a session
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - address        owner and vault addresses
//	  - balance        wallet and vault balances
//	  - airdrop <sol>  request faucet lamports
//	  - deposit <sol>  move SOL into the vault
//	  - withdraw       empty the vault back into the wallet
//	  - history [n]    latest receipts
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers print their
// own messages.
//
// The reader is shared with command prompts, so lines are taken from it one
// at a time.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vault %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: address, balance, airdrop <sol>, deposit <sol>, withdraw, history [n], logout, exit")
			} else {
				printlnFn("Available commands: keygen, login, exit")
			}

		case "keygen":
			_ = a.Keygen(ctx)

		case "login":
			_ = a.Login(ctx)

		case "address":
			_ = a.Address(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "airdrop":
			_ = a.Airdrop(ctx, args)

		case "deposit":
			_ = a.Deposit(ctx, args)

		case "withdraw":
			_ = a.Withdraw(ctx)

		case "history":
			_ = a.History(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
