package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/models"
)

const defaultHistoryLimit = 10

var errNotLoggedIn = errors.New("login first")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return errNotLoggedIn
	}
	return nil
}

func (a *App) ownerAddress() (address.Address, error) {
	return address.Parse(a.owner)
}

func (a *App) report(what string, err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
	}
	fmt.Fprintf(a.out, "%s failed: %v\n", what, err)
	return err
}

// Address prints the owner address and its vault.
func (a *App) Address(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	owner, err := a.ownerAddress()
	if err != nil {
		return err
	}
	v, nonce, err := a.walletService.VaultOf(ctx, owner)
	if err != nil {
		return a.report("address", err)
	}
	fmt.Fprintf(a.out, "owner: %s\nvault: %s (nonce %d)\n", owner, v, nonce)
	return nil
}

func (a *App) Balance(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	owner, err := a.ownerAddress()
	if err != nil {
		return err
	}
	b, err := a.walletService.Balances(ctx, owner)
	if err != nil {
		return a.report("balance", err)
	}
	fmt.Fprintf(a.out, "wallet: %s\nvault:  %s\n", FormatSOL(b.OwnerLamports), FormatSOL(b.VaultLamports))
	return nil
}

func (a *App) Airdrop(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	lamports, err := amountArg(args, "airdrop <sol>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	bal, err := a.walletService.Airdrop(ctx, lamports)
	if err != nil {
		return a.report("airdrop", err)
	}
	fmt.Fprintf(a.out, "Airdropped %s, wallet balance %s\n", FormatSOL(lamports), FormatSOL(bal))
	return nil
}

func (a *App) Deposit(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	lamports, err := amountArg(args, "deposit <sol>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	rc, err := a.walletService.Deposit(ctx, a.key, lamports)
	return a.printSubmission("deposit", rc, err)
}

// Withdraw empties the vault after the user confirms.
func (a *App) Withdraw(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Withdraw the whole vault balance? [y/N]", a.out)
	if err != nil {
		return err
	}
	if ans := strings.ToLower(answer); ans != "y" && ans != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	rc, err := a.walletService.Withdraw(ctx, a.key)
	return a.printSubmission("withdraw", rc, err)
}

func (a *App) printSubmission(what string, rc *models.Receipt, err error) error {
	if err != nil {
		if rc != nil {
			fmt.Fprintf(a.out, "%s failed: %v (receipt %s)\n", what, err, rc.ID)
			return err
		}
		return a.report(what, err)
	}
	fmt.Fprintf(a.out, "%s ok: %s, fee %s, vault balance %s\n",
		what, FormatSOL(rc.Amount), FormatSOL(rc.Fee), FormatSOL(rc.VaultBalance))
	return nil
}

// History prints receipts newest first; offline it reads the journal.
func (a *App) History(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, "Usage: history [limit]")
			return ErrInvalidAmount
		}
		limit = n
	}

	online := a.mode() == ModeOnline
	list, err := a.walletService.History(ctx, a.owner, limit, online)
	if err != nil && online && errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
		list, err = a.walletService.History(ctx, a.owner, limit, false)
	}
	if err != nil {
		return a.report("history", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No transactions yet")
		return nil
	}
	for _, rc := range list {
		line := fmt.Sprintf("%s  %-8s %-14s fee %-14s %s",
			rc.CreatedAt.Local().Format(time.DateTime), rc.Instruction, FormatSOL(rc.Amount), FormatSOL(rc.Fee), rc.Status)
		if !rc.OK() {
			line += ": " + rc.Error
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func amountArg(args []string, usage string) (uint64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return ParseSOL(args[0])
}
