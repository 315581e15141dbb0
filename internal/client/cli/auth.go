package cli

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPassphraseMismatch = errors.New("passphrases do not match")

// Keygen creates a new key pair sealed under a passphrase typed twice.
func (a *App) Keygen(ctx context.Context) error {
	pass, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	again, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if string(pass) != string(again) {
		fmt.Fprintln(a.out, "Passphrases do not match")
		return errPassphraseMismatch
	}

	addr, err := a.authService.Keygen(ctx, pass)
	if err != nil {
		fmt.Fprintf(a.out, "Keygen failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "New wallet %s saved to %s\n", addr, a.config.KeyFile)
	return nil
}

// Login unlocks the key file and opens a session with the node. When the node
// cannot be reached the wallet still unlocks and works offline on the journal.
// Mode ends up online, offline, or disabled when the key cannot be unlocked.
func (a *App) Login(ctx context.Context) error {
	pass, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	key, err := a.authService.Unlock(ctx, pass)
	if err != nil {
		log.Printf("Unlock unsuccessful: %s", err.Error())
		a.setMode(ModeDisabled)
		return err
	}
	owner, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		return err
	}

	var mode Mode
	if _, err := a.authService.OnlineLogin(ctx, key); err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			log.Printf("Login unsuccessful: %s", err.Error())
			a.setMode(ModeDisabled)
			return err
		}
		log.Printf("Server unavailable, working offline")
		mode = ModeOffline
	} else {
		log.Printf("Login successful")
		mode = ModeOnline
	}

	a.key = key
	a.owner = owner.String()
	a.setMode(mode)
	return nil
}

// Logout drops the session and forgets the unlocked key.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	common.WipeByteArray(a.key)
	a.key = nil
	a.owner = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
