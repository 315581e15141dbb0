package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.owner != "" {
		s = a.owner + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, logs in when a key file exists and runs the REPL
// until exit. The online watcher stops with the REPL.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to the lamportvault wallet (type 'help' for commands)")

	if _, err := os.Stat(a.config.KeyFile); err == nil {
		_ = a.Login(ctx)
	} else {
		fmt.Fprintln(a.out, "No key file yet, run keygen")
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
