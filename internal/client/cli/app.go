package cli

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/config"
	"github.com/dmitrijs2005/lamportvault/internal/client/services"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	walletService services.WalletService
	key           ed25519.PrivateKey
	owner         string
	reader        *bufio.Reader
	out           io.Writer

	mu   sync.RWMutex
	Mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.JournalDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}
	repos := client.NewRepositories(db)

	apiClient, err := client.NewVaultClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, repos.Metadata, c.KeyFile)
	ws := services.NewWalletService(apiClient, repos.Metadata, repos.Receipts, c.ServerEndpointAddr)

	return &App{
		config:        c,
		authService:   as,
		walletService: ws,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.key != nil
}

// StartOnlineStatusWatcher pings the node every interval and flips the mode
// between online and offline. It does nothing before the first login.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	if a.mode() == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(ctx)
	cancel()

	if err != nil {
		if a.mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
