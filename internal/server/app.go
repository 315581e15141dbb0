// Package server assembles the vault node: the ledger store, the runtime with
// the vault program, the receipt archive, the services and the gRPC endpoint.
// It handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	"github.com/dmitrijs2005/lamportvault/internal/server/archive"
	"github.com/dmitrijs2005/lamportvault/internal/server/config"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lamportvault/internal/server/services"
	"github.com/dmitrijs2005/lamportvault/internal/vault"

	gs "github.com/dmitrijs2005/lamportvault/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	sessionService *services.SessionService
	ledgerService  *services.LedgerService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, parseLogLevel(c.LogLevel))

	if c.TransactionMaxAge <= 0 {
		return nil, fmt.Errorf("transaction max age must be positive, got %s", c.TransactionMaxAge)
	}

	programID, err := address.Parse(c.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("program id: %w", err)
	}

	m, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	arch, err := archive.New(ctx, c)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("archive init error: %w", err)
	}

	program := vault.NewProgram(programID, logger)
	rt := ledger.NewRuntime(m.LedgerStore(), runtimeConfig(c), logger, program)

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    m,
		sessionService: services.NewSessionService(m, c),
		ledgerService:  services.NewLedgerService(rt, program, m, arch, c, logger),
	}, nil
}

// newRepositoryManager opens PostgreSQL and applies migrations when a DSN is
// configured, otherwise it keeps everything in memory.
func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

func runtimeConfig(c *config.Config) ledger.Config {
	cfg := ledger.DefaultConfig()
	cfg.LamportsPerSignature = c.LamportsPerSignature
	cfg.MaxAge = c.TransactionMaxAge
	return cfg
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessionService, app.ledgerService, app.config.SecretKey)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives, the parent context is canceled or the
// gRPC server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "program", app.config.ProgramID, "persistent", app.config.DatabaseDSN != "")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
