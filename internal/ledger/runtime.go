package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	"github.com/google/uuid"
)

const DefaultLamportsPerSignature uint64 = 5000

// Config tunes a Runtime.
type Config struct {
	Rent                 Rent
	LamportsPerSignature uint64
	// MaxAge bounds how far a transaction timestamp may drift from the
	// runtime clock. It also bounds how long executed ids are remembered for
	// replay detection. Non-positive values select DefaultMaxAge.
	MaxAge time.Duration
}

// DefaultMaxAge is the accepted drift of a transaction timestamp.
const DefaultMaxAge = 2 * time.Minute

// DefaultConfig returns mainnet-like economics and a two minute window.
func DefaultConfig() Config {
	return Config{
		Rent:                 DefaultRent(),
		LamportsPerSignature: DefaultLamportsPerSignature,
		MaxAge:               DefaultMaxAge,
	}
}

// Runtime executes signed transactions against a Store.
type Runtime struct {
	store    Store
	cfg      Config
	programs map[address.Address]Program
	logger   logging.Logger
	now      func() time.Time

	mu   sync.Mutex
	seen map[uuid.UUID]time.Time
}

func NewRuntime(store Store, cfg Config, logger logging.Logger, programs ...Program) *Runtime {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	r := &Runtime{
		store:    store,
		cfg:      cfg,
		programs: make(map[address.Address]Program, len(programs)),
		logger:   logger.With("module", "ledger"),
		now:      time.Now,
		seen:     make(map[uuid.UUID]time.Time),
	}
	for _, p := range programs {
		r.programs[p.ID()] = p
	}
	return r
}

func (r *Runtime) Rent() Rent {
	return r.cfg.Rent
}

func (r *Runtime) LamportsPerSignature() uint64 {
	return r.cfg.LamportsPerSignature
}

func (r *Runtime) Balance(ctx context.Context, addr address.Address) (uint64, error) {
	return r.store.Lamports(ctx, addr)
}

// Airdrop credits lamports to an account out of thin air and returns the new balance.
func (r *Runtime) Airdrop(ctx context.Context, to address.Address, lamports uint64) (uint64, error) {
	var balance uint64
	err := r.store.Atomic(ctx, func(ctx context.Context, accounts Accounts) error {
		cur, err := accounts.Lamports(ctx, to)
		if err != nil {
			return err
		}
		if cur+lamports < cur {
			return ErrOverflow
		}
		balance = cur + lamports
		return accounts.SetLamports(ctx, to, balance)
	})
	if err != nil {
		return 0, err
	}
	r.logger.Info(ctx, "airdrop", "to", to.String(), "lamports", lamports, "balance", balance)
	return balance, nil
}

// Execute verifies tx and runs its instruction. The fee and every transfer
// made by the program commit together or not at all.
func (r *Runtime) Execute(ctx context.Context, tx *Transaction) (*Receipt, error) {
	if err := tx.VerifySignature(); err != nil {
		return nil, err
	}

	now := r.now()
	if err := r.checkAge(tx.Timestamp, now); err != nil {
		return nil, err
	}

	ix := tx.Instruction
	program, ok := r.programs[ix.ProgramID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, ix.ProgramID)
	}
	for _, m := range ix.Accounts {
		if m.IsSigner && m.Address != tx.Signer {
			return nil, fmt.Errorf("%w: %s", ErrMissingSignature, m.Address)
		}
	}

	if err := r.reserve(tx.ID, now); err != nil {
		return nil, err
	}

	fee := r.cfg.LamportsPerSignature
	var receipt *Receipt
	err := r.store.Atomic(ctx, func(ctx context.Context, accounts Accounts) error {
		bal, err := accounts.Lamports(ctx, tx.Signer)
		if err != nil {
			return err
		}
		if bal < fee {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFundsForFee, bal, fee)
		}
		if err := accounts.SetLamports(ctx, tx.Signer, bal-fee); err != nil {
			return err
		}

		b := newBank(accounts, program.ID(), tx.Signer, ix.Accounts, r.cfg.Rent)
		if err := program.Process(ctx, b, ix); err != nil {
			return err
		}

		balances, err := collectBalances(ctx, accounts, tx.Signer, ix.Accounts)
		if err != nil {
			return err
		}
		receipt = &Receipt{
			TxID:       tx.ID,
			Signer:     tx.Signer,
			ProgramID:  ix.ProgramID,
			Data:       append([]byte(nil), ix.Data...),
			Fee:        fee,
			Movements:  b.movements,
			Balances:   balances,
			ExecutedAt: now.UTC(),
		}
		return nil
	})
	if err != nil {
		r.release(tx.ID)
		r.logger.Warn(ctx, "transaction rejected", "tx", tx.ID.String(), "signer", tx.Signer.String(), "error", err)
		return nil, err
	}

	r.logger.Info(ctx, "transaction executed", "tx", tx.ID.String(), "signer", tx.Signer.String(), "fee", fee)
	return receipt, nil
}

func (r *Runtime) checkAge(ts, now time.Time) error {
	d := now.Sub(ts)
	if d > r.cfg.MaxAge || d < -r.cfg.MaxAge {
		return fmt.Errorf("%w: timestamp %s", ErrTransactionExpired, ts.UTC().Format(time.RFC3339))
	}
	return nil
}

// reserve records id as in flight. Ids older than twice MaxAge are forgotten,
// the age check rejects them anyway.
func (r *Runtime) reserve(id uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, t := range r.seen {
		if now.Sub(t) > 2*r.cfg.MaxAge {
			delete(r.seen, k)
		}
	}
	if _, ok := r.seen[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTransaction, id)
	}
	r.seen[id] = now
	return nil
}

func (r *Runtime) release(id uuid.UUID) {
	r.mu.Lock()
	delete(r.seen, id)
	r.mu.Unlock()
}

func collectBalances(ctx context.Context, accounts Accounts, signer address.Address, metas []AccountMeta) ([]AccountBalance, error) {
	seen := map[address.Address]struct{}{}
	var out []AccountBalance
	add := func(a address.Address) error {
		if _, ok := seen[a]; ok {
			return nil
		}
		seen[a] = struct{}{}
		v, err := accounts.Lamports(ctx, a)
		if err != nil {
			return err
		}
		out = append(out, AccountBalance{Address: a, Lamports: v})
		return nil
	}
	if err := add(signer); err != nil {
		return nil, err
	}
	for _, m := range metas {
		if err := add(m.Address); err != nil {
			return nil, err
		}
	}
	return out, nil
}
