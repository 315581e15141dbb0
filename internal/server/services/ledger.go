package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	"github.com/dmitrijs2005/lamportvault/internal/server/archive"
	"github.com/dmitrijs2005/lamportvault/internal/server/config"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lamportvault/internal/vault"
	"github.com/google/uuid"
)

// ProgramInfo describes the deployed vault program and the ledger it runs on.
type ProgramInfo struct {
	ProgramID            address.Address
	RentExemptMinimum    uint64
	LamportsPerSignature uint64
	FaucetEnabled        bool
}

// LedgerService executes wallet transactions on the ledger runtime and keeps
// their receipts.
type LedgerService struct {
	runtime           *ledger.Runtime
	program           *vault.Program
	repomanager       repomanager.RepositoryManager
	archiver          archive.Archiver
	faucetEnabled     bool
	faucetMaxLamports uint64
	logger            logging.Logger
	now               func() time.Time
}

func NewLedgerService(rt *ledger.Runtime, program *vault.Program, m repomanager.RepositoryManager,
	archiver archive.Archiver, cfg *config.Config, logger logging.Logger) *LedgerService {
	return &LedgerService{
		runtime:           rt,
		program:           program,
		repomanager:       m,
		archiver:          archiver,
		faucetEnabled:     cfg.FaucetEnabled,
		faucetMaxLamports: cfg.FaucetMaxLamports,
		logger:            logger.With("module", "ledger-service"),
		now:               time.Now,
	}
}

func (s *LedgerService) ProgramInfo() ProgramInfo {
	return ProgramInfo{
		ProgramID:            s.program.ID(),
		RentExemptMinimum:    s.runtime.Rent().MinimumBalance(0),
		LamportsPerSignature: s.runtime.LamportsPerSignature(),
		FaucetEnabled:        s.faucetEnabled,
	}
}

// DeriveVault returns the vault address of owner and its nonce.
func (s *LedgerService) DeriveVault(owner string) (address.Address, uint8, error) {
	addr, err := parseAddress(owner)
	if err != nil {
		return address.Address{}, 0, err
	}
	return s.program.Deriver().Derive(addr)
}

func (s *LedgerService) Balance(ctx context.Context, addr string) (uint64, error) {
	a, err := parseAddress(addr)
	if err != nil {
		return 0, err
	}
	return s.runtime.Balance(ctx, a)
}

// Airdrop credits owner from the faucet and returns the new balance.
func (s *LedgerService) Airdrop(ctx context.Context, owner string, lamports uint64) (uint64, error) {
	if !s.faucetEnabled {
		return 0, common.ErrorFaucetClosed
	}
	if lamports == 0 || lamports > s.faucetMaxLamports {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", common.ErrFaucetLimit, lamports, s.faucetMaxLamports)
	}
	addr, err := parseAddress(owner)
	if err != nil {
		return 0, err
	}
	return s.runtime.Airdrop(ctx, addr, lamports)
}

// Submit decodes and executes a signed transaction on behalf of caller, who
// must be its signer. The returned receipt describes failed executions too;
// the error is then the execution error. Forged, replayed and stale
// transactions are rejected without a receipt.
func (s *LedgerService) Submit(ctx context.Context, caller string, raw []byte) (*models.Receipt, error) {
	var tx ledger.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	if tx.Signer.String() != caller {
		return nil, fmt.Errorf("%w: transaction signer %s is not the session owner", common.ErrorForbidden, tx.Signer)
	}

	rc, execErr := s.runtime.Execute(ctx, &tx)
	if execErr != nil && !recordable(execErr) {
		return nil, execErr
	}

	record := s.describe(ctx, &tx, rc, execErr)
	if err := s.repomanager.Receipts(s.repomanager.DB()).Create(ctx, record); err != nil {
		s.logger.Error(ctx, "failed to store receipt", "id", record.ID, "tx", record.TxID, "error", err)
		if execErr == nil {
			// the transaction is committed, the caller still gets its receipt
			return record, nil
		}
	}

	if execErr != nil {
		s.logger.Info(ctx, "transaction failed", "tx", record.TxID, "instruction", record.Instruction, "error", execErr)
		return record, execErr
	}

	key, err := s.archiver.Put(ctx, record)
	if err != nil {
		s.logger.Warn(ctx, "failed to archive receipt", "id", record.ID, "error", err)
	} else if key != "" {
		s.logger.Debug(ctx, "receipt archived", "id", record.ID, "key", key)
	}
	return record, nil
}

// ListReceipts returns the newest receipts of owner.
func (s *LedgerService) ListReceipts(ctx context.Context, owner string, limit int) ([]*models.Receipt, error) {
	list, err := s.repomanager.Receipts(s.repomanager.DB()).ListBySigner(ctx, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing receipts: %w", err)
	}
	return list, nil
}

func (s *LedgerService) describe(ctx context.Context, tx *ledger.Transaction, rc *ledger.Receipt, execErr error) *models.Receipt {
	r := &models.Receipt{
		ID:          uuid.NewString(),
		TxID:        tx.ID.String(),
		Signer:      tx.Signer.String(),
		Instruction: "unknown",
		Status:      models.ReceiptStatusOK,
		CreatedAt:   s.now().UTC(),
	}

	var (
		op        vault.Op
		vaultAddr address.Address
		hasVault  bool
	)
	ix := tx.Instruction
	if ix.ProgramID == s.program.ID() {
		if decoded, amount, err := vault.DecodeInstruction(ix.Data); err == nil {
			op = decoded
			r.Instruction = op.String()
			r.Amount = amount
		}
		if len(ix.Accounts) > 1 {
			vaultAddr, hasVault = ix.Accounts[1].Address, true
			r.Vault = vaultAddr.String()
		}
	}

	if execErr != nil {
		r.Status = models.ReceiptStatusFailed
		r.Error = execErr.Error()
		if bal, err := s.runtime.Balance(ctx, tx.Signer); err == nil {
			r.SignerBalance = bal
		}
		if hasVault {
			if bal, err := s.runtime.Balance(ctx, vaultAddr); err == nil {
				r.VaultBalance = bal
			}
		}
		return r
	}

	r.Fee = rc.Fee
	r.CreatedAt = rc.ExecutedAt
	if op == vault.OpWithdraw {
		for _, m := range rc.Movements {
			if m.From == vaultAddr {
				r.Amount += m.Lamports
			}
		}
	}
	r.SignerBalance, _ = rc.BalanceOf(tx.Signer)
	if hasVault {
		r.VaultBalance, _ = rc.BalanceOf(vaultAddr)
	}
	return r
}

// recordable reports whether a failed execution gets a receipt. Forgeries,
// replays and stale transactions do not.
func recordable(err error) bool {
	return !errors.Is(err, ledger.ErrInvalidSignature) &&
		!errors.Is(err, ledger.ErrDuplicateTransaction) &&
		!errors.Is(err, ledger.ErrTransactionExpired) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func parseAddress(s string) (address.Address, error) {
	a, err := address.Parse(s)
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: %v", common.ErrInvalidAddress, err)
	}
	return a, nil
}
