package services

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/client/client"
	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lamportvault/internal/client/repositories/receipts"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/vault"
)

// Balances is what the wallet shows for an owner: the owner account and its
// vault.
type Balances struct {
	Owner         address.Address
	Vault         address.Address
	OwnerLamports uint64
	VaultLamports uint64
}

type WalletService interface {
	ProgramID(ctx context.Context) (address.Address, error)
	VaultOf(ctx context.Context, owner address.Address) (address.Address, uint8, error)
	Balances(ctx context.Context, owner address.Address) (*Balances, error)
	Airdrop(ctx context.Context, lamports uint64) (uint64, error)
	Deposit(ctx context.Context, key ed25519.PrivateKey, lamports uint64) (*models.Receipt, error)
	Withdraw(ctx context.Context, key ed25519.PrivateKey) (*models.Receipt, error)
	History(ctx context.Context, owner string, limit int, online bool) ([]*models.Receipt, error)
}

type walletService struct {
	client   client.Client
	metadata metadata.Repository
	journal  receipts.Repository
	endpoint string
	now      func() time.Time
}

// NewWalletService returns a WalletService talking to the node at endpoint.
func NewWalletService(c client.Client, meta metadata.Repository, journal receipts.Repository, endpoint string) WalletService {
	return &walletService{client: c, metadata: meta, journal: journal, endpoint: endpoint, now: time.Now}
}

// ProgramID returns the vault program id. It asks the node once and keeps
// the answer in the journal under the node's endpoint, so vault addresses can
// be shown offline and switching nodes does not reuse a stale id.
func (s *walletService) ProgramID(ctx context.Context) (address.Address, error) {
	key := metadata.ProgramIDKey(s.endpoint)
	id, ok, err := s.metadata.GetAddress(ctx, key)
	switch {
	case err != nil:
		log.Printf("journal: reading cached program id: %v", err)
	case ok:
		return id, nil
	}

	info, err := s.client.ProgramInfo(ctx)
	if err != nil {
		return address.Address{}, err
	}
	id, err = address.Parse(info.ProgramID)
	if err != nil {
		return address.Address{}, fmt.Errorf("node reported program id: %w", err)
	}
	if err := s.metadata.SetAddress(ctx, key, id); err != nil {
		return address.Address{}, err
	}
	return id, nil
}

// VaultOf derives the vault locally; the node is not trusted for it.
func (s *walletService) VaultOf(ctx context.Context, owner address.Address) (address.Address, uint8, error) {
	programID, err := s.ProgramID(ctx)
	if err != nil {
		return address.Address{}, 0, err
	}
	return vault.NewAddressDeriver(programID).Derive(owner)
}

func (s *walletService) Balances(ctx context.Context, owner address.Address) (*Balances, error) {
	v, _, err := s.VaultOf(ctx, owner)
	if err != nil {
		return nil, err
	}
	ownerLamports, err := s.client.Balance(ctx, owner.String())
	if err != nil {
		return nil, err
	}
	vaultLamports, err := s.client.Balance(ctx, v.String())
	if err != nil {
		return nil, err
	}
	return &Balances{Owner: owner, Vault: v, OwnerLamports: ownerLamports, VaultLamports: vaultLamports}, nil
}

func (s *walletService) Airdrop(ctx context.Context, lamports uint64) (uint64, error) {
	return s.client.Airdrop(ctx, lamports)
}

func (s *walletService) Deposit(ctx context.Context, key ed25519.PrivateKey, lamports uint64) (*models.Receipt, error) {
	return s.submit(ctx, key, vault.OpDeposit, lamports)
}

func (s *walletService) Withdraw(ctx context.Context, key ed25519.PrivateKey) (*models.Receipt, error) {
	return s.submit(ctx, key, vault.OpWithdraw, 0)
}

// submit signs and sends one vault instruction. Whatever the node recorded
// is written to the journal: the full receipt on success, a failed entry
// carrying the node's receipt id otherwise.
func (s *walletService) submit(ctx context.Context, key ed25519.PrivateKey, op vault.Op, lamports uint64) (*models.Receipt, error) {
	owner, err := address.FromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	programID, err := s.ProgramID(ctx)
	if err != nil {
		return nil, err
	}

	var ix ledger.Instruction
	switch op {
	case vault.OpDeposit:
		ix, err = vault.NewDepositInstruction(programID, owner, lamports)
	default:
		ix, err = vault.NewWithdrawInstruction(programID, owner)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	tx := ledger.NewTransaction(owner, ix, now)
	if err := tx.Sign(key); err != nil {
		return nil, err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}

	rc, err := s.client.SubmitTransaction(ctx, raw)
	if err != nil {
		if id := client.ReceiptID(err); id != "" {
			failed := &models.Receipt{
				ID:          id,
				TxID:        tx.ID.String(),
				Signer:      owner.String(),
				Instruction: op.String(),
				Amount:      lamports,
				Status:      models.ReceiptStatusFailed,
				Error:       err.Error(),
				Vault:       ix.Accounts[1].Address.String(),
				CreatedAt:   now.UTC(),
			}
			s.record(ctx, failed)
			return failed, err
		}
		return nil, err
	}

	s.record(ctx, rc)
	return rc, nil
}

func (s *walletService) record(ctx context.Context, rc *models.Receipt) {
	if err := s.journal.Save(ctx, rc); err != nil {
		log.Printf("journal: %v", err)
	}
}

// History lists receipts newest first. Online it refreshes the journal from
// the node; offline it reads the journal only.
func (s *walletService) History(ctx context.Context, owner string, limit int, online bool) ([]*models.Receipt, error) {
	if !online {
		return s.journal.ListBySigner(ctx, owner, limit)
	}

	list, err := s.client.ListReceipts(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, rc := range list {
		s.record(ctx, rc)
	}
	return list, nil
}
