package client

import (
	"context"

	"github.com/dmitrijs2005/lamportvault/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	ProgramInfo(ctx context.Context) (*models.ProgramInfo, error)
	Login(ctx context.Context, owner string, timestamp int64, signature []byte) error
	Logout()
	DeriveVault(ctx context.Context, owner string) (string, uint8, error)
	Balance(ctx context.Context, address string) (uint64, error)
	Airdrop(ctx context.Context, lamports uint64) (uint64, error)
	SubmitTransaction(ctx context.Context, raw []byte) (*models.Receipt, error)
	ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error)
}
