// Package receipts is the local journal of submitted transactions.
package receipts

import (
	"context"

	"github.com/dmitrijs2005/lamportvault/internal/client/models"
)

// Repository keeps receipts keyed by receipt id. Saving an id twice
// overwrites the earlier row.
type Repository interface {
	Save(ctx context.Context, r *models.Receipt) error
	ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error)
	Clear(ctx context.Context) error
}
