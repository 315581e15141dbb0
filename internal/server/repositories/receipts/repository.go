// Package receipts stores transaction receipts produced by the ledger runtime.
package receipts

import (
	"context"

	"github.com/dmitrijs2005/lamportvault/internal/server/models"
)

// DefaultListLimit caps ListBySigner when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Repository persists receipts and lists them per signer.
type Repository interface {
	// Create stores a receipt. Receipt IDs are unique.
	Create(ctx context.Context, r *models.Receipt) error

	// ListBySigner returns at most limit receipts of signer, newest first.
	ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
