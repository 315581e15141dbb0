// Package refreshtokens stores wallet refresh tokens. Only a BLAKE3 digest of
// each token is kept, so a leaked table cannot be replayed against the node.
package refreshtokens

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/zeebo/blake3"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores t. t.Token is the raw token; only its digest is persisted.
	Create(ctx context.Context, t *models.RefreshToken) error

	// Find returns the token's owner and expiry, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired drops the owner's tokens that expired before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, owner string, now time.Time) (int64, error)
}

// HashToken is the storage key of a raw refresh token.
func HashToken(token string) string {
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
