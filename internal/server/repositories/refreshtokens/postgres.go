package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX, so it runs on the
// pool or inside a session transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.RefreshToken) error {
	const q = `INSERT INTO refresh_tokens (token_hash, owner, expires_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, q, HashToken(t.Token), t.Owner, t.Expires); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	const q = `SELECT owner, expires_at, created_at FROM refresh_tokens WHERE token_hash = $1`

	t := &models.RefreshToken{Token: token}
	err := r.db.QueryRowContext(ctx, q, HashToken(token)).Scan(&t.Owner, &t.Expires, &t.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, common.ErrorNotFound
	case err != nil:
		return nil, fmt.Errorf("select refresh token: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM refresh_tokens WHERE token_hash = $1`

	if _, err := r.db.ExecContext(ctx, q, HashToken(token)); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, owner string, now time.Time) (int64, error) {
	const q = `DELETE FROM refresh_tokens WHERE owner = $1 AND expires_at < $2`

	res, err := r.db.ExecContext(ctx, q, owner, now)
	if err != nil {
		return 0, fmt.Errorf("purge refresh tokens: %w", err)
	}
	return res.RowsAffected()
}
