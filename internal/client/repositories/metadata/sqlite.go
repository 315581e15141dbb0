package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/dbx"
)

// SQLiteRepository keeps addresses in their base58 form in the metadata table.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) GetAddress(ctx context.Context, key string) (address.Address, bool, error) {
	var text string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return address.Address{}, false, nil
	}
	if err != nil {
		return address.Address{}, false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}

	addr, err := address.Parse(text)
	if err != nil {
		return address.Address{}, false, fmt.Errorf("metadata[%s] holds %q: %w", key, text, err)
	}
	return addr, true, nil
}

func (r *SQLiteRepository) SetAddress(ctx context.Context, key string, addr address.Address) error {
	const q = `INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, q, key, addr.String(), r.now().UnixNano()); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
