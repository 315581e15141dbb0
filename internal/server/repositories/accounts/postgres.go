package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/lamportvault/internal/dbx"
)

// ErrBalanceTooLarge is returned for balances that do not fit the BIGINT column.
var ErrBalanceTooLarge = errors.New("balance exceeds storage range")

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lamports(ctx context.Context, address string) (uint64, error) {
	query := `
		SELECT lamports
		FROM accounts
		WHERE address = $1
	`
	var lamports int64
	if err := r.db.QueryRowContext(ctx, query, address).Scan(&lamports); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return uint64(lamports), nil
}

func (r *PostgresRepository) LockLamports(ctx context.Context, address string) (uint64, error) {
	insert := `
		INSERT INTO accounts (address, lamports)
		VALUES ($1, 0)
		ON CONFLICT (address) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, address); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}

	query := `
		SELECT lamports
		FROM accounts
		WHERE address = $1
		FOR UPDATE
	`
	var lamports int64
	if err := r.db.QueryRowContext(ctx, query, address).Scan(&lamports); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return uint64(lamports), nil
}

func (r *PostgresRepository) SetLamports(ctx context.Context, address string, lamports uint64) error {
	if lamports > math.MaxInt64 {
		return ErrBalanceTooLarge
	}
	query := `
		INSERT INTO accounts (address, lamports)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET lamports = EXCLUDED.lamports, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, address, int64(lamports)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
