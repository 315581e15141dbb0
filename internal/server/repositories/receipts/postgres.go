package receipts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts r into the receipts table.
func (r *PostgresRepository) Create(ctx context.Context, rc *models.Receipt) error {
	query := `
		INSERT INTO receipts (id, tx_id, signer, instruction, amount, fee, status, error, vault, vault_balance, signer_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		rc.ID, rc.TxID, rc.Signer, rc.Instruction,
		int64(rc.Amount), int64(rc.Fee),
		rc.Status, rc.Error, rc.Vault,
		int64(rc.VaultBalance), int64(rc.SignerBalance),
		rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// ListBySigner returns the newest receipts of signer.
func (r *PostgresRepository) ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error) {
	query := `
		SELECT id, tx_id, signer, instruction, amount, fee, status, error, vault, vault_balance, signer_balance, created_at
		FROM receipts
		WHERE signer = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, signer, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Receipt
	for rows.Next() {
		var (
			rc                               models.Receipt
			amount, fee, vaultBal, signerBal int64
		)
		if err := rows.Scan(&rc.ID, &rc.TxID, &rc.Signer, &rc.Instruction, &amount, &fee, &rc.Status, &rc.Error, &rc.Vault, &vaultBal, &signerBal, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rc.Amount, rc.Fee = uint64(amount), uint64(fee)
		rc.VaultBalance, rc.SignerBalance = uint64(vaultBal), uint64(signerBal)
		result = append(result, &rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
