package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, rc *models.Receipt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (id, tx_id, signer, instruction, amount, fee, status, error, vault,
			vault_balance, signer_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			vault_balance = excluded.vault_balance,
			signer_balance = excluded.signer_balance
	`, rc.ID, rc.TxID, rc.Signer, rc.Instruction, int64(rc.Amount), int64(rc.Fee), rc.Status, rc.Error, rc.Vault,
		int64(rc.VaultBalance), int64(rc.SignerBalance), rc.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", rc.ID, err)
	}
	return nil
}

// ListBySigner returns the newest receipts of signer first. A non-positive
// limit returns everything.
func (r *SQLiteRepository) ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tx_id, signer, instruction, amount, fee, status, error, vault,
			vault_balance, signer_balance, created_at
		FROM receipts
		WHERE signer = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, signer, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var result []*models.Receipt
	for rows.Next() {
		var (
			rc                                     models.Receipt
			amount, fee, vaultBal, signerBal, when int64
		)
		if err := rows.Scan(&rc.ID, &rc.TxID, &rc.Signer, &rc.Instruction, &amount, &fee, &rc.Status, &rc.Error,
			&rc.Vault, &vaultBal, &signerBal, &when); err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		rc.Amount = uint64(amount)
		rc.Fee = uint64(fee)
		rc.VaultBalance = uint64(vaultBal)
		rc.SignerBalance = uint64(signerBal)
		rc.CreatedAt = time.Unix(0, when).UTC()
		result = append(result, &rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipt rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM receipts`)
	if err != nil {
		return fmt.Errorf("failed to clear receipts: %w", err)
	}
	return nil
}
