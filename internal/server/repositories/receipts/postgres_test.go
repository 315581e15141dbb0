package receipts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+receipts\b.*VALUES\s*\(\$1,.*\$12\)\s*$`
	listQuery   = `(?s)^SELECT\s+id,\s*tx_id,\s*signer,.*FROM\s+receipts\s+WHERE\s+signer\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2\s*$`
)

var receiptColumns = []string{"id", "tx_id", "signer", "instruction", "amount", "fee", "status", "error", "vault", "vault_balance", "signer_balance", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func sampleReceipt(at time.Time) *models.Receipt {
	return &models.Receipt{
		ID:            "3b0f7f62-9c4e-4f55-9a4b-1f1c6e7c2a10",
		TxID:          "0e6f3c55-2b1d-4d8e-8f43-7a1c9b2d5e60",
		Signer:        "owner",
		Instruction:   "deposit",
		Amount:        1_000_000,
		Fee:           5000,
		Status:        models.ReceiptStatusOK,
		Vault:         "vault",
		VaultBalance:  1_000_000,
		SignerBalance: 8_995_000,
		CreatedAt:     at,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now().UTC()
	rc := sampleReceipt(at)
	mock.ExpectExec(insertQuery).
		WithArgs(rc.ID, rc.TxID, "owner", "deposit", int64(1_000_000), int64(5000), "ok", "", "vault", int64(1_000_000), int64(8_995_000), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rc))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sampleReceipt(time.Now()))
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`error performing sql request: .*db down`), err.Error())
}

func TestListBySigner_Rows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	newer := time.Now().UTC()
	older := newer.Add(-time.Minute)
	rows := sqlmock.NewRows(receiptColumns).
		AddRow("id-2", "tx-2", "owner", "withdraw", int64(1_000_000), int64(5000), "ok", "", "vault", int64(0), int64(9_990_000), newer).
		AddRow("id-1", "tx-1", "owner", "deposit", int64(500), int64(0), "failed", "InvalidAmount (6001): Invalid amount", "vault", int64(0), int64(0), older)

	mock.ExpectQuery(listQuery).WithArgs("owner", 10).WillReturnRows(rows)

	got, err := repo.ListBySigner(context.Background(), "owner", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-2", got[0].ID)
	assert.Equal(t, uint64(9_990_000), got[0].SignerBalance)
	assert.False(t, got[1].OK())
	assert.Equal(t, uint64(500), got[1].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySigner_DefaultLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("owner", DefaultListLimit).WillReturnRows(sqlmock.NewRows(receiptColumns))

	got, err := repo.ListBySigner(context.Background(), "owner", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySigner_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db err"))

	_, err := repo.ListBySigner(context.Background(), "owner", 5)
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestListBySigner_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(receiptColumns).
		AddRow("id", "tx", "owner", "deposit", "not-a-number", int64(0), "ok", "", "", int64(0), int64(0), time.Now())
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	_, err := repo.ListBySigner(context.Background(), "owner", 5)
	require.Error(t, err)
}
