package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quickPolicy retries without noticeable waits.
func quickPolicy(attempts int) RetryPolicy {
	return RetryPolicy{Attempts: attempts, BaseDelay: time.Microsecond}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestWithTxRetry_RerunsSerializationFailures(t *testing.T) {
	db := openLedger(t)

	calls := 0
	err := WithTxRetry(context.Background(), db, nil, quickPolicy(3), func(ctx context.Context, tx DBTX) error {
		calls++
		if err := move(ctx, tx, 100); err != nil {
			return err
		}
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.EqualValues(t, 900, lamportsOf(t, db, "payer"), "only the last attempt commits")
	assert.EqualValues(t, 100, lamportsOf(t, db, "vault"))
}

func TestWithTxRetry_GivesUp(t *testing.T) {
	db := openLedger(t)

	calls := 0
	err := WithTxRetry(context.Background(), db, nil, quickPolicy(2), func(ctx context.Context, tx DBTX) error {
		calls++
		return &pgconn.PgError{Code: "40P01"}
	})
	require.True(t, IsRetryable(err))
	assert.Equal(t, 2, calls)
}

func TestWithTxRetry_StopsOnOtherErrors(t *testing.T) {
	db := openLedger(t)

	calls := 0
	boom := errors.New("boom")
	err := WithTxRetry(context.Background(), db, nil, quickPolicy(5), func(ctx context.Context, tx DBTX) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithTxRetry_BacksOffExponentially(t *testing.T) {
	db := openLedger(t)
	base := 20 * time.Millisecond

	var starts []time.Time
	err := WithTxRetry(context.Background(), db, nil, RetryPolicy{Attempts: 3, BaseDelay: base},
		func(ctx context.Context, tx DBTX) error {
			starts = append(starts, time.Now())
			return &pgconn.PgError{Code: "40001"}
		})
	require.True(t, IsRetryable(err))
	require.Len(t, starts, 3)

	assert.GreaterOrEqual(t, starts[1].Sub(starts[0]), base)
	assert.GreaterOrEqual(t, starts[2].Sub(starts[1]), 2*base)
}

func TestWithTxRetry_WaitEndsWithContext(t *testing.T) {
	db := openLedger(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	began := time.Now()
	err := WithTxRetry(ctx, db, nil, RetryPolicy{Attempts: 5, BaseDelay: time.Hour},
		func(ctx context.Context, tx DBTX) error {
			calls++
			cancel()
			return &pgconn.PgError{Code: "40001"}
		})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(began), time.Minute)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Greater(t, p.Attempts, 1)
	assert.Positive(t, p.BaseDelay)
	assert.GreaterOrEqual(t, p.MaxDelay, p.BaseDelay)
}
