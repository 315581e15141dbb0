package dbx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// PostgreSQL SQLSTATE codes after which a transaction may be rerun.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// RetryPolicy controls how WithTxRetry spaces its attempts. The delay starts
// at BaseDelay, doubles after every failure up to MaxDelay and is jittered by
// JitterPercent.
type RetryPolicy struct {
	Attempts      int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	JitterPercent uint64
}

// DefaultRetryPolicy suits short ledger steps contending for a few rows.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:      10,
		BaseDelay:     5 * time.Millisecond,
		MaxDelay:      250 * time.Millisecond,
		JitterPercent: 50,
	}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	if p.JitterPercent > 0 && p.JitterPercent <= 100 {
		b = retry.WithJitterPercent(p.JitterPercent, b)
	}
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), b)
}

// IsRetryable reports whether err is a serialization failure or a deadlock
// reported by PostgreSQL.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}

// WithTxRetry runs fn through WithTx, rerunning it in a fresh transaction
// while the failure IsRetryable and the policy allows another attempt. The
// wait between attempts ends early when ctx is done. fn must not keep state
// between runs.
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, policy RetryPolicy, fn TxFunc) error {
	return retry.Do(ctx, policy.backoff(), func(ctx context.Context) error {
		err := WithTx(ctx, db, opts, fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
