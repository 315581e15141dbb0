package client

import (
	"errors"

	"github.com/dmitrijs2005/lamportvault/internal/grpcx"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ReceiptID returns the id of the receipt the node recorded for a failed
// submission, or "" when there is none.
func ReceiptID(err error) string {
	return grpcx.Metadata(err, "receipt_id")
}
