// Package grpcx translates domain errors to gRPC statuses and back. The
// server attaches an errdetails.ErrorInfo to every status it can classify;
// the client uses it to restore the sentinel, so errors.Is works across the
// wire.
package grpcx

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/ledger"
	"github.com/dmitrijs2005/lamportvault/internal/vault"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain of every classified error.
const Domain = "lamportvault"

// MetadataCode holds the numeric vault error code.
const MetadataCode = "code"

type mapping struct {
	err    error
	code   codes.Code
	reason string
}

var mappings = []mapping{
	{ledger.ErrInsufficientFundsForFee, codes.FailedPrecondition, "INSUFFICIENT_FUNDS_FOR_FEE"},
	{ledger.ErrInsufficientFunds, codes.FailedPrecondition, "INSUFFICIENT_FUNDS"},
	{ledger.ErrOverflow, codes.FailedPrecondition, "OVERFLOW"},
	{ledger.ErrTransactionExpired, codes.FailedPrecondition, "TRANSACTION_EXPIRED"},
	{ledger.ErrDuplicateTransaction, codes.AlreadyExists, "DUPLICATE_TRANSACTION"},
	{ledger.ErrMissingSignature, codes.InvalidArgument, "MISSING_SIGNATURE"},
	{ledger.ErrInvalidSignature, codes.InvalidArgument, "INVALID_SIGNATURE"},
	{ledger.ErrAuthorityMismatch, codes.InvalidArgument, "AUTHORITY_MISMATCH"},
	{ledger.ErrAccountNotWritable, codes.InvalidArgument, "ACCOUNT_NOT_WRITABLE"},
	{ledger.ErrUnknownProgram, codes.InvalidArgument, "UNKNOWN_PROGRAM"},
	{ledger.ErrInvalidInstruction, codes.InvalidArgument, "INVALID_INSTRUCTION"},
	{ledger.ErrNotEnoughAccounts, codes.InvalidArgument, "NOT_ENOUGH_ACCOUNTS"},
	{ledger.ErrInvalidAccount, codes.InvalidArgument, "INVALID_ACCOUNT"},
	{ledger.ErrInvalidTransaction, codes.InvalidArgument, "INVALID_TRANSACTION"},
	{common.ErrInvalidAddress, codes.InvalidArgument, "INVALID_ADDRESS"},
	{common.ErrFaucetLimit, codes.InvalidArgument, "FAUCET_LIMIT"},
	{common.ErrorFaucetClosed, codes.FailedPrecondition, "FAUCET_CLOSED"},
	{common.ErrorForbidden, codes.PermissionDenied, "FORBIDDEN"},
	{common.ErrTokenExpired, codes.Unauthenticated, "TOKEN_EXPIRED"},
	{common.ErrInvalidToken, codes.Unauthenticated, "INVALID_TOKEN"},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated, "REFRESH_TOKEN_EXPIRED"},
	{common.ErrInvalidLoginProof, codes.Unauthenticated, "INVALID_LOGIN_PROOF"},
	{common.ErrLoginExpired, codes.Unauthenticated, "LOGIN_EXPIRED"},
	{common.ErrorUnauthorized, codes.Unauthenticated, "UNAUTHORIZED"},
	{common.ErrorNotFound, codes.NotFound, "NOT_FOUND"},
}

// ToStatus converts err to a gRPC status error. kv are extra key/value pairs
// for the ErrorInfo metadata. Unclassified errors become codes.Internal with
// a generic message.
func ToStatus(err error, kv ...string) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if kind := vault.KindOf(err); kind != vault.KindUnknown {
		md := metadata(kv)
		md[MetadataCode] = strconv.FormatUint(uint64(kind), 10)
		return withInfo(codes.FailedPrecondition, err.Error(), kind.String(), md)
	}

	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return withInfo(m.code, err.Error(), m.reason, metadata(kv))
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// FromStatus restores the sentinel behind a status produced by ToStatus. The
// returned error keeps the server's message. Other errors pass through.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}
	info := errorInfo(st)
	if info == nil {
		return err
	}

	if c, ok := info.GetMetadata()[MetadataCode]; ok {
		n, perr := strconv.ParseUint(c, 10, 32)
		if perr == nil {
			if sentinel, ok := vault.FromCode(uint32(n)); ok {
				return &remoteError{sentinel: sentinel, msg: st.Message(), status: err}
			}
		}
	}
	for _, m := range mappings {
		if m.reason == info.GetReason() {
			return &remoteError{sentinel: m.err, msg: st.Message(), status: err}
		}
	}
	return err
}

// Metadata returns the ErrorInfo metadata value for key, if err carries one.
func Metadata(err error, key string) string {
	var re *remoteError
	if errors.As(err, &re) {
		err = re.status
	}
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	return errorInfo(st).GetMetadata()[key]
}

type remoteError struct {
	sentinel error
	msg      string
	status   error
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.sentinel }

// GRPCStatus lets status.FromError and status.Code see the original status.
func (e *remoteError) GRPCStatus() *status.Status {
	st, _ := status.FromError(e.status)
	return st
}

func withInfo(code codes.Code, msg, reason string, md map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: Domain, Metadata: md})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func errorInfo(st *status.Status) *errdetails.ErrorInfo {
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info
		}
	}
	return nil
}

func metadata(kv []string) map[string]string {
	md := make(map[string]string, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		md[kv[i]] = kv[i+1]
	}
	return md
}
