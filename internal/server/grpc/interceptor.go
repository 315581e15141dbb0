package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/grpcx"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	pb "github.com/dmitrijs2005/lamportvault/internal/proto"
	"github.com/dmitrijs2005/lamportvault/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// OwnerKey is the context key under which authenticated calls carry the
// owner address from the access token.
const OwnerKey ctxKey = "owner"

var protectedMethods = map[string]bool{
	pb.VaultService_Airdrop_FullMethodName:           true,
	pb.VaultService_SubmitTransaction_FullMethodName: true,
	pb.VaultService_ListReceipts_FullMethodName:      true,
}

// OwnerFromContext returns the owner set by the access token interceptor.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerKey).(string)
	return owner, ok && owner != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	owner, err := auth.GetOwnerFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, grpcx.ToStatus(err)
	}

	ctx = logging.ContextWith(context.WithValue(ctx, OwnerKey, owner), "owner", owner)
	return handler(ctx, req)
}

// requestID returns the caller supplied request id, or a fresh one.
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(common.RequestIDHeaderName); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	ctx = logging.ContextWith(ctx, "request_id", requestID(ctx))
	resp, err := handler(ctx, req)
	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}
	return resp, err
}
