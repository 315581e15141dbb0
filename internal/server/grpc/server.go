// Package grpc exposes the vault node over gRPC: sessions, program
// information, balances, the faucet, transaction submission and receipts.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/logging"
	pb "github.com/dmitrijs2005/lamportvault/internal/proto"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/dmitrijs2005/lamportvault/internal/server/services"
	"google.golang.org/grpc"
)

type sessionSvc interface {
	Login(ctx context.Context, owner string, timestamp int64, signature []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type ledgerSvc interface {
	ProgramInfo() services.ProgramInfo
	DeriveVault(owner string) (address.Address, uint8, error)
	Balance(ctx context.Context, addr string) (uint64, error)
	Airdrop(ctx context.Context, owner string, lamports uint64) (uint64, error)
	Submit(ctx context.Context, caller string, raw []byte) (*models.Receipt, error)
	ListReceipts(ctx context.Context, owner string, limit int) ([]*models.Receipt, error)
}

type GRPCServer struct {
	pb.UnimplementedVaultServiceServer
	address   string
	sessions  sessionSvc
	ledger    ledgerSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ss sessionSvc, ls ledgerSvc, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		sessions:  ss,
		ledger:    ls,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Run serves until ctx is canceled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterVaultServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
