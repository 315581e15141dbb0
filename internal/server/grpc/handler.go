package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/grpcx"
	pb "github.com/dmitrijs2005/lamportvault/internal/proto"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetProgramInfo(ctx context.Context, req *pb.GetProgramInfoRequest) (*pb.GetProgramInfoResponse, error) {
	info := s.ledger.ProgramInfo()
	return &pb.GetProgramInfoResponse{
		ProgramId:            info.ProgramID.String(),
		RentExemptMinimum:    info.RentExemptMinimum,
		LamportsPerSignature: info.LamportsPerSignature,
		FaucetEnabled:        info.FaucetEnabled,
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	tokens, err := s.sessions.Login(ctx, req.GetOwner(), req.GetTimestamp(), req.GetSignature())
	if err != nil {
		s.logger.Info(ctx, "Login rejected", "owner", req.GetOwner(), "error", err)
		return nil, grpcx.ToStatus(err)
	}

	s.logger.Info(ctx, "Logged in", "owner", req.GetOwner())
	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	tokens, err := s.sessions.RefreshToken(ctx, req.GetRefreshToken())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, grpcx.ToStatus(common.ErrInvalidToken)
		}
		return nil, grpcx.ToStatus(err)
	}
	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) DeriveVault(ctx context.Context, req *pb.DeriveVaultRequest) (*pb.DeriveVaultResponse, error) {
	vault, nonce, err := s.ledger.DeriveVault(req.GetOwner())
	if err != nil {
		return nil, grpcx.ToStatus(err)
	}
	return &pb.DeriveVaultResponse{Vault: vault.String(), Nonce: uint32(nonce)}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	lamports, err := s.ledger.Balance(ctx, req.GetAddress())
	if err != nil {
		return nil, grpcx.ToStatus(err)
	}
	return &pb.GetBalanceResponse{Lamports: lamports}, nil
}

func (s *GRPCServer) Airdrop(ctx context.Context, req *pb.AirdropRequest) (*pb.AirdropResponse, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "owner missing from context")
	}
	balance, err := s.ledger.Airdrop(ctx, owner, req.GetLamports())
	if err != nil {
		return nil, grpcx.ToStatus(err)
	}
	return &pb.AirdropResponse{Balance: balance}, nil
}

func (s *GRPCServer) SubmitTransaction(ctx context.Context, req *pb.SubmitTransactionRequest) (*pb.SubmitTransactionResponse, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "owner missing from context")
	}
	rc, err := s.ledger.Submit(ctx, owner, req.GetTransaction())
	if err != nil {
		if rc != nil {
			return nil, grpcx.ToStatus(err, "receipt_id", rc.ID, "tx_id", rc.TxID)
		}
		return nil, grpcx.ToStatus(err)
	}
	return &pb.SubmitTransactionResponse{Receipt: receiptToProto(rc)}, nil
}

func (s *GRPCServer) ListReceipts(ctx context.Context, req *pb.ListReceiptsRequest) (*pb.ListReceiptsResponse, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "owner missing from context")
	}
	list, err := s.ledger.ListReceipts(ctx, owner, int(req.GetLimit()))
	if err != nil {
		return nil, grpcx.ToStatus(err)
	}
	resp := &pb.ListReceiptsResponse{Receipts: make([]*pb.Receipt, 0, len(list))}
	for _, rc := range list {
		resp.Receipts = append(resp.Receipts, receiptToProto(rc))
	}
	return resp, nil
}

func receiptToProto(rc *models.Receipt) *pb.Receipt {
	return &pb.Receipt{
		Id:            rc.ID,
		TxId:          rc.TxID,
		Signer:        rc.Signer,
		Instruction:   rc.Instruction,
		Amount:        rc.Amount,
		Fee:           rc.Fee,
		Status:        rc.Status,
		Error:         rc.Error,
		Vault:         rc.Vault,
		VaultBalance:  rc.VaultBalance,
		SignerBalance: rc.SignerBalance,
		CreatedAt:     rc.CreatedAt.UnixNano(),
	}
}
