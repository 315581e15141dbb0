package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/client/models"
	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/grpcx"
	pb "github.com/dmitrijs2005/lamportvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.VaultServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated {
		return false
	}
	return st.Message() == common.ErrTokenExpired.Error() || errors.Is(grpcx.FromStatus(err), common.ErrTokenExpired)
}

// accessTokenInterceptor attaches the access token and, when the node says it
// expired, rotates the pair once and repeats the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()
	if access == "" || method == pb.VaultService_RefreshToken_FullMethodName {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.GetAccessToken(), resp.GetRefreshToken())

	return invoker(withAccessToken(ctx, resp.GetAccessToken()), method, req, reply, cc, opts...)
}

func NewVaultClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewVaultServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) ProgramInfo(ctx context.Context) (*models.ProgramInfo, error) {
	resp, err := s.client.GetProgramInfo(ctx, &pb.GetProgramInfoRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.ProgramInfo{
		ProgramID:            resp.GetProgramId(),
		RentExemptMinimum:    resp.GetRentExemptMinimum(),
		LamportsPerSignature: resp.GetLamportsPerSignature(),
		FaucetEnabled:        resp.GetFaucetEnabled(),
	}, nil
}

func (s *GRPCClient) Login(ctx context.Context, owner string, timestamp int64, signature []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Owner: owner, Timestamp: timestamp, Signature: signature})
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.GetAccessToken(), resp.GetRefreshToken())
	return nil
}

// Logout forgets the session tokens. The refresh token expires on the node.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) DeriveVault(ctx context.Context, owner string) (string, uint8, error) {
	resp, err := s.client.DeriveVault(ctx, &pb.DeriveVaultRequest{Owner: owner})
	if err != nil {
		return "", 0, s.mapError(err)
	}
	return resp.GetVault(), uint8(resp.GetNonce()), nil
}

func (s *GRPCClient) Balance(ctx context.Context, address string) (uint64, error) {
	resp, err := s.client.GetBalance(ctx, &pb.GetBalanceRequest{Address: address})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.GetLamports(), nil
}

func (s *GRPCClient) Airdrop(ctx context.Context, lamports uint64) (uint64, error) {
	resp, err := s.client.Airdrop(ctx, &pb.AirdropRequest{Lamports: lamports})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.GetBalance(), nil
}

func (s *GRPCClient) SubmitTransaction(ctx context.Context, raw []byte) (*models.Receipt, error) {
	resp, err := s.client.SubmitTransaction(ctx, &pb.SubmitTransactionRequest{Transaction: raw})
	if err != nil {
		return nil, s.mapError(err)
	}
	return receiptFromProto(resp.GetReceipt()), nil
}

func (s *GRPCClient) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	if limit < 0 {
		limit = 0
	}
	resp, err := s.client.ListReceipts(ctx, &pb.ListReceiptsRequest{Limit: uint32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]*models.Receipt, 0, len(resp.GetReceipts()))
	for _, r := range resp.GetReceipts() {
		out = append(out, receiptFromProto(r))
	}
	return out, nil
}

func receiptFromProto(r *pb.Receipt) *models.Receipt {
	if r == nil {
		return nil
	}
	return &models.Receipt{
		ID:            r.GetId(),
		TxID:          r.GetTxId(),
		Signer:        r.GetSigner(),
		Instruction:   r.GetInstruction(),
		Amount:        r.GetAmount(),
		Fee:           r.GetFee(),
		Status:        r.GetStatus(),
		Error:         r.GetError(),
		Vault:         r.GetVault(),
		VaultBalance:  r.GetVaultBalance(),
		SignerBalance: r.GetSignerBalance(),
		CreatedAt:     time.Unix(0, r.GetCreatedAt()).UTC(),
	}
}

// mapError turns a status into ErrUnavailable, a restored domain sentinel, or
// ErrUnauthorized. Auth failures wrap both ErrUnauthorized and the sentinel.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}

	restored := grpcx.FromStatus(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if restored != err {
			return fmt.Errorf("%w: %w", ErrUnauthorized, restored)
		}
		return ErrUnauthorized
	}
	if restored != err {
		return restored
	}
	return fmt.Errorf("rpc error: %w", err)
}
