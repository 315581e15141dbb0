package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const VaultServiceName = "lamportvault.v1.VaultService"

const (
	VaultService_Ping_FullMethodName              = "/lamportvault.v1.VaultService/Ping"
	VaultService_GetProgramInfo_FullMethodName    = "/lamportvault.v1.VaultService/GetProgramInfo"
	VaultService_Login_FullMethodName             = "/lamportvault.v1.VaultService/Login"
	VaultService_RefreshToken_FullMethodName      = "/lamportvault.v1.VaultService/RefreshToken"
	VaultService_DeriveVault_FullMethodName       = "/lamportvault.v1.VaultService/DeriveVault"
	VaultService_GetBalance_FullMethodName        = "/lamportvault.v1.VaultService/GetBalance"
	VaultService_Airdrop_FullMethodName           = "/lamportvault.v1.VaultService/Airdrop"
	VaultService_SubmitTransaction_FullMethodName = "/lamportvault.v1.VaultService/SubmitTransaction"
	VaultService_ListReceipts_FullMethodName      = "/lamportvault.v1.VaultService/ListReceipts"
)

// VaultServiceClient is the client API for VaultService.
type VaultServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetProgramInfo(ctx context.Context, in *GetProgramInfoRequest, opts ...grpc.CallOption) (*GetProgramInfoResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	DeriveVault(ctx context.Context, in *DeriveVaultRequest, opts ...grpc.CallOption) (*DeriveVaultResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	Airdrop(ctx context.Context, in *AirdropRequest, opts ...grpc.CallOption) (*AirdropResponse, error)
	SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error)
	ListReceipts(ctx context.Context, in *ListReceiptsRequest, opts ...grpc.CallOption) (*ListReceiptsResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, VaultService_Ping_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetProgramInfo(ctx context.Context, in *GetProgramInfoRequest, opts ...grpc.CallOption) (*GetProgramInfoResponse, error) {
	return invoke[GetProgramInfoResponse](ctx, c.cc, VaultService_GetProgramInfo_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, VaultService_Login_FullMethodName, in, opts)
}

func (c *vaultServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, VaultService_RefreshToken_FullMethodName, in, opts)
}

func (c *vaultServiceClient) DeriveVault(ctx context.Context, in *DeriveVaultRequest, opts ...grpc.CallOption) (*DeriveVaultResponse, error) {
	return invoke[DeriveVaultResponse](ctx, c.cc, VaultService_DeriveVault_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, VaultService_GetBalance_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Airdrop(ctx context.Context, in *AirdropRequest, opts ...grpc.CallOption) (*AirdropResponse, error) {
	return invoke[AirdropResponse](ctx, c.cc, VaultService_Airdrop_FullMethodName, in, opts)
}

func (c *vaultServiceClient) SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error) {
	return invoke[SubmitTransactionResponse](ctx, c.cc, VaultService_SubmitTransaction_FullMethodName, in, opts)
}

func (c *vaultServiceClient) ListReceipts(ctx context.Context, in *ListReceiptsRequest, opts ...grpc.CallOption) (*ListReceiptsResponse, error) {
	return invoke[ListReceiptsResponse](ctx, c.cc, VaultService_ListReceipts_FullMethodName, in, opts)
}

// VaultServiceServer is the server API for VaultService. Implementations
// must embed UnimplementedVaultServiceServer.
type VaultServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetProgramInfo(context.Context, *GetProgramInfoRequest) (*GetProgramInfoResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	DeriveVault(context.Context, *DeriveVaultRequest) (*DeriveVaultResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	Airdrop(context.Context, *AirdropRequest) (*AirdropResponse, error)
	SubmitTransaction(context.Context, *SubmitTransactionRequest) (*SubmitTransactionResponse, error)
	ListReceipts(context.Context, *ListReceiptsRequest) (*ListReceiptsResponse, error)
	mustEmbedUnimplementedVaultServiceServer()
}

type UnimplementedVaultServiceServer struct{}

func (UnimplementedVaultServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedVaultServiceServer) GetProgramInfo(context.Context, *GetProgramInfoRequest) (*GetProgramInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProgramInfo not implemented")
}
func (UnimplementedVaultServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedVaultServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedVaultServiceServer) DeriveVault(context.Context, *DeriveVaultRequest) (*DeriveVaultResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeriveVault not implemented")
}
func (UnimplementedVaultServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedVaultServiceServer) Airdrop(context.Context, *AirdropRequest) (*AirdropResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Airdrop not implemented")
}
func (UnimplementedVaultServiceServer) SubmitTransaction(context.Context, *SubmitTransactionRequest) (*SubmitTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitTransaction not implemented")
}
func (UnimplementedVaultServiceServer) ListReceipts(context.Context, *ListReceiptsRequest) (*ListReceiptsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListReceipts not implemented")
}
func (UnimplementedVaultServiceServer) mustEmbedUnimplementedVaultServiceServer() {}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

func unary[Req any, Resp any](name string, call func(VaultServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + VaultServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(VaultServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// VaultService_ServiceDesc is the grpc.ServiceDesc for VaultService.
var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: VaultServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", VaultServiceServer.Ping),
		unary("GetProgramInfo", VaultServiceServer.GetProgramInfo),
		unary("Login", VaultServiceServer.Login),
		unary("RefreshToken", VaultServiceServer.RefreshToken),
		unary("DeriveVault", VaultServiceServer.DeriveVault),
		unary("GetBalance", VaultServiceServer.GetBalance),
		unary("Airdrop", VaultServiceServer.Airdrop),
		unary("SubmitTransaction", VaultServiceServer.SubmitTransaction),
		unary("ListReceipts", VaultServiceServer.ListReceipts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lamportvault/v1/vault.proto",
}
