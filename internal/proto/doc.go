// Package proto defines the lamportvault.v1.VaultService gRPC contract: the
// request and response messages, their protobuf wire encoding, the codec
// registered with grpc-go, the client stub and the server registration.
//
// Messages are encoded with google.golang.org/protobuf/encoding/protowire and
// are wire compatible with this schema:
//
//	service VaultService {
//	  rpc Ping(PingRequest) returns (PingResponse);
//	  rpc GetProgramInfo(GetProgramInfoRequest) returns (GetProgramInfoResponse);
//	  rpc Login(LoginRequest) returns (LoginResponse);
//	  rpc RefreshToken(RefreshTokenRequest) returns (RefreshTokenResponse);
//	  rpc DeriveVault(DeriveVaultRequest) returns (DeriveVaultResponse);
//	  rpc GetBalance(GetBalanceRequest) returns (GetBalanceResponse);
//	  rpc Airdrop(AirdropRequest) returns (AirdropResponse);
//	  rpc SubmitTransaction(SubmitTransactionRequest) returns (SubmitTransactionResponse);
//	  rpc ListReceipts(ListReceiptsRequest) returns (ListReceiptsResponse);
//	}
package proto
