package proto

import "google.golang.org/protobuf/encoding/protowire"

type PingRequest struct{}

func (x *PingRequest) MarshalWire() ([]byte, error) { return nil, nil }

func (x *PingRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return skip, nil })
}

type PingResponse struct {
	Status string
}

func (x *PingResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *PingResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.Status)
	return e.b, nil
}

func (x *PingResponse) UnmarshalWire(b []byte) error {
	*x = PingResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.Status)
		}
		return skip, nil
	})
}

type GetProgramInfoRequest struct{}

func (x *GetProgramInfoRequest) MarshalWire() ([]byte, error) { return nil, nil }

func (x *GetProgramInfoRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return skip, nil })
}

// GetProgramInfoResponse describes the vault program and the ledger economics.
type GetProgramInfoResponse struct {
	ProgramId            string
	RentExemptMinimum    uint64
	LamportsPerSignature uint64
	FaucetEnabled        bool
}

func (x *GetProgramInfoResponse) GetProgramId() string {
	if x != nil {
		return x.ProgramId
	}
	return ""
}

func (x *GetProgramInfoResponse) GetRentExemptMinimum() uint64 {
	if x != nil {
		return x.RentExemptMinimum
	}
	return 0
}

func (x *GetProgramInfoResponse) GetLamportsPerSignature() uint64 {
	if x != nil {
		return x.LamportsPerSignature
	}
	return 0
}

func (x *GetProgramInfoResponse) GetFaucetEnabled() bool {
	if x != nil {
		return x.FaucetEnabled
	}
	return false
}

func (x *GetProgramInfoResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.ProgramId)
	e.uint64(2, x.RentExemptMinimum)
	e.uint64(3, x.LamportsPerSignature)
	e.bool(4, x.FaucetEnabled)
	return e.b, nil
}

func (x *GetProgramInfoResponse) UnmarshalWire(b []byte) error {
	*x = GetProgramInfoResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.ProgramId)
		case 2:
			return readUint64(typ, v, &x.RentExemptMinimum)
		case 3:
			return readUint64(typ, v, &x.LamportsPerSignature)
		case 4:
			return readBool(typ, v, &x.FaucetEnabled)
		}
		return skip, nil
	})
}

// LoginRequest proves possession of the owner key: Signature is an ed25519
// signature over the login challenge for Timestamp (unix seconds).
type LoginRequest struct {
	Owner     string
	Timestamp int64
	Signature []byte
}

func (x *LoginRequest) GetOwner() string {
	if x != nil {
		return x.Owner
	}
	return ""
}

func (x *LoginRequest) GetTimestamp() int64 {
	if x != nil {
		return x.Timestamp
	}
	return 0
}

func (x *LoginRequest) GetSignature() []byte {
	if x != nil {
		return x.Signature
	}
	return nil
}

func (x *LoginRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.Owner)
	e.int64(2, x.Timestamp)
	e.bytes(3, x.Signature)
	return e.b, nil
}

func (x *LoginRequest) UnmarshalWire(b []byte) error {
	*x = LoginRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.Owner)
		case 2:
			return readInt64(typ, v, &x.Timestamp)
		case 3:
			return readBytes(typ, v, &x.Signature)
		}
		return skip, nil
	})
}

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
}

func (x *LoginResponse) GetAccessToken() string {
	if x != nil {
		return x.AccessToken
	}
	return ""
}

func (x *LoginResponse) GetRefreshToken() string {
	if x != nil {
		return x.RefreshToken
	}
	return ""
}

func (x *LoginResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.AccessToken)
	e.string(2, x.RefreshToken)
	return e.b, nil
}

func (x *LoginResponse) UnmarshalWire(b []byte) error {
	*x = LoginResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.AccessToken)
		case 2:
			return readString(typ, v, &x.RefreshToken)
		}
		return skip, nil
	})
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (x *RefreshTokenRequest) GetRefreshToken() string {
	if x != nil {
		return x.RefreshToken
	}
	return ""
}

func (x *RefreshTokenRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.RefreshToken)
	return e.b, nil
}

func (x *RefreshTokenRequest) UnmarshalWire(b []byte) error {
	*x = RefreshTokenRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.RefreshToken)
		}
		return skip, nil
	})
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

func (x *RefreshTokenResponse) GetAccessToken() string {
	if x != nil {
		return x.AccessToken
	}
	return ""
}

func (x *RefreshTokenResponse) GetRefreshToken() string {
	if x != nil {
		return x.RefreshToken
	}
	return ""
}

func (x *RefreshTokenResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.AccessToken)
	e.string(2, x.RefreshToken)
	return e.b, nil
}

func (x *RefreshTokenResponse) UnmarshalWire(b []byte) error {
	*x = RefreshTokenResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.AccessToken)
		case 2:
			return readString(typ, v, &x.RefreshToken)
		}
		return skip, nil
	})
}

type DeriveVaultRequest struct {
	Owner string
}

func (x *DeriveVaultRequest) GetOwner() string {
	if x != nil {
		return x.Owner
	}
	return ""
}

func (x *DeriveVaultRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.Owner)
	return e.b, nil
}

func (x *DeriveVaultRequest) UnmarshalWire(b []byte) error {
	*x = DeriveVaultRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.Owner)
		}
		return skip, nil
	})
}

type DeriveVaultResponse struct {
	Vault string
	Nonce uint32
}

func (x *DeriveVaultResponse) GetVault() string {
	if x != nil {
		return x.Vault
	}
	return ""
}

func (x *DeriveVaultResponse) GetNonce() uint32 {
	if x != nil {
		return x.Nonce
	}
	return 0
}

func (x *DeriveVaultResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.Vault)
	e.uint64(2, uint64(x.Nonce))
	return e.b, nil
}

func (x *DeriveVaultResponse) UnmarshalWire(b []byte) error {
	*x = DeriveVaultResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.Vault)
		case 2:
			return readUint32(typ, v, &x.Nonce)
		}
		return skip, nil
	})
}

type GetBalanceRequest struct {
	Address string
}

func (x *GetBalanceRequest) GetAddress() string {
	if x != nil {
		return x.Address
	}
	return ""
}

func (x *GetBalanceRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.Address)
	return e.b, nil
}

func (x *GetBalanceRequest) UnmarshalWire(b []byte) error {
	*x = GetBalanceRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.Address)
		}
		return skip, nil
	})
}

type GetBalanceResponse struct {
	Lamports uint64
}

func (x *GetBalanceResponse) GetLamports() uint64 {
	if x != nil {
		return x.Lamports
	}
	return 0
}

func (x *GetBalanceResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.uint64(1, x.Lamports)
	return e.b, nil
}

func (x *GetBalanceResponse) UnmarshalWire(b []byte) error {
	*x = GetBalanceResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readUint64(typ, v, &x.Lamports)
		}
		return skip, nil
	})
}

type AirdropRequest struct {
	Lamports uint64
}

func (x *AirdropRequest) GetLamports() uint64 {
	if x != nil {
		return x.Lamports
	}
	return 0
}

func (x *AirdropRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.uint64(1, x.Lamports)
	return e.b, nil
}

func (x *AirdropRequest) UnmarshalWire(b []byte) error {
	*x = AirdropRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readUint64(typ, v, &x.Lamports)
		}
		return skip, nil
	})
}

type AirdropResponse struct {
	Balance uint64
}

func (x *AirdropResponse) GetBalance() uint64 {
	if x != nil {
		return x.Balance
	}
	return 0
}

func (x *AirdropResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.uint64(1, x.Balance)
	return e.b, nil
}

func (x *AirdropResponse) UnmarshalWire(b []byte) error {
	*x = AirdropResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readUint64(typ, v, &x.Balance)
		}
		return skip, nil
	})
}

// SubmitTransactionRequest carries a signed ledger transaction in its binary form.
type SubmitTransactionRequest struct {
	Transaction []byte
}

func (x *SubmitTransactionRequest) GetTransaction() []byte {
	if x != nil {
		return x.Transaction
	}
	return nil
}

func (x *SubmitTransactionRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.bytes(1, x.Transaction)
	return e.b, nil
}

func (x *SubmitTransactionRequest) UnmarshalWire(b []byte) error {
	*x = SubmitTransactionRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readBytes(typ, v, &x.Transaction)
		}
		return skip, nil
	})
}

type SubmitTransactionResponse struct {
	Receipt *Receipt
}

func (x *SubmitTransactionResponse) GetReceipt() *Receipt {
	if x != nil {
		return x.Receipt
	}
	return nil
}

func (x *SubmitTransactionResponse) MarshalWire() ([]byte, error) {
	var e encoder
	if x.Receipt != nil {
		if err := e.message(1, x.Receipt); err != nil {
			return nil, err
		}
	}
	return e.b, nil
}

func (x *SubmitTransactionResponse) UnmarshalWire(b []byte) error {
	*x = SubmitTransactionResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			x.Receipt = &Receipt{}
			return readMessage(typ, v, x.Receipt)
		}
		return skip, nil
	})
}

type ListReceiptsRequest struct {
	Limit uint32
}

func (x *ListReceiptsRequest) GetLimit() uint32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

func (x *ListReceiptsRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.uint64(1, uint64(x.Limit))
	return e.b, nil
}

func (x *ListReceiptsRequest) UnmarshalWire(b []byte) error {
	*x = ListReceiptsRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readUint32(typ, v, &x.Limit)
		}
		return skip, nil
	})
}

type ListReceiptsResponse struct {
	Receipts []*Receipt
}

func (x *ListReceiptsResponse) GetReceipts() []*Receipt {
	if x != nil {
		return x.Receipts
	}
	return nil
}

func (x *ListReceiptsResponse) MarshalWire() ([]byte, error) {
	var e encoder
	for _, m := range x.Receipts {
		if err := e.message(1, m); err != nil {
			return nil, err
		}
	}
	return e.b, nil
}

func (x *ListReceiptsResponse) UnmarshalWire(b []byte) error {
	*x = ListReceiptsResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			m := &Receipt{}
			x.Receipts = append(x.Receipts, m)
			return readMessage(typ, v, m)
		}
		return skip, nil
	})
}

// Receipt is the outcome of a submitted transaction. CreatedAt is unix
// nanoseconds.
type Receipt struct {
	Id            string
	TxId          string
	Signer        string
	Instruction   string
	Amount        uint64
	Fee           uint64
	Status        string
	Error         string
	Vault         string
	VaultBalance  uint64
	SignerBalance uint64
	CreatedAt     int64
}

func (x *Receipt) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Receipt) GetTxId() string {
	if x != nil {
		return x.TxId
	}
	return ""
}

func (x *Receipt) GetSigner() string {
	if x != nil {
		return x.Signer
	}
	return ""
}

func (x *Receipt) GetInstruction() string {
	if x != nil {
		return x.Instruction
	}
	return ""
}

func (x *Receipt) GetAmount() uint64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

func (x *Receipt) GetFee() uint64 {
	if x != nil {
		return x.Fee
	}
	return 0
}

func (x *Receipt) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *Receipt) GetError() string {
	if x != nil {
		return x.Error
	}
	return ""
}

func (x *Receipt) GetVault() string {
	if x != nil {
		return x.Vault
	}
	return ""
}

func (x *Receipt) GetVaultBalance() uint64 {
	if x != nil {
		return x.VaultBalance
	}
	return 0
}

func (x *Receipt) GetSignerBalance() uint64 {
	if x != nil {
		return x.SignerBalance
	}
	return 0
}

func (x *Receipt) GetCreatedAt() int64 {
	if x != nil {
		return x.CreatedAt
	}
	return 0
}

func (x *Receipt) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, x.TxId)
	e.string(2, x.Signer)
	e.string(3, x.Instruction)
	e.uint64(4, x.Amount)
	e.uint64(5, x.Fee)
	e.string(6, x.Status)
	e.string(7, x.Error)
	e.string(8, x.Vault)
	e.uint64(9, x.VaultBalance)
	e.uint64(10, x.SignerBalance)
	e.int64(11, x.CreatedAt)
	e.string(12, x.Id)
	return e.b, nil
}

func (x *Receipt) UnmarshalWire(b []byte) error {
	*x = Receipt{}
	return decode(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &x.TxId)
		case 2:
			return readString(typ, v, &x.Signer)
		case 3:
			return readString(typ, v, &x.Instruction)
		case 4:
			return readUint64(typ, v, &x.Amount)
		case 5:
			return readUint64(typ, v, &x.Fee)
		case 6:
			return readString(typ, v, &x.Status)
		case 7:
			return readString(typ, v, &x.Error)
		case 8:
			return readString(typ, v, &x.Vault)
		case 9:
			return readUint64(typ, v, &x.VaultBalance)
		case 10:
			return readUint64(typ, v, &x.SignerBalance)
		case 11:
			return readInt64(typ, v, &x.CreatedAt)
		case 12:
			return readString(typ, v, &x.Id)
		}
		return skip, nil
	})
}
