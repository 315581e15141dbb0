package ledger

// AccountStorageOverhead is the number of bytes charged for every account on
// top of its payload.
const AccountStorageOverhead uint64 = 128

// Rent holds the ledger's storage economics. An account whose balance is at
// least MinimumBalance(len(data)) is exempt from reclamation.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
}

// DefaultRent returns the mainnet parameters: 3480 lamports per byte-year and
// a two-year exemption threshold.
func DefaultRent() Rent {
	return Rent{LamportsPerByteYear: 3480, ExemptionThreshold: 2.0}
}

// MinimumBalance returns the rent-exempt minimum for an account carrying
// dataLen bytes of payload. For a zero-payload account with the default
// parameters this is 890,880 lamports.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	bytes := AccountStorageOverhead + dataLen
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
