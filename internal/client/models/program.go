package models

// ProgramInfo is what the node reports about the deployed vault program.
type ProgramInfo struct {
	ProgramID            string
	RentExemptMinimum    uint64
	LamportsPerSignature uint64
	FaucetEnabled        bool
}
