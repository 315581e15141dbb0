package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/google/uuid"
)

const (
	txVersion     byte = 1
	flagSigner    byte = 1 << 0
	flagWritable  byte = 1 << 1
	maxAccounts        = 255
	maxDataLength      = 1232
)

// NewTransaction builds an unsigned transaction with a fresh id.
func NewTransaction(signer address.Address, ix Instruction, now time.Time) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Signer:      signer,
		Timestamp:   now,
		Instruction: ix,
	}
}

// Message returns the bytes covered by the signature.
func (tx *Transaction) Message() ([]byte, error) {
	ix := tx.Instruction
	if len(ix.Accounts) > maxAccounts {
		return nil, fmt.Errorf("%w: %d accounts", ErrInvalidTransaction, len(ix.Accounts))
	}
	if len(ix.Data) > maxDataLength {
		return nil, fmt.Errorf("%w: %d bytes of instruction data", ErrInvalidTransaction, len(ix.Data))
	}

	b := make([]byte, 0, 1+16+address.Size+8+address.Size+1+len(ix.Accounts)*(address.Size+1)+4+len(ix.Data))
	b = append(b, txVersion)
	b = append(b, tx.ID[:]...)
	b = append(b, tx.Signer[:]...)
	b = binary.LittleEndian.AppendUint64(b, uint64(tx.Timestamp.UnixNano()))
	b = append(b, ix.ProgramID[:]...)
	b = append(b, byte(len(ix.Accounts)))
	for _, m := range ix.Accounts {
		var flags byte
		if m.IsSigner {
			flags |= flagSigner
		}
		if m.IsWritable {
			flags |= flagWritable
		}
		b = append(b, m.Address[:]...)
		b = append(b, flags)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(ix.Data)))
	b = append(b, ix.Data...)
	return b, nil
}

// Sign signs the message with key, which must belong to tx.Signer.
func (tx *Transaction) Sign(key ed25519.PrivateKey) error {
	pub, ok := key.Public().(ed25519.PublicKey)
	if !ok || !tx.Signer.Equal(address.Address(pub)) {
		return fmt.Errorf("%w: key does not match signer %s", ErrInvalidSignature, tx.Signer)
	}
	msg, err := tx.Message()
	if err != nil {
		return err
	}
	tx.Signature = ed25519.Sign(key, msg)
	return nil
}

// VerifySignature checks the signature against the signer's public key.
func (tx *Transaction) VerifySignature() error {
	if len(tx.Signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	msg, err := tx.Message()
	if err != nil {
		return err
	}
	if !ed25519.Verify(tx.Signer.PublicKey(), msg, tx.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

// MarshalBinary encodes the message followed by the signature.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	msg, err := tx.Message()
	if err != nil {
		return nil, err
	}
	return append(msg, tx.Signature...), nil
}

// UnmarshalBinary decodes a transaction produced by MarshalBinary.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	r := reader{b: b}

	if v := r.byte(); v != txVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidTransaction, v)
	}

	var out Transaction
	copy(out.ID[:], r.take(16))
	copy(out.Signer[:], r.take(address.Size))
	out.Timestamp = time.Unix(0, int64(r.uint64())).UTC()
	copy(out.Instruction.ProgramID[:], r.take(address.Size))

	n := int(r.byte())
	if n > 0 {
		out.Instruction.Accounts = make([]AccountMeta, 0, n)
	}
	for i := 0; i < n; i++ {
		var m AccountMeta
		copy(m.Address[:], r.take(address.Size))
		flags := r.byte()
		m.IsSigner = flags&flagSigner != 0
		m.IsWritable = flags&flagWritable != 0
		out.Instruction.Accounts = append(out.Instruction.Accounts, m)
	}

	dataLen := int(r.uint32())
	if dataLen > maxDataLength {
		return fmt.Errorf("%w: %d bytes of instruction data", ErrInvalidTransaction, dataLen)
	}
	out.Instruction.Data = append([]byte(nil), r.take(dataLen)...)
	out.Signature = append([]byte(nil), r.take(ed25519.SignatureSize)...)

	if r.err {
		return fmt.Errorf("%w: truncated", ErrInvalidTransaction)
	}
	if len(r.b) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidTransaction, len(r.b))
	}

	*tx = out
	return nil
}

type reader struct {
	b   []byte
	err bool
}

func (r *reader) take(n int) []byte {
	if r.err || len(r.b) < n {
		r.err = true
		return make([]byte, n)
	}
	v := r.b[:n]
	r.b = r.b[n:]
	return v
}

func (r *reader) byte() byte {
	return r.take(1)[0]
}

func (r *reader) uint32() uint32 {
	return binary.LittleEndian.Uint32(r.take(4))
}

func (r *reader) uint64() uint64 {
	return binary.LittleEndian.Uint64(r.take(8))
}
