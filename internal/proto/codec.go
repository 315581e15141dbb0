package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the wire codec.
const CodecName = "lamportvault-wire"

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("%s: cannot marshal %T", CodecName, v)
	}
	return m.MarshalWire()
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("%s: cannot unmarshal into %T", CodecName, v)
	}
	return m.UnmarshalWire(data)
}

func (wireCodec) Name() string {
	return CodecName
}

// Codec returns the codec used by both ends of VaultService.
func Codec() encoding.Codec {
	return wireCodec{}
}

func init() {
	encoding.RegisterCodec(wireCodec{})
}
