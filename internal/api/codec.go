// Package api is the wire contract of the staking ledger: gRPC method
// descriptors, request and response messages, the JSON codec they travel
// in and the mapping between ledger errors and gRPC status codes.
//
// Amounts are unsigned 64-bit integers encoded as decimal strings.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype of the ledger API
// ("application/grpc+json").
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
