// Package rocpdu implements the ROC Plus opcode codecs and the
// alarm/event tagged-union record decoders: one (encode, decode)
// pair per supported opcode, registered in a dispatch table keyed by
// opcode number, plus the 23/22-byte alarm/event record layouts.
package rocpdu

import (
	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

// RequestBody is any typed request payload. Opcode identifies which
// dispatch table entry encodes/decodes it.
type RequestBody interface {
	Opcode() uint8
	EncodeBody() []byte
}

// ResponseBody is any typed response payload; a marker interface so the
// façade can type-switch on the concrete result.
type ResponseBody interface {
	isResponseBody()
}

// DecodeFunc decodes a response body. It is handed the originating
// request and the schema registry (105, 167, 180 resolve
// TLPs through it).
type DecodeFunc func(body []byte, req RequestBody, reg *tlp.Registry) (ResponseBody, error)

// Spec is one dispatch table entry.
type Spec struct {
	Opcode      uint8
	Description string
	Decode      DecodeFunc
}

var dispatch = map[uint8]Spec{}

func register(s Spec) {
	dispatch[s.Opcode] = s
}

// Lookup returns the dispatch entry for opcode, or UnknownOpcode.
func Lookup(opcode uint8) (Spec, error) {
	s, ok := dispatch[opcode]
	if !ok {
		return Spec{}, rocerr.New(rocerr.UnknownOpcode, "opcode %d has no registered codec", opcode)
	}
	return s, nil
}

// Decode dispatches body to the decoder registered for respOpcode,
// unless respOpcode is 255 (ErrorIndicator), which always decodes via
// the dedicated error-response path regardless of the request.
func Decode(respOpcode uint8, body []byte, req RequestBody, reg *tlp.Registry) (ResponseBody, error) {
	if respOpcode == ErrorIndicatorOpcode {
		return decodeErrorIndicator(body)
	}
	spec, err := Lookup(respOpcode)
	if err != nil {
		return nil, err
	}
	return spec.Decode(body, req, reg)
}

func builder() *wire.Builder { return wire.NewBuilder() }
