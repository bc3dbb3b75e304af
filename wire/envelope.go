package wire

import "github.com/rocplus/go-rocplus/rocerr"

// DeviceAddress identifies both ends of a ROC Plus conversation: the
// remote unit (roc_address/roc_group) and this client (host_address/
// host_group).
type DeviceAddress struct {
	RocAddress  uint8
	RocGroup    uint8
	HostAddress uint8
	HostGroup   uint8
}

// HeaderSize is the fixed 6-byte envelope header: address(4) + opcode(1)
// + length(1).
const HeaderSize = 6

// CRCSize is the trailing CRC-16 pair.
const CRCSize = 2

// Envelope is an assembled (or parsed) frame: header fields, opcode,
// and body. CRC is derived, never stored.
type Envelope struct {
	Addr   DeviceAddress
	Opcode uint8
	Body   []byte
}

// EncodeRequest assembles the outgoing frame bytes: header ‖ body ‖ crc,
// addressed roc/group, host/group exactly as supplied (the request
// direction needs no field swap).
func EncodeRequest(addr DeviceAddress, opcode uint8, body []byte) ([]byte, error) {
	if len(body) > 255 {
		return nil, rocerr.New(rocerr.ConfigInvalid, "body length %d exceeds 255", len(body))
	}
	out := make([]byte, 0, HeaderSize+len(body)+CRCSize)
	out = append(out, addr.RocAddress, addr.RocGroup, addr.HostAddress, addr.HostGroup, opcode, byte(len(body)))
	out = append(out, body...)
	lsb, msb := CRCBytes(out)
	out = append(out, lsb, msb)
	return out, nil
}

// DecodeResponse validates and parses an incoming frame. The incoming
// header's address fields are in swapped order (host fields first, then
// roc fields); the returned Envelope.Addr restores the original roc/host
// roles so it matches the request's DeviceAddress.
func DecodeResponse(raw []byte) (*Envelope, error) {
	if len(raw) < HeaderSize+CRCSize {
		return nil, rocerr.New(rocerr.FrameTooShort, "got %d bytes, need at least %d", len(raw), HeaderSize+CRCSize)
	}
	length := int(raw[5])
	total := HeaderSize + length + CRCSize
	if len(raw) < total {
		return nil, rocerr.New(rocerr.FrameTooShort, "got %d bytes, need %d for declared body length %d", len(raw), total, length)
	}
	raw = raw[:total]

	withoutCRC := raw[:HeaderSize+length]
	wantLSB, wantMSB := CRCBytes(withoutCRC)
	gotLSB, gotMSB := raw[HeaderSize+length], raw[HeaderSize+length+1]
	if gotLSB != wantLSB || gotMSB != wantMSB {
		return nil, rocerr.New(rocerr.CrcMismatch, "crc mismatch: got %02x%02x want %02x%02x", gotMSB, gotLSB, wantMSB, wantLSB)
	}

	env := &Envelope{
		Addr: DeviceAddress{
			HostAddress: raw[0],
			HostGroup:   raw[1],
			RocAddress:  raw[2],
			RocGroup:    raw[3],
		},
		Opcode: raw[4],
		Body:   raw[HeaderSize : HeaderSize+length],
	}
	return env, nil
}
