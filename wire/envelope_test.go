package wire

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/rocerr"
)

func TestEncodeRequestLayout(t *testing.T) {
	addr := DeviceAddress{RocAddress: 1, RocGroup: 0, HostAddress: 2, HostGroup: 0}
	out, err := EncodeRequest(addr, 6, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, out[:HeaderSize], []byte{1, 0, 2, 0, 6, 0})
	lsb, msb := CRCBytes(out[:HeaderSize])
	assert.DeepEqual(t, out[HeaderSize:], []byte{lsb, msb})
}

func TestEncodeRequestRejectsOversizedBody(t *testing.T) {
	addr := DeviceAddress{RocAddress: 1, HostAddress: 2}
	_, err := EncodeRequest(addr, 6, make([]byte, 256))
	assert.ErrorIs(t, err, rocerr.ErrConfigInvalid)
}

func TestDecodeResponseSwapsAddressRoles(t *testing.T) {
	addr := DeviceAddress{RocAddress: 1, RocGroup: 0, HostAddress: 2, HostGroup: 0}
	body := []byte{0xAA, 0xBB}
	// incoming wire order is host fields first, then roc fields
	header := []byte{addr.HostAddress, addr.HostGroup, addr.RocAddress, addr.RocGroup, 6, byte(len(body))}
	raw := append(append([]byte{}, header...), body...)
	lsb, msb := CRCBytes(raw)
	raw = append(raw, lsb, msb)

	env, err := DecodeResponse(raw)
	assert.NilError(t, err)
	assert.DeepEqual(t, env.Addr, addr)
	assert.Equal(t, env.Opcode, uint8(6))
	assert.DeepEqual(t, env.Body, body)
}

func TestDecodeResponseCRCMismatch(t *testing.T) {
	raw := []byte{2, 0, 1, 0, 6, 0, 0xFF, 0xFF}
	_, err := DecodeResponse(raw)
	assert.ErrorIs(t, err, rocerr.ErrCrcMismatch)
}

func TestDecodeResponseShortHeader(t *testing.T) {
	_, err := DecodeResponse([]byte{1, 2, 3})
	assert.ErrorIs(t, err, rocerr.ErrFrameTooShort)
}

func TestDecodeResponseShortBodyForDeclaredLength(t *testing.T) {
	raw := []byte{2, 0, 1, 0, 6, 5, 0xAA}
	_, err := DecodeResponse(raw)
	assert.ErrorIs(t, err, rocerr.ErrFrameTooShort)
}

func TestDecodeResponseIgnoresTrailingBytes(t *testing.T) {
	addr := DeviceAddress{RocAddress: 1, HostAddress: 2}
	body := []byte{0x01}
	header := []byte{addr.HostAddress, addr.HostGroup, addr.RocAddress, addr.RocGroup, 7, byte(len(body))}
	raw := append(append([]byte{}, header...), body...)
	lsb, msb := CRCBytes(raw)
	raw = append(raw, lsb, msb)
	raw = append(raw, 0xDE, 0xAD) // trailing garbage beyond the declared frame

	env, err := DecodeResponse(raw)
	assert.NilError(t, err)
	assert.Equal(t, env.Opcode, uint8(7))
}
