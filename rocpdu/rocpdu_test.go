package rocpdu

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/rocerr"
)

func TestLookupKnownOpcode(t *testing.T) {
	spec, err := Lookup(7)
	assert.NilError(t, err)
	assert.Equal(t, spec.Opcode, uint8(7))
	assert.Equal(t, spec.Description, "Read Real-time Clock")
}

func TestLookupUnknownOpcode(t *testing.T) {
	_, err := Lookup(250)
	assert.ErrorIs(t, err, rocerr.ErrUnknownOpcode)
}

func TestDecodeRoutesErrorIndicatorRegardlessOfRequest(t *testing.T) {
	body := []byte{1, 3}
	_, err := Decode(ErrorIndicatorOpcode, body, ReadClockRequest{}, nil)
	assert.ErrorContains(t, err, "rocplus: DeviceError")
	assert.Equal(t, rocerr.KindOf(err), rocerr.DeviceError)
}

func TestDecodeDispatchesToRequestSpecificDecoder(t *testing.T) {
	resp, err := Decode(7, []byte{0, 0, 0, 1, 1, 225, 7, 2}, ReadClockRequest{}, nil)
	assert.NilError(t, err)
	_, ok := resp.(ReadClockResponse)
	assert.Assert(t, ok)
}
