package tlp

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestValueFloat32KindMismatch(t *testing.T) {
	v := Value{Kind: INT16, I16: 5}
	_, err := v.Float32()
	assert.ErrorContains(t, err, "holds INT16, not FLOAT32")
}

func TestValueInt64WidensEveryIntegerKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int64
	}{
		{"int8", Value{Kind: INT8, I8: -1}, -1},
		{"int16", Value{Kind: INT16, I16: -100}, -100},
		{"int32", Value{Kind: INT32, I32: -1000}, -1000},
		{"uint8", Value{Kind: UINT8, U8: 200}, 200},
		{"bin", Value{Kind: BIN, U8: 1}, 1},
		{"uint16", Value{Kind: UINT16, U16: 60000}, 60000},
		{"hourminute", Value{Kind: HOURMINUTE, U16: 130}, 130},
		{"uint32", Value{Kind: UINT32, U32: 4000000000}, 4000000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Int64()
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestValueIntWidenRejectsNonInteger(t *testing.T) {
	v := Value{Kind: FLOAT32, F32: 1.5}
	_, err := v.Int64()
	assert.ErrorContains(t, err, "not an integer type")
}

func TestValueStringTrimsACText(t *testing.T) {
	v := Value{Kind: AC10, Str: "engr units"}
	assert.Equal(t, v.String(), "engr units")
}

func TestValueStringUnknownIsHex(t *testing.T) {
	v := Value{Kind: UNKNOWN, Bytes: []byte{0xDE, 0xAD}}
	assert.Equal(t, v.String(), "dead")
}

func TestValueTLPRoundTrip(t *testing.T) {
	v := Value{Kind: TLPType, Tlp: [3]uint8{103, 1, 4}}
	got, err := v.TLP()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, [3]uint8{103, 1, 4})

	_, err = Value{Kind: INT8}.TLP()
	assert.ErrorContains(t, err, "not TLP")
}

func TestValueBitValuesLSBFirst(t *testing.T) {
	v := Value{Kind: BIN, U8: 0b10000001}
	bits, err := v.BitValues()
	assert.NilError(t, err)
	assert.Assert(t, bits[0])
	assert.Assert(t, bits[7])
	for i := 1; i < 7; i++ {
		assert.Assert(t, !bits[i])
	}

	_, err = Value{Kind: INT8}.BitValues()
	assert.ErrorContains(t, err, "not BIN")
}
