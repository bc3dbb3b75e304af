package wire

import (
	"math"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestBuilderCursorRoundTrip(t *testing.T) {
	b := NewBuilder().
		AppendByte(0x42).
		AppendUint16(0xABCD).
		AppendInt16(-100).
		AppendUint32(0xDEADBEEF).
		AppendFloat32(3.25).
		AppendASCII("hi", 5)

	c := NewCursor(b.Bytes())
	assert.Equal(t, c.TakeByte(), byte(0x42))
	assert.Equal(t, c.TakeUint16(), uint16(0xABCD))
	assert.Equal(t, c.TakeInt16(), int16(-100))
	assert.Equal(t, c.TakeUint32(), uint32(0xDEADBEEF))
	assert.Equal(t, c.TakeFloat32(), float32(3.25))
	assert.Equal(t, c.TakeASCII(5), "hi")
	assert.NilError(t, c.Err())
	assert.Equal(t, c.Remaining(), 0)
}

func TestBuilderLen(t *testing.T) {
	b := NewBuilder().AppendByte(1).AppendByte(2).AppendByte(3)
	assert.Equal(t, b.Len(), 3)
}

func TestCursorTakeASCIITrimsPaddingAndNUL(t *testing.T) {
	c := NewCursor([]byte("abc  \x00\x00\x00"))
	assert.Equal(t, c.TakeASCII(10), "abc")
}

func TestCursorTakeFloat64(t *testing.T) {
	buf := make([]byte, 8)
	bits := math.Float64bits(1.5)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * i))
	}
	c := NewCursor(buf)
	assert.Equal(t, c.TakeFloat64(), 1.5)
}

func TestCursorTakeTime(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 0})
	got := c.TakeTime()
	assert.Equal(t, got, time.Unix(0, 0).UTC())
}

func TestCursorShortBufferSetsErr(t *testing.T) {
	c := NewCursor([]byte{1, 2})
	_ = c.TakeUint32()
	assert.ErrorIs(t, c.Err(), ErrShortBuffer)
}

func TestCursorShortBufferSticky(t *testing.T) {
	c := NewCursor([]byte{1})
	_ = c.TakeUint16()
	assert.ErrorIs(t, c.Err(), ErrShortBuffer)
	// a second short read after the first doesn't clear or replace err
	_ = c.TakeByte()
	assert.ErrorIs(t, c.Err(), ErrShortBuffer)
}

func TestCursorRest(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4})
	_ = c.TakeByte()
	rest := c.Rest()
	assert.DeepEqual(t, rest, []byte{2, 3, 4})
	assert.Equal(t, c.Remaining(), 0)
}

func TestCursorTakeN(t *testing.T) {
	c := NewCursor([]byte{10, 20, 30, 40})
	got := c.TakeN(2)
	assert.DeepEqual(t, got, []byte{10, 20})
	assert.Equal(t, c.Remaining(), 2)
}
