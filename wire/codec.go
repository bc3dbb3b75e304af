package wire

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"time"
)

// ErrShortBuffer is returned by any Take* method when fewer bytes remain
// than the value requires.
var ErrShortBuffer = errors.New("wire: short buffer")

// Builder accumulates request/response body bytes using a
// cursor-mutation style (AppendX methods appending to an internal
// slice) rather than a bytes.Buffer, since callers chain calls.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Bytes returns the accumulated bytes.
func (b *Builder) Bytes() []byte { return b.buf }

// Len reports the number of bytes accumulated so far.
func (b *Builder) Len() int { return len(b.buf) }

func (b *Builder) AppendByte(v byte) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) AppendBytes(v ...byte) *Builder {
	b.buf = append(b.buf, v...)
	return b
}

func (b *Builder) AppendUint16(v uint16) *Builder {
	b.buf = append(b.buf, byte(v), byte(v>>8))
	return b
}

func (b *Builder) AppendInt16(v int16) *Builder {
	return b.AppendUint16(uint16(v))
}

func (b *Builder) AppendUint32(v uint32) *Builder {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return b
}

func (b *Builder) AppendFloat32(v float32) *Builder {
	return b.AppendUint32(math.Float32bits(v))
}

// AppendASCII writes s left-justified into exactly width bytes, padding
// with spaces (the inverse of the right-trim Cursor performs on read).
func (b *Builder) AppendASCII(s string, width int) *Builder {
	out := make([]byte, width)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	b.buf = append(b.buf, out...)
	return b
}

// Cursor consumes bytes from a fixed buffer, advancing as it goes. Used to
// decode response bodies; a short read does not panic: it yields zero
// bytes and records ErrShortBuffer, which the call site checks via Err().
type Cursor struct {
	buf []byte
	err error
}

// NewCursor wraps buf for sequential decoding.
func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// Err returns the first short-read error encountered, if any.
func (c *Cursor) Err() error { return c.err }

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int { return len(c.buf) }

// Rest returns (and consumes) every remaining byte.
func (c *Cursor) Rest() []byte {
	v := c.buf
	c.buf = nil
	return v
}

func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return make([]byte, n)
	}
	if len(c.buf) < n {
		c.err = ErrShortBuffer
		return make([]byte, n)
	}
	v := c.buf[:n]
	c.buf = c.buf[n:]
	return v
}

func (c *Cursor) TakeByte() byte { return c.take(1)[0] }

func (c *Cursor) TakeUint8() uint8 { return c.take(1)[0] }

func (c *Cursor) TakeInt8() int8 { return int8(c.take(1)[0]) }

func (c *Cursor) TakeUint16() uint16 { return binary.LittleEndian.Uint16(c.take(2)) }

func (c *Cursor) TakeInt16() int16 { return int16(c.TakeUint16()) }

func (c *Cursor) TakeUint32() uint32 { return binary.LittleEndian.Uint32(c.take(4)) }

func (c *Cursor) TakeInt32() int32 { return int32(c.TakeUint32()) }

func (c *Cursor) TakeFloat32() float32 { return math.Float32frombits(c.TakeUint32()) }

func (c *Cursor) TakeFloat64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(c.take(8)))
}

// TakeTime decodes a 32-bit little-endian Unix-epoch-seconds TIME value.
func (c *Cursor) TakeTime() time.Time {
	return time.Unix(int64(c.TakeUint32()), 0).UTC()
}

// TakeASCII reads exactly width bytes and trims trailing whitespace/NUL,
// matching the wire's fixed-length ASCII convention.
func (c *Cursor) TakeASCII(width int) string {
	raw := c.take(width)
	return strings.TrimRight(string(raw), " \x00")
}

// TakeN returns (and consumes) the next n raw bytes.
func (c *Cursor) TakeN(n int) []byte {
	got := c.take(n)
	out := make([]byte, n)
	copy(out, got)
	return out
}
