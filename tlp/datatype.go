// Package tlp implements the TLP (Type/Logical/Parameter) schema registry
// and the ROC primitive data-type table: the self-describing schema a
// ROC device uses so a generic parameter read can be decoded into a
// correctly sized, correctly typed value.
package tlp

import (
	"math"

	"github.com/rocplus/go-rocplus/wire"
)

// DataType enumerates the ROC primitive wire types.
type DataType int

const (
	BIN DataType = iota
	INT8
	INT16
	INT32
	UINT8
	UINT16
	UINT32
	FLOAT32
	FLOAT64
	TLPType // the embedded (point_type, logical_number, parameter_number) triple
	AC3
	AC7
	AC10
	AC12
	AC20
	AC30
	AC40
	TIME
	HOURMINUTE
	UNKNOWN
)

var dataTypeNames = [...]string{
	"BIN", "INT8", "INT16", "INT32", "UINT8", "UINT16", "UINT32",
	"FLOAT32", "FLOAT64", "TLP", "AC3", "AC7", "AC10", "AC12", "AC20",
	"AC30", "AC40", "TIME", "HOURMINUTE", "UNKNOWN",
}

func (d DataType) String() string {
	if int(d) < 0 || int(d) >= len(dataTypeNames) {
		return "UNKNOWN"
	}
	return dataTypeNames[d]
}

// acWidths maps the AC-n variants to their fixed ASCII width.
var acWidths = map[DataType]int{
	AC3: 3, AC7: 7, AC10: 10, AC12: 12, AC20: 20, AC30: 30, AC40: 40,
}

// Width returns the exact wire size in bytes for d. UNKNOWN has width 0,
// having no declared size; Decode takes every remaining byte for it and
// carries them in Value.Bytes.
func (d DataType) Width() int {
	switch d {
	case BIN, INT8, UINT8:
		return 1
	case INT16, UINT16, HOURMINUTE:
		return 2
	case INT32, UINT32, FLOAT32, TIME:
		return 4
	case FLOAT64:
		return 8
	case TLPType:
		return 3
	case UNKNOWN:
		return 0
	default:
		if w, ok := acWidths[d]; ok {
			return w
		}
		return 0
	}
}

// Decode reads exactly Width() bytes from c and returns the semantic
// Value. For UNKNOWN, it takes every remaining byte in the cursor, since
// there is no declared width.
func (d DataType) Decode(c *wire.Cursor) Value {
	switch d {
	case BIN:
		return Value{Kind: d, U8: c.TakeUint8()}
	case INT8:
		return Value{Kind: d, I8: c.TakeInt8()}
	case INT16:
		return Value{Kind: d, I16: c.TakeInt16()}
	case INT32:
		return Value{Kind: d, I32: c.TakeInt32()}
	case UINT8:
		return Value{Kind: d, U8: c.TakeUint8()}
	case UINT16:
		return Value{Kind: d, U16: c.TakeUint16()}
	case UINT32:
		return Value{Kind: d, U32: c.TakeUint32()}
	case FLOAT32:
		return Value{Kind: d, F32: c.TakeFloat32()}
	case FLOAT64:
		return Value{Kind: d, F64: c.TakeFloat64()}
	case TLPType:
		pt, lg, pn := c.TakeUint8(), c.TakeUint8(), c.TakeUint8()
		return Value{Kind: d, Tlp: [3]uint8{pt, lg, pn}}
	case TIME:
		return Value{Kind: d, Time: c.TakeTime()}
	case HOURMINUTE:
		return Value{Kind: d, U16: c.TakeUint16()}
	case UNKNOWN:
		return Value{Kind: d, Bytes: c.Rest()}
	default:
		if w, ok := acWidths[d]; ok {
			return Value{Kind: d, Str: c.TakeASCII(w)}
		}
		return Value{Kind: UNKNOWN, Bytes: c.Rest()}
	}
}

// eventDataTypeCodes maps the single-byte data-type code carried by event
// and transaction records (opcodes 119/206) to a DataType.
var eventDataTypeCodes = [...]DataType{
	0: BIN, 1: INT8, 2: INT16, 3: INT32, 4: UINT8, 5: UINT16, 6: UINT32,
	7: FLOAT32, 8: TLPType, 9: AC3, 10: AC7, 11: AC10, 12: AC12, 13: AC20,
	14: AC30, 15: AC40, 16: FLOAT64, 17: TIME,
}

// DataTypeByCode resolves a record's data_type_code byte to a DataType. ok
// is false for any code outside the declared 0..17 range.
func DataTypeByCode(code uint8) (dt DataType, ok bool) {
	if int(code) >= len(eventDataTypeCodes) {
		return UNKNOWN, false
	}
	return eventDataTypeCodes[code], true
}

// Encode appends v's payload to b, using Width() bytes (AC-n types are
// space-padded to width; UNKNOWN writes its raw bytes as-is).
func (d DataType) Encode(b *wire.Builder, v Value) {
	switch d {
	case BIN, UINT8:
		b.AppendByte(v.U8)
	case INT8:
		b.AppendByte(byte(v.I8))
	case INT16:
		b.AppendInt16(v.I16)
	case UINT16, HOURMINUTE:
		b.AppendUint16(v.U16)
	case INT32:
		b.AppendUint32(uint32(v.I32))
	case UINT32:
		b.AppendUint32(v.U32)
	case FLOAT32:
		b.AppendFloat32(v.F32)
	case FLOAT64:
		bits := math.Float64bits(v.F64)
		b.AppendUint32(uint32(bits)).AppendUint32(uint32(bits >> 32))
	case TLPType:
		b.AppendBytes(v.Tlp[0], v.Tlp[1], v.Tlp[2])
	case TIME:
		b.AppendUint32(uint32(v.Time.Unix()))
	case UNKNOWN:
		b.AppendBytes(v.Bytes...)
	default:
		if w, ok := acWidths[d]; ok {
			b.AppendASCII(v.Str, w)
		}
	}
}
