package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func init() {
	register(Spec{Opcode: 6, Description: "System Configuration", Decode: decodeSystemConfig})
	register(Spec{Opcode: 7, Description: "Read Real-time Clock", Decode: decodeClock})
	register(Spec{Opcode: 50, Description: "I/O Point Position", Decode: decodeIOPointPosition})
}

// --- 6: System Configuration ---

// SystemConfigRequest carries no fields; the device returns its full
// configuration unconditionally.
type SystemConfigRequest struct{}

func (SystemConfigRequest) Opcode() uint8      { return 6 }
func (SystemConfigRequest) EncodeBody() []byte { return nil }

// SystemConfigResponse is the decoded opcode 6 body. Per-point-
// type logical counts run from point_type 60 upward; LogicalCountFor
// looks one up by point type number.
type SystemConfigResponse struct {
	OperatingMode      tlp.OperatingMode
	CommPort           int16
	SecurityAccessMode uint8
	CompatStatus       tlp.LogicalCompatibilityStatus
	OpcodeRevision     tlp.OpcodeRevision
	ROCSubType         tlp.ROCSubType
	ROCType            tlp.ROCType
	// LogicalCounts[i] is the logical-point count for point_type = i+60.
	LogicalCounts [196]uint8
}

func (SystemConfigResponse) isResponseBody() {}

// LogicalCountFor returns the logical-point count for the given point
// type number, or 0 if it falls outside the 60..255 range this table
// covers.
func (r SystemConfigResponse) LogicalCountFor(pointType uint8) uint8 {
	if pointType < 60 {
		return 0
	}
	idx := int(pointType) - 60
	if idx >= len(r.LogicalCounts) {
		return 0
	}
	return r.LogicalCounts[idx]
}

func decodeSystemConfig(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := SystemConfigResponse{
		OperatingMode: tlp.OperatingMode(c.TakeUint8()),
	}
	resp.CommPort = c.TakeInt16()
	resp.SecurityAccessMode = c.TakeUint8()
	resp.CompatStatus = tlp.LogicalCompatibilityStatus(c.TakeUint8())
	resp.OpcodeRevision = tlp.OpcodeRevision(c.TakeUint8())
	resp.ROCSubType = tlp.ROCSubType(c.TakeUint8())
	// bytes [7..19) reserved, except byte 18 == roc_type, per the ROC800
	// golden-capture offsets this layout is based on.
	reserved := c.TakeN(12)
	resp.ROCType = tlp.ROCType(reserved[11])
	counts := c.TakeN(196)
	copy(resp.LogicalCounts[:], counts)
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 7: Read Real-time Clock ---

type ReadClockRequest struct{}

func (ReadClockRequest) Opcode() uint8      { return 7 }
func (ReadClockRequest) EncodeBody() []byte { return nil }

type ReadClockResponse struct {
	Time    time.Time
	Weekday uint8
}

func (ReadClockResponse) isResponseBody() {}

func decodeClock(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	sec := c.TakeUint8()
	min := c.TakeUint8()
	hour := c.TakeUint8()
	day := c.TakeUint8()
	month := c.TakeUint8()
	year := c.TakeUint16()
	weekday := c.TakeUint8()
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	t := time.Date(int(year), time.Month(month), int(day), int(hour), int(min), int(sec), 0, time.UTC)
	return ReadClockResponse{Time: t, Weekday: weekday}, nil
}

// --- 50: I/O Point Position ---

const (
	IOPositionPointTypes     uint8 = 0
	IOPositionLogicalNumbers uint8 = 1
)

// IOPointPositionRequest asks for either the point-type or the logical-
// number array across every physical location.
type IOPointPositionRequest struct {
	RequestType uint8
}

func (IOPointPositionRequest) Opcode() uint8 { return 50 }
func (r IOPointPositionRequest) EncodeBody() []byte {
	return builder().AppendByte(r.RequestType).Bytes()
}

// IOPointPositionResponse holds one byte per physical location; index i
// is the value at physical location i.
type IOPointPositionResponse struct {
	Values []uint8
}

func (IOPointPositionResponse) isResponseBody() {}

func decodeIOPointPosition(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	out := make([]uint8, len(body))
	copy(out, body)
	return IOPointPositionResponse{Values: out}, nil
}
