package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

// AlarmRecordSize is the fixed per-record width opcode 118 returns.
const AlarmRecordSize = 23

// AlarmKind is the alarm_type_code packed into bits 5..0 of an alarm
// record's leading byte.
type AlarmKind uint8

const (
	NoAlarmKind        AlarmKind = 0
	ParameterAlarmKind AlarmKind = 1
	FSTAlarmKind       AlarmKind = 2
	UserTextAlarmKind  AlarmKind = 3
	UserValueAlarmKind AlarmKind = 4
)

// AlarmRecord is the decoded 23-byte alarm tagged union. Kind
// selects which of the payload fields are meaningful; the rest are zero.
type AlarmRecord struct {
	IsSRBX    bool
	Condition tlp.AlarmCondition
	Kind      AlarmKind
	Timestamp time.Time

	// ParameterAlarm fields.
	AlarmCode   tlp.ParameterAlarmCode
	TLP         [3]uint8
	Description string
	Value       float32

	// FSTAlarm field (Description/Value shared with ParameterAlarm above).
	FST uint8
}

// DecodeAlarmRecord decodes exactly AlarmRecordSize bytes of raw. An
// undeclared alarm_type_code yields a distinct UnexpectedResponse error
// without reading past the record boundary.
func DecodeAlarmRecord(raw []byte) (AlarmRecord, error) {
	if len(raw) < AlarmRecordSize {
		return AlarmRecord{}, rocerr.New(rocerr.FrameTooShort, "alarm record needs %d bytes, got %d", AlarmRecordSize, len(raw))
	}
	flags := raw[0]
	rec := AlarmRecord{
		IsSRBX:    flags&0x80 != 0,
		Condition: tlp.AlarmCondition((flags >> 6) & 0x01),
		Kind:      AlarmKind(flags & 0x3F),
	}
	c := wire.NewCursor(raw[1:5])
	rec.Timestamp = c.TakeTime()
	payload := wire.NewCursor(raw[5:AlarmRecordSize])

	switch rec.Kind {
	case NoAlarmKind:
		// no payload
	case ParameterAlarmKind:
		rec.AlarmCode = tlp.ParameterAlarmCode(payload.TakeUint8())
		rec.TLP = [3]uint8{payload.TakeUint8(), payload.TakeUint8(), payload.TakeUint8()}
		rec.Description = payload.TakeASCII(10)
		rec.Value = payload.TakeFloat32()
	case FSTAlarmKind:
		rec.FST = payload.TakeUint8()
		rec.Description = payload.TakeASCII(13)
		rec.Value = payload.TakeFloat32()
	case UserTextAlarmKind:
		rec.Description = payload.TakeASCII(18)
	case UserValueAlarmKind:
		rec.Description = payload.TakeASCII(14)
		rec.Value = payload.TakeFloat32()
	default:
		return AlarmRecord{}, rocerr.New(rocerr.UnexpectedResponse, "unrecognized alarm type code %d", rec.Kind)
	}
	if payload.Err() != nil {
		return AlarmRecord{}, rocerr.Wrap(rocerr.FrameTooShort, payload.Err())
	}
	return rec, nil
}

func init() {
	register(Spec{Opcode: 118, Description: "Alarm Data", Decode: decodeAlarmData})
}

// AlarmDataRequest asks for up to NumberOfAlarms records starting at
// StartingAlarmLogIndex.
type AlarmDataRequest struct {
	NumberOfAlarms        uint8
	StartingAlarmLogIndex int16
}

func (AlarmDataRequest) Opcode() uint8 { return 118 }
func (r AlarmDataRequest) EncodeBody() []byte {
	return builder().AppendByte(r.NumberOfAlarms).AppendInt16(r.StartingAlarmLogIndex).Bytes()
}

// AlarmDataResponse carries the header fields plus the decoded records.
type AlarmDataResponse struct {
	NumberOfAlarms        uint8
	StartingAlarmLogIndex int16
	CurrentAlarmLogIndex  int16
	Records               []AlarmRecord
}

func (AlarmDataResponse) isResponseBody() {}

func decodeAlarmData(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := AlarmDataResponse{
		NumberOfAlarms:        c.TakeUint8(),
		StartingAlarmLogIndex: c.TakeInt16(),
		CurrentAlarmLogIndex:  c.TakeInt16(),
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	resp.Records = make([]AlarmRecord, 0, resp.NumberOfAlarms)
	for i := uint8(0); i < resp.NumberOfAlarms; i++ {
		raw := c.TakeN(AlarmRecordSize)
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		rec, err := DecodeAlarmRecord(raw)
		if err != nil {
			return nil, err
		}
		resp.Records = append(resp.Records, rec)
	}
	return resp, nil
}
