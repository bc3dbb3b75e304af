package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

// EventRecordSize is the fixed per-record width opcode 119 returns.
const EventRecordSize = 22

// EventKind is an event record's leading type-code byte.
type EventKind uint8

const (
	NoEventKind         EventKind = 0
	ParameterChangeKind EventKind = 1
	SystemEventKind     EventKind = 2
	FSTEventKind        EventKind = 3
	UserEventKind       EventKind = 4
	PowerLostKind       EventKind = 5
	ClockSetKind        EventKind = 6
	CalibrateVerifyKind EventKind = 7
)

// EventRecord is the decoded 22-byte event tagged union.
type EventRecord struct {
	Kind      EventKind
	Timestamp time.Time

	// ParameterChange / CalibrateVerify fields.
	OperatorID string
	TLP        [3]uint8

	// ParameterChange fields.
	DataTypeCode uint8
	DataType     tlp.DataType
	NewValue     tlp.Value
	OldValue     tlp.Value
	HasOldValue  bool
	OldTimestamp time.Time

	// SystemEvent fields.
	SystemCode  tlp.SystemEventCode
	Description string

	// FSTEvent fields.
	FST   uint8
	Value float32

	// UserEvent field.
	UserCode uint8

	// PowerLost / ClockSet fields.
	EventTime time.Time

	// CalibrateVerify fields.
	RawValue        float32
	CalibratedValue float32
}

// DecodeEventRecord decodes exactly EventRecordSize bytes of raw. An
// undeclared event type code yields a distinct UnexpectedResponse error
// without reading past the record boundary.
func DecodeEventRecord(raw []byte, reg *tlp.Registry) (EventRecord, error) {
	if len(raw) < EventRecordSize {
		return EventRecord{}, rocerr.New(rocerr.FrameTooShort, "event record needs %d bytes, got %d", EventRecordSize, len(raw))
	}
	rec := EventRecord{Kind: EventKind(raw[0])}
	ts := wire.NewCursor(raw[1:5])
	rec.Timestamp = ts.TakeTime()
	payload := wire.NewCursor(raw[5:EventRecordSize])

	switch rec.Kind {
	case NoEventKind:
		// no payload
	case ParameterChangeKind:
		rec.OperatorID = payload.TakeASCII(3)
		rec.TLP = [3]uint8{payload.TakeUint8(), payload.TakeUint8(), payload.TakeUint8()}
		rec.DataTypeCode = payload.TakeUint8()
		dt, ok := tlp.DataTypeByCode(rec.DataTypeCode)
		if !ok {
			return EventRecord{}, rocerr.New(rocerr.UnexpectedResponse, "unrecognized event data type code %d", rec.DataTypeCode)
		}
		rec.DataType = dt
		rec.NewValue = dt.Decode(payload)
		// The old value lives in a fixed 4-byte slot at record offset 16
		// regardless of the new value's width, so it's decoded from its
		// own cursor over that slot rather than wherever the new value's
		// cursor left off.
		if dt.Width() <= 4 {
			old := wire.NewCursor(raw[16:EventRecordSize])
			rec.OldValue = dt.Decode(old)
			if old.Err() != nil {
				return EventRecord{}, rocerr.Wrap(rocerr.FrameTooShort, old.Err())
			}
			rec.HasOldValue = true
			rec.OldTimestamp = rec.Timestamp.Add(-time.Second)
		}
	case SystemEventKind:
		rec.SystemCode = tlp.SystemEventCode(payload.TakeUint8())
		rec.Description = payload.TakeASCII(16)
	case FSTEventKind:
		rec.FST = payload.TakeUint8()
		rec.Value = payload.TakeFloat32()
		rec.Description = payload.TakeASCII(10)
	case UserEventKind:
		rec.OperatorID = payload.TakeASCII(3)
		rec.UserCode = payload.TakeUint8()
		rec.Description = payload.TakeASCII(13)
	case PowerLostKind:
		rec.EventTime = payload.TakeTime()
	case ClockSetKind:
		rec.EventTime = payload.TakeTime()
	case CalibrateVerifyKind:
		rec.OperatorID = payload.TakeASCII(3)
		rec.TLP = [3]uint8{payload.TakeUint8(), payload.TakeUint8(), payload.TakeUint8()}
		rec.RawValue = payload.TakeFloat32()
		rec.CalibratedValue = payload.TakeFloat32()
	default:
		return EventRecord{}, rocerr.New(rocerr.UnexpectedResponse, "unrecognized event type code %d", rec.Kind)
	}
	if payload.Err() != nil {
		return EventRecord{}, rocerr.Wrap(rocerr.FrameTooShort, payload.Err())
	}
	return rec, nil
}

func init() {
	register(Spec{Opcode: 119, Description: "Event Data", Decode: decodeEventData})
}

// EventDataRequest asks for up to NumberOfEvents records starting at
// StartingEventLogIndex.
type EventDataRequest struct {
	NumberOfEvents        uint8
	StartingEventLogIndex int16
}

func (EventDataRequest) Opcode() uint8 { return 119 }
func (r EventDataRequest) EncodeBody() []byte {
	return builder().AppendByte(r.NumberOfEvents).AppendInt16(r.StartingEventLogIndex).Bytes()
}

// EventDataResponse carries the header fields plus the decoded records.
type EventDataResponse struct {
	NumberOfEvents        uint8
	StartingEventLogIndex int16
	CurrentEventLogIndex  int16
	Records               []EventRecord
}

func (EventDataResponse) isResponseBody() {}

func decodeEventData(body []byte, _ RequestBody, reg *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := EventDataResponse{
		NumberOfEvents:        c.TakeUint8(),
		StartingEventLogIndex: c.TakeInt16(),
		CurrentEventLogIndex:  c.TakeInt16(),
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	resp.Records = make([]EventRecord, 0, resp.NumberOfEvents)
	for i := uint8(0); i < resp.NumberOfEvents; i++ {
		raw := c.TakeN(EventRecordSize)
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		rec, err := DecodeEventRecord(raw, reg)
		if err != nil {
			return nil, err
		}
		resp.Records = append(resp.Records, rec)
	}
	return resp, nil
}
