package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func init() {
	register(Spec{Opcode: 105, Description: "Today's and Yesterday's Min/Max Values", Decode: decodeTodayYesterdayMinMax})
	register(Spec{Opcode: 108, Description: "History Tag and Periodic Index", Decode: decodeHistoryTagPeriodIndex})
	register(Spec{Opcode: 135, Description: "Single Point History Data", Decode: decodeSinglePointHistory})
	register(Spec{Opcode: 136, Description: "Multiple History Point Data", Decode: decodeMultiplePointHistory})
	register(Spec{Opcode: 137, Description: "History Index for a Day", Decode: decodeDailyHistoryIndex})
	register(Spec{Opcode: 138, Description: "Daily and Periodic History for a Day", Decode: decodeDailyPeriodicHistory})
}

// --- 105: Today's and Yesterday's Min/Max Values ---

type TodayYesterdayMinMaxRequest struct {
	HistorySegment uint8
	HistoryPoint   uint8
}

func (TodayYesterdayMinMaxRequest) Opcode() uint8 { return 105 }
func (r TodayYesterdayMinMaxRequest) EncodeBody() []byte {
	return builder().AppendByte(r.HistorySegment).AppendByte(r.HistoryPoint).Bytes()
}

type TodayYesterdayMinMaxResponse struct {
	HistorySegment        uint8
	HistoryPoint          uint8
	HistoryArchiveMethod  tlp.ArchiveType
	TLP                   tlp.TLPInstance
	CurrentValue          float32
	MinValueToday         float32
	MinValueTodayTime     time.Time
	MaxValueToday         float32
	MaxValueTodayTime     time.Time
	MinValueYesterday     float32
	MinValueYesterdayTime time.Time
	MaxValueYesterday     float32
	MaxValueYesterdayTime time.Time
	LastPeriodValue       float32
}

func (TodayYesterdayMinMaxResponse) isResponseBody() {}

// historyTimeTuple decodes the 5-byte (sec, min, hour, day, month) compact
// timestamp opcode 105 uses for its min/max occurrence times — the current
// year is assumed, since the wire format carries no year field.
func historyTimeTuple(c *wire.Cursor, now time.Time) time.Time {
	sec := c.TakeUint8()
	minute := c.TakeUint8()
	hour := c.TakeUint8()
	day := c.TakeUint8()
	month := c.TakeUint8()
	return time.Date(now.Year(), time.Month(month), int(day), int(hour), int(minute), int(sec), 0, time.UTC)
}

func decodeTodayYesterdayMinMax(body []byte, _ RequestBody, reg *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := TodayYesterdayMinMaxResponse{
		HistorySegment:       c.TakeUint8(),
		HistoryPoint:         c.TakeUint8(),
		HistoryArchiveMethod: tlp.ArchiveType(c.TakeUint8()),
	}
	pointType, logicalNumber, parameter := c.TakeUint8(), c.TakeUint8(), c.TakeUint8()
	resp.TLP = tlp.FromNumbers(reg, pointType, logicalNumber, parameter)
	resp.CurrentValue = c.TakeFloat32()
	resp.MinValueToday = c.TakeFloat32()
	resp.MaxValueToday = c.TakeFloat32()
	now := time.Now().UTC()
	resp.MinValueTodayTime = historyTimeTuple(c, now)
	resp.MaxValueTodayTime = historyTimeTuple(c, now)
	resp.MinValueYesterday = c.TakeFloat32()
	resp.MaxValueYesterday = c.TakeFloat32()
	resp.MinValueYesterdayTime = historyTimeTuple(c, now)
	resp.MaxValueYesterdayTime = historyTimeTuple(c, now)
	resp.LastPeriodValue = c.TakeFloat32()
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 108: History Tag and Periodic Index ---

type HistoryTagPeriodIndexRequest struct {
	HistorySegment uint8
	HistoryPoints  []uint8
}

func (HistoryTagPeriodIndexRequest) Opcode() uint8 { return 108 }
func (r HistoryTagPeriodIndexRequest) EncodeBody() []byte {
	b := builder().AppendByte(r.HistorySegment).AppendByte(uint8(len(r.HistoryPoints)))
	for _, p := range r.HistoryPoints {
		b.AppendByte(p)
	}
	return b.Bytes()
}

type HistoryTagPeriodIndexResponse struct {
	HistorySegment        uint8
	NumberOfHistoryPoints uint8
	PeriodicIndex         int16
	// TagNames is indexed by history point number.
	TagNames map[uint8]string
}

func (HistoryTagPeriodIndexResponse) isResponseBody() {}

func decodeHistoryTagPeriodIndex(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := HistoryTagPeriodIndexResponse{
		HistorySegment:        c.TakeUint8(),
		NumberOfHistoryPoints: c.TakeUint8(),
		PeriodicIndex:         c.TakeInt16(),
		TagNames:              make(map[uint8]string),
	}
	for i := uint8(0); i < resp.NumberOfHistoryPoints; i++ {
		pointNumber := c.TakeUint8()
		resp.TagNames[pointNumber] = c.TakeASCII(10)
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 135: Single Point History Data ---

type SinglePointHistoryRequest struct {
	HistorySegment              uint8
	HistoryPointNumber          uint8
	HistoryType                 tlp.HistoryType
	StartingHistorySegmentIndex int16
	NumberOfValues              uint8
}

func (SinglePointHistoryRequest) Opcode() uint8 { return 135 }
func (r SinglePointHistoryRequest) EncodeBody() []byte {
	return builder().
		AppendByte(r.HistorySegment).
		AppendByte(r.HistoryPointNumber).
		AppendByte(uint8(r.HistoryType)).
		AppendInt16(r.StartingHistorySegmentIndex).
		AppendByte(r.NumberOfValues).
		Bytes()
}

// SinglePointHistoryValue holds either a float value or a timestamp,
// depending on the originating request's HistoryType.
type SinglePointHistoryValue struct {
	Value  float32
	Time   time.Time
	IsTime bool
}

type SinglePointHistoryResponse struct {
	HistorySegment             uint8
	HistoryPointNumber         uint8
	CurrentHistorySegmentIndex int16
	NumberOfValues             uint8
	Values                     []SinglePointHistoryValue
}

func (SinglePointHistoryResponse) isResponseBody() {}

func decodeSinglePointHistory(body []byte, req RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	sreq, ok := req.(SinglePointHistoryRequest)
	if !ok {
		return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 135 response decode requires the originating SinglePointHistoryRequest")
	}
	c := wire.NewCursor(body)
	resp := SinglePointHistoryResponse{
		HistorySegment:             c.TakeUint8(),
		HistoryPointNumber:         c.TakeUint8(),
		CurrentHistorySegmentIndex: c.TakeInt16(),
		NumberOfValues:             c.TakeUint8(),
	}
	resp.Values = make([]SinglePointHistoryValue, 0, resp.NumberOfValues)
	isTime := sreq.HistoryType.IsTimeStamps()
	for i := uint8(0); i < resp.NumberOfValues; i++ {
		if isTime {
			resp.Values = append(resp.Values, SinglePointHistoryValue{Time: c.TakeTime(), IsTime: true})
		} else {
			resp.Values = append(resp.Values, SinglePointHistoryValue{Value: c.TakeFloat32()})
		}
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 136: Multiple History Point Data ---

type MultiplePointHistoryRequest struct {
	HistorySegment        uint8
	HistorySegmentIndex   int16
	HistoryType           tlp.HistoryType
	StartingHistoryPoint  uint8
	NumberOfHistoryPoints uint8
	NumberOfTimePeriods   uint8
}

func (MultiplePointHistoryRequest) Opcode() uint8 { return 136 }
func (r MultiplePointHistoryRequest) EncodeBody() []byte {
	return builder().
		AppendByte(r.HistorySegment).
		AppendInt16(r.HistorySegmentIndex).
		AppendByte(uint8(r.HistoryType)).
		AppendByte(r.StartingHistoryPoint).
		AppendByte(r.NumberOfHistoryPoints).
		AppendByte(r.NumberOfTimePeriods).
		Bytes()
}

// MultiplePointHistoryResponse reports, per period timestamp, a value for
// every requested history point number.
type MultiplePointHistoryResponse struct {
	HistorySegment             uint8
	HistorySegmentIndex        int16
	CurrentHistorySegmentIndex int16
	NumberOfDataElements       uint8
	// Values[timestamp][pointNumber] = value.
	Values map[time.Time]map[uint8]float32
}

func (MultiplePointHistoryResponse) isResponseBody() {}

func decodeMultiplePointHistory(body []byte, req RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	mreq, ok := req.(MultiplePointHistoryRequest)
	if !ok {
		return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 136 response decode requires the originating MultiplePointHistoryRequest")
	}
	c := wire.NewCursor(body)
	resp := MultiplePointHistoryResponse{
		HistorySegment:             c.TakeUint8(),
		HistorySegmentIndex:        c.TakeInt16(),
		CurrentHistorySegmentIndex: c.TakeInt16(),
		NumberOfDataElements:       c.TakeUint8(),
		Values:                     make(map[time.Time]map[uint8]float32),
	}
	for p := uint8(0); p < mreq.NumberOfTimePeriods; p++ {
		ts := c.TakeTime()
		byPoint := make(map[uint8]float32, mreq.NumberOfHistoryPoints)
		for i := uint8(0); i < mreq.NumberOfHistoryPoints; i++ {
			byPoint[mreq.StartingHistoryPoint+i] = c.TakeFloat32()
		}
		resp.Values[ts] = byPoint
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 137: History Index for a Day ---

type DailyHistoryIndexRequest struct {
	HistorySegment uint8
	DayRequested   uint8
	MonthRequested uint8
}

func (DailyHistoryIndexRequest) Opcode() uint8 { return 137 }
func (r DailyHistoryIndexRequest) EncodeBody() []byte {
	return builder().AppendByte(r.HistorySegment).AppendByte(r.DayRequested).AppendByte(r.MonthRequested).Bytes()
}

type DailyHistoryIndexResponse struct {
	HistorySegment          uint8
	StartingPeriodicIndex   int16
	NumberOfPeriodicEntries int16
	DailyIndex              int16
	NumberOfDailyEntries    int16
}

func (DailyHistoryIndexResponse) isResponseBody() {}

func decodeDailyHistoryIndex(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := DailyHistoryIndexResponse{
		HistorySegment:          c.TakeUint8(),
		StartingPeriodicIndex:   c.TakeInt16(),
		NumberOfPeriodicEntries: c.TakeInt16(),
		DailyIndex:              c.TakeInt16(),
		NumberOfDailyEntries:    c.TakeInt16(),
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}

// --- 138: Daily and Periodic History for a Day ---

type DailyPeriodicHistoryRequest struct {
	HistorySegment uint8
	HistoryPoint   uint8
	DayRequested   uint8
	MonthRequested uint8
}

func (DailyPeriodicHistoryRequest) Opcode() uint8 { return 138 }
func (r DailyPeriodicHistoryRequest) EncodeBody() []byte {
	return builder().AppendByte(r.HistorySegment).AppendByte(r.HistoryPoint).
		AppendByte(r.DayRequested).AppendByte(r.MonthRequested).Bytes()
}

type DailyPeriodicHistoryResponse struct {
	HistorySegment          uint8
	HistoryPoint            uint8
	DayRequested            uint8
	MonthRequested          uint8
	NumberOfPeriodicEntries int16
	NumberOfDailyEntries    int16
	// PeriodicValues/DailyValues are indexed by period/day position.
	PeriodicValues map[int]float32
	DailyValues    map[int]float32
}

func (DailyPeriodicHistoryResponse) isResponseBody() {}

// decodeDailyPeriodicHistory reads the header then the periodic and daily
// float arrays back-to-back starting immediately after the 8-byte header
// (see DESIGN.md for why this reads contiguously rather than resetting to
// byte 0 after the header).
func decodeDailyPeriodicHistory(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := DailyPeriodicHistoryResponse{
		HistorySegment:          c.TakeUint8(),
		HistoryPoint:            c.TakeUint8(),
		DayRequested:            c.TakeUint8(),
		MonthRequested:          c.TakeUint8(),
		NumberOfPeriodicEntries: c.TakeInt16(),
		NumberOfDailyEntries:    c.TakeInt16(),
	}
	resp.PeriodicValues = make(map[int]float32, resp.NumberOfPeriodicEntries)
	for i := 0; i < int(resp.NumberOfPeriodicEntries); i++ {
		resp.PeriodicValues[i] = c.TakeFloat32()
	}
	resp.DailyValues = make(map[int]float32, resp.NumberOfDailyEntries)
	for i := 0; i < int(resp.NumberOfDailyEntries); i++ {
		resp.DailyValues[i] = c.TakeFloat32()
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	return resp, nil
}
