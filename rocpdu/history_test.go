package rocpdu

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func TestDecodeTodayYesterdayMinMax(t *testing.T) {
	reg := tlp.DefaultRegistry()
	b := wire.NewBuilder().
		AppendByte(1).                                              // HistorySegment
		AppendByte(3).                                              // HistoryPoint
		AppendByte(uint8(tlp.Average)).                             // HistoryArchiveMethod
		AppendByte(103).AppendByte(2).AppendByte(tlp.ParamEUValue). // TLP
		AppendFloat32(10).                                          // CurrentValue
		AppendFloat32(1).                                           // MinValueToday
		AppendFloat32(20).                                          // MaxValueToday
		AppendBytes(0, 0, 1, 0, 1, 30, 0, 2, 0, 1).                 // min/max today time tuples
		AppendFloat32(0.5).                                         // MinValueYesterday
		AppendFloat32(25).                                          // MaxValueYesterday
		AppendBytes(0, 0, 3, 0, 1, 0, 0, 4, 0, 1).                  // min/max yesterday time tuples
		AppendFloat32(15).                                          // LastPeriodValue
		Bytes()

	resp, err := decodeTodayYesterdayMinMax(b, nil, reg)
	assert.NilError(t, err)
	r := resp.(TodayYesterdayMinMaxResponse)
	assert.Equal(t, r.HistorySegment, uint8(1))
	assert.Equal(t, r.HistoryArchiveMethod, tlp.Average)
	assert.Equal(t, r.TLP.Parameter.ParameterNumber, tlp.ParamEUValue)
	assert.Equal(t, r.CurrentValue, float32(10))
	assert.Equal(t, r.MaxValueYesterday, float32(25))
	assert.Equal(t, r.LastPeriodValue, float32(15))
}

func TestDecodeHistoryTagPeriodIndex(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(1).
		AppendByte(2).
		AppendInt16(100).
		AppendByte(5).
		AppendASCII("FLOW_A", 10).
		AppendByte(6).
		AppendASCII("FLOW_B", 10).
		Bytes()

	resp, err := decodeHistoryTagPeriodIndex(body, nil, nil)
	assert.NilError(t, err)
	r := resp.(HistoryTagPeriodIndexResponse)
	assert.Equal(t, r.NumberOfHistoryPoints, uint8(2))
	assert.Equal(t, r.TagNames[5], "FLOW_A")
	assert.Equal(t, r.TagNames[6], "FLOW_B")
}

func TestDecodeSinglePointHistoryValuesVsTimestamps(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(1).
		AppendByte(3).
		AppendInt16(50).
		AppendByte(2).
		AppendFloat32(1.1).
		AppendFloat32(2.2).
		Bytes()
	req := SinglePointHistoryRequest{HistoryType: tlp.PeriodicValues}
	resp, err := decodeSinglePointHistory(body, req, nil)
	assert.NilError(t, err)
	r := resp.(SinglePointHistoryResponse)
	assert.Equal(t, len(r.Values), 2)
	assert.Assert(t, !r.Values[0].IsTime)
	assert.Equal(t, r.Values[0].Value, float32(1.1))

	tsBody := wire.NewBuilder().
		AppendByte(1).
		AppendByte(3).
		AppendInt16(50).
		AppendByte(1).
		AppendUint32(1700000000).
		Bytes()
	tsReq := SinglePointHistoryRequest{HistoryType: tlp.PeriodicTimeStamps}
	tsResp, err := decodeSinglePointHistory(tsBody, tsReq, nil)
	assert.NilError(t, err)
	tr := tsResp.(SinglePointHistoryResponse)
	assert.Assert(t, tr.Values[0].IsTime)
	assert.Assert(t, tr.Values[0].Time.Equal(time.Unix(1700000000, 0).UTC()))
}

func TestDecodeSinglePointHistoryRequiresOriginatingRequest(t *testing.T) {
	_, err := decodeSinglePointHistory([]byte{1, 2, 3, 4, 5}, nil, nil)
	assert.ErrorContains(t, err, "requires the originating SinglePointHistoryRequest")
}

func TestDecodeMultiplePointHistory(t *testing.T) {
	req := MultiplePointHistoryRequest{
		StartingHistoryPoint:  10,
		NumberOfHistoryPoints: 2,
		NumberOfTimePeriods:   1,
	}
	body := wire.NewBuilder().
		AppendByte(1).
		AppendInt16(5).
		AppendInt16(6).
		AppendByte(2).
		AppendUint32(1700000000).
		AppendFloat32(1.0).
		AppendFloat32(2.0).
		Bytes()

	resp, err := decodeMultiplePointHistory(body, req, nil)
	assert.NilError(t, err)
	r := resp.(MultiplePointHistoryResponse)
	ts := time.Unix(1700000000, 0).UTC()
	assert.Equal(t, r.Values[ts][10], float32(1.0))
	assert.Equal(t, r.Values[ts][11], float32(2.0))
}

func TestDecodeDailyHistoryIndex(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(1).
		AppendInt16(10).
		AppendInt16(20).
		AppendInt16(30).
		AppendInt16(40).
		Bytes()
	resp, err := decodeDailyHistoryIndex(body, nil, nil)
	assert.NilError(t, err)
	r := resp.(DailyHistoryIndexResponse)
	assert.Equal(t, r.StartingPeriodicIndex, int16(10))
	assert.Equal(t, r.NumberOfDailyEntries, int16(40))
}

func TestDecodeDailyPeriodicHistoryReadsContiguously(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(1).
		AppendByte(2).
		AppendByte(15).
		AppendByte(6).
		AppendInt16(2).
		AppendInt16(1).
		AppendFloat32(10).
		AppendFloat32(20).
		AppendFloat32(99).
		Bytes()

	resp, err := decodeDailyPeriodicHistory(body, nil, nil)
	assert.NilError(t, err)
	r := resp.(DailyPeriodicHistoryResponse)
	assert.Equal(t, r.PeriodicValues[0], float32(10))
	assert.Equal(t, r.PeriodicValues[1], float32(20))
	assert.Equal(t, r.DailyValues[0], float32(99))
}
