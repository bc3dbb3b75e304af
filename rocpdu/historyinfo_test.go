package rocpdu

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func TestHistoryInformationRequestEncodeBothCommands(t *testing.T) {
	list := HistoryInformationRequest{Command: RequestConfiguredPoints, HistorySegment: 1}
	assert.DeepEqual(t, list.EncodeBody(), []byte{0, 1})

	data := HistoryInformationRequest{
		Command:             RequestPointData,
		HistorySegment:      1,
		HistorySegmentIndex: 10,
		HistoryType:         tlp.DailyValues,
		NumberOfTimePeriods: 2,
		RequestTimestamps:   true,
		HistoryPoints:       []uint8{5, 6},
	}
	assert.DeepEqual(t, data.EncodeBody(), []byte{1, 1, 10, 0, uint8(tlp.DailyValues), 2, 1, 2, 5, 6})
}

func TestDecodeHistoryInformationRequestConfiguredPoints(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(uint8(RequestConfiguredPoints)).
		AppendByte(1).
		AppendByte(3).
		AppendBytes(5, 6, 7).
		Bytes()

	resp, err := decodeHistoryInformation(body, nil, nil)
	assert.NilError(t, err)
	r := resp.(HistoryInformationResponse)
	assert.Equal(t, r.NumberOfConfiguredPoints, uint8(3))
	assert.DeepEqual(t, r.ConfiguredPoints, []uint8{5, 6, 7})
}

func TestDecodeHistoryInformationRequestPointDataPeriods(t *testing.T) {
	req := HistoryInformationRequest{HistoryPoints: []uint8{10, 11}}
	body := wire.NewBuilder().
		AppendByte(uint8(RequestPointData)).
		AppendByte(1).
		AppendInt16(7).
		AppendByte(1).
		AppendByte(0). // RequestTimestamps = false
		AppendByte(2).
		AppendFloat32(1.0).
		AppendFloat32(2.0).
		Bytes()

	resp, err := decodeHistoryInformation(body, req, nil)
	assert.NilError(t, err)
	r := resp.(HistoryInformationResponse)
	assert.Equal(t, r.ValuesByPeriod[0][10], float32(1.0))
	assert.Equal(t, r.ValuesByPeriod[0][11], float32(2.0))
}

func TestDecodeHistoryInformationRequestPointDataTimestamps(t *testing.T) {
	req := HistoryInformationRequest{HistoryPoints: []uint8{10}}
	body := wire.NewBuilder().
		AppendByte(uint8(RequestPointData)).
		AppendByte(1).
		AppendInt16(7).
		AppendByte(1).
		AppendByte(1). // RequestTimestamps = true
		AppendByte(1).
		AppendUint32(1700000000).
		AppendFloat32(5.0).
		Bytes()

	resp, err := decodeHistoryInformation(body, req, nil)
	assert.NilError(t, err)
	r := resp.(HistoryInformationResponse)
	ts := time.Unix(1700000000, 0).UTC()
	assert.Equal(t, r.ValuesByTime[ts][10], float32(5.0))
}

func TestDecodeHistoryInformationRequestPointDataRequiresOriginatingRequest(t *testing.T) {
	body := wire.NewBuilder().AppendByte(uint8(RequestPointData)).Bytes()
	_, err := decodeHistoryInformation(body, nil, nil)
	assert.ErrorContains(t, err, "requires the originating HistoryInformationRequest")
}

func TestDecodeHistoryInformationPointCountMismatch(t *testing.T) {
	req := HistoryInformationRequest{HistoryPoints: []uint8{10, 11}}
	body := wire.NewBuilder().
		AppendByte(uint8(RequestPointData)).
		AppendByte(1).
		AppendInt16(7).
		AppendByte(1).
		AppendByte(0).
		AppendByte(1). // claims 1 point, request has 2
		Bytes()

	_, err := decodeHistoryInformation(body, req, nil)
	assert.ErrorContains(t, err, "returned 1 points, requested 2")
}

func TestDecodeHistoryInformationUnrecognizedCommand(t *testing.T) {
	body := wire.NewBuilder().AppendByte(9).Bytes()
	_, err := decodeHistoryInformation(body, nil, nil)
	assert.ErrorContains(t, err, "unrecognized command")
}
