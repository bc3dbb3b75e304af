package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func init() {
	register(Spec{Opcode: 139, Description: "History Information Data", Decode: decodeHistoryInformation})
}

// HistoryInformationCommand selects opcode 139's two request/response
// shapes.
type HistoryInformationCommand uint8

const (
	RequestConfiguredPoints HistoryInformationCommand = 0
	RequestPointData        HistoryInformationCommand = 1
)

// HistoryInformationRequest asks either for the list of history points
// configured on a segment (RequestConfiguredPoints) or for period/day
// value data for a specific set of points (RequestPointData).
type HistoryInformationRequest struct {
	Command             HistoryInformationCommand
	HistorySegment      uint8
	HistorySegmentIndex int16
	HistoryType         tlp.HistoryType
	NumberOfTimePeriods uint8
	RequestTimestamps   bool
	HistoryPoints       []uint8
}

func (HistoryInformationRequest) Opcode() uint8 { return 139 }

func (r HistoryInformationRequest) EncodeBody() []byte {
	b := builder().AppendByte(uint8(r.Command)).AppendByte(r.HistorySegment)
	if r.Command == RequestConfiguredPoints {
		return b.Bytes()
	}
	b.AppendInt16(r.HistorySegmentIndex)
	b.AppendByte(uint8(r.HistoryType))
	b.AppendByte(r.NumberOfTimePeriods)
	if r.RequestTimestamps {
		b.AppendByte(1)
	} else {
		b.AppendByte(0)
	}
	b.AppendByte(uint8(len(r.HistoryPoints)))
	for _, p := range r.HistoryPoints {
		b.AppendByte(p)
	}
	return b.Bytes()
}

// HistoryInformationResponse carries whichever fields its Command
// populates; the other group is left zero.
type HistoryInformationResponse struct {
	Command HistoryInformationCommand

	// RequestConfiguredPoints fields.
	HistorySegment           uint8
	NumberOfConfiguredPoints uint8
	ConfiguredPoints         []uint8

	// RequestPointData fields.
	CurrentIndex        int16
	NumberOfTimePeriods uint8
	RequestTimestamps   bool
	NumberOfPoints      uint8
	// ValuesByPeriod[i][pointNumber] = value, keyed by time-period index.
	ValuesByPeriod map[int]map[uint8]float32
	// ValuesByTime[timestamp][pointNumber] = value, populated instead of
	// ValuesByPeriod when RequestTimestamps is true.
	ValuesByTime map[time.Time]map[uint8]float32
}

func (HistoryInformationResponse) isResponseBody() {}

func decodeHistoryInformation(body []byte, req RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	command := HistoryInformationCommand(c.TakeUint8())
	resp := HistoryInformationResponse{Command: command}

	switch command {
	case RequestConfiguredPoints:
		resp.HistorySegment = c.TakeUint8()
		resp.NumberOfConfiguredPoints = c.TakeUint8()
		resp.ConfiguredPoints = append([]uint8(nil), c.Rest()...)
		return resp, nil
	case RequestPointData:
		hreq, ok := req.(HistoryInformationRequest)
		if !ok {
			return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 139 command 1 response decode requires the originating HistoryInformationRequest")
		}
		resp.HistorySegment = c.TakeUint8()
		resp.CurrentIndex = c.TakeInt16()
		resp.NumberOfTimePeriods = c.TakeUint8()
		resp.RequestTimestamps = c.TakeUint8() != 0
		resp.NumberOfPoints = c.TakeUint8()
		if int(resp.NumberOfPoints) != len(hreq.HistoryPoints) {
			return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 139 returned %d points, requested %d", resp.NumberOfPoints, len(hreq.HistoryPoints))
		}
		if resp.RequestTimestamps {
			resp.ValuesByTime = make(map[time.Time]map[uint8]float32, resp.NumberOfTimePeriods)
			for p := uint8(0); p < resp.NumberOfTimePeriods; p++ {
				ts := c.TakeTime()
				byPoint := make(map[uint8]float32, len(hreq.HistoryPoints))
				for _, point := range hreq.HistoryPoints {
					byPoint[point] = c.TakeFloat32()
				}
				resp.ValuesByTime[ts] = byPoint
			}
		} else {
			resp.ValuesByPeriod = make(map[int]map[uint8]float32, resp.NumberOfTimePeriods)
			for p := 0; p < int(resp.NumberOfTimePeriods); p++ {
				byPoint := make(map[uint8]float32, len(hreq.HistoryPoints))
				for _, point := range hreq.HistoryPoints {
					byPoint[point] = c.TakeFloat32()
				}
				resp.ValuesByPeriod[p] = byPoint
			}
		}
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		return resp, nil
	default:
		return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 139 returned unrecognized command %d", command)
	}
}
