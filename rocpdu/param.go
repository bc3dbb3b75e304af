package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func init() {
	register(Spec{Opcode: 167, Description: "Single Point Parameter(s)", Decode: decodeSinglePointParameters})
	register(Spec{Opcode: 180, Description: "Parameter(s)", Decode: decodeParameters})
}

// resolveDecodeParameter resolves (pointType, logicalNumber, paramNumber)
// against reg for decoding a wire value. An unknown point type is not
// fatal: the slot is materialized with a synthesized unknown point type
// and decoding continues. An unknown parameter within a known point type
// is fatal — its DataType can't be known, so continuing would mean
// guessing a width and misaligning every value decoded after it from the
// same cursor.
func resolveDecodeParameter(reg *tlp.Registry, pointType, logicalNumber, paramNumber uint8) (tlp.TLPInstance, error) {
	pt, err := reg.PointTypeByNumber(pointType)
	if err != nil {
		return tlp.FromNumbers(reg, pointType, logicalNumber, paramNumber), nil
	}
	p, err := pt.ParameterByNumber(paramNumber)
	if err != nil {
		return tlp.TLPInstance{}, rocerr.Wrap(rocerr.RegistryMiss, err)
	}
	return tlp.TLPInstance{PointType: pt, LogicalNumber: logicalNumber, Parameter: p}, nil
}

// --- 167: Single Point Parameter(s) ---

// SinglePointParameterRequest reads NumberOfParameters contiguous
// parameters, starting at StartingParameterNumber, from one (point_type,
// logical_number) instance — the parameter widths come from the schema
// registry, not the wire.
type SinglePointParameterRequest struct {
	PointType               uint8
	LogicalNumber           uint8
	NumberOfParameters      uint8
	StartingParameterNumber uint8
}

func (SinglePointParameterRequest) Opcode() uint8 { return 167 }
func (r SinglePointParameterRequest) EncodeBody() []byte {
	return builder().
		AppendByte(r.PointType).
		AppendByte(r.LogicalNumber).
		AppendByte(r.NumberOfParameters).
		AppendByte(r.StartingParameterNumber).
		Bytes()
}

type SinglePointParameterResponse struct {
	PointType               uint8
	LogicalNumber           uint8
	NumberOfParameters      uint8
	StartingParameterNumber uint8
	Values                  []tlp.TLPValue
}

func (SinglePointParameterResponse) isResponseBody() {}

func decodeSinglePointParameters(body []byte, _ RequestBody, reg *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := SinglePointParameterResponse{
		PointType:               c.TakeUint8(),
		LogicalNumber:           c.TakeUint8(),
		NumberOfParameters:      c.TakeUint8(),
		StartingParameterNumber: c.TakeUint8(),
	}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	now := time.Now().UTC()
	resp.Values = make([]tlp.TLPValue, 0, resp.NumberOfParameters)
	for i := uint8(0); i < resp.NumberOfParameters; i++ {
		paramNumber := resp.StartingParameterNumber + i
		inst, err := resolveDecodeParameter(reg, resp.PointType, resp.LogicalNumber, paramNumber)
		if err != nil {
			return nil, err
		}
		value := inst.Parameter.DataType.Decode(c)
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		resp.Values = append(resp.Values, tlp.NewTLPValue(inst, value, now))
	}
	return resp, nil
}

// --- 180: Parameter(s) ---

// ParameterRequest reads an arbitrary set of (possibly unrelated) TLPs in
// one exchange.
type ParameterRequest struct {
	TLPs []tlp.TLPInstance
}

func (ParameterRequest) Opcode() uint8 { return 180 }
func (r ParameterRequest) EncodeBody() []byte {
	b := builder().AppendByte(uint8(len(r.TLPs)))
	for _, t := range r.TLPs {
		triple := t.Triple()
		b.AppendByte(triple[0]).AppendByte(triple[1]).AppendByte(triple[2])
	}
	return b.Bytes()
}

type ParameterResponse struct {
	ValueCount uint8
	Values     []tlp.TLPValue
}

func (ParameterResponse) isResponseBody() {}

func decodeParameters(body []byte, _ RequestBody, reg *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	resp := ParameterResponse{ValueCount: c.TakeUint8()}
	if c.Err() != nil {
		return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
	}
	now := time.Now().UTC()
	resp.Values = make([]tlp.TLPValue, 0, resp.ValueCount)
	for i := uint8(0); i < resp.ValueCount; i++ {
		pointType, logicalNumber, paramNumber := c.TakeUint8(), c.TakeUint8(), c.TakeUint8()
		inst, err := resolveDecodeParameter(reg, pointType, logicalNumber, paramNumber)
		if err != nil {
			return nil, err
		}
		value := inst.Parameter.DataType.Decode(c)
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		resp.Values = append(resp.Values, tlp.NewTLPValue(inst, value, now))
	}
	return resp, nil
}
