package tlp

import "time"

// TLPInstance identifies one scalar slot on a device: a point type, a
// logical number (which instance of that point type), and a parameter.
// Equality is the (point_type_number, logical_number, parameter_number)
// triple.
type TLPInstance struct {
	PointType     *PointType
	LogicalNumber uint8
	Parameter     *Parameter
	TagName       string // filled in by IODefinition enrichment, may be empty
}

// Triple returns the (point_type, logical_number, parameter_number) key.
func (t TLPInstance) Triple() [3]uint8 {
	return [3]uint8{t.PointType.PointTypeNumber, t.LogicalNumber, t.Parameter.ParameterNumber}
}

// Equal compares two instances by their Triple.
func (t TLPInstance) Equal(other TLPInstance) bool {
	return t.Triple() == other.Triple()
}

// FromNumbers resolves (pointType, logicalNumber, paramNumber) against r,
// falling back to a synthesized UNKNOWN point type/parameter pair on a
// registry miss rather than failing outright, so a single unrecognized
// TLP in a response doesn't abort the whole decode.
func FromNumbers(r *Registry, pointType, logicalNumber, paramNumber uint8) TLPInstance {
	pt, err := r.PointTypeByNumber(pointType)
	if err != nil {
		unk := UnknownPointType(pointType)
		return TLPInstance{PointType: unk, LogicalNumber: logicalNumber, Parameter: &unk.Parameters[0]}
	}
	p, err := pt.ParameterByNumber(paramNumber)
	if err != nil {
		up := unknownParameter(paramNumber)
		return TLPInstance{PointType: pt, LogicalNumber: logicalNumber, Parameter: &up}
	}
	return TLPInstance{PointType: pt, LogicalNumber: logicalNumber, Parameter: p}
}

// TLPValue pairs a TLPInstance with a decoded value, timestamp, and (for
// BIN parameters) the per-bit breakdown.
type TLPValue struct {
	TLPInstance
	Value     Value
	Timestamp time.Time
	// BitValues is populated (len 8, LSB first) iff Parameter.DataType ==
	// BIN; empty otherwise.
	BitValues []bool
}

// NewTLPValue builds a TLPValue, filling BitValues automatically when the
// parameter is BIN.
func NewTLPValue(inst TLPInstance, value Value, ts time.Time) TLPValue {
	tv := TLPValue{TLPInstance: inst, Value: value, Timestamp: ts}
	if inst.Parameter.DataType == BIN {
		bits, _ := value.BitValues()
		tv.BitValues = bits[:]
	}
	return tv
}
