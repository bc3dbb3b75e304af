package tlp

import (
	"fmt"
	"strings"
)

// Access describes a parameter's read/write mode.
type Access int

const (
	AccessRO Access = iota
	AccessRW
	AccessWO
)

func (a Access) String() string {
	switch a {
	case AccessRW:
		return "RW"
	case AccessWO:
		return "WO"
	default:
		return "RO"
	}
}

// BitDescriptor names one bit of a BIN parameter. BitNumber 0 is the
// least-significant bit, matching Value.BitValues.
type BitDescriptor struct {
	BitNumber   int
	Name        string
	Description string
}

// Parameter is one numbered slot within a PointType.
type Parameter struct {
	ParameterNumber uint8
	Name            string
	Description     string
	DataType        DataType
	Access          Access
	Range           string
	// Bits is populated only when DataType == BIN; ordered by BitNumber.
	Bits []BitDescriptor
}

// PointType is a device-defined schema for a family of points: a fixed,
// ordered set of numbered Parameters.
type PointType struct {
	PointTypeNumber uint8
	Description     string
	Parameters      []Parameter

	byNumber map[uint8]*Parameter
	byName   map[string]*Parameter
}

func newPointType(number uint8, desc string, params []Parameter) *PointType {
	pt := &PointType{
		PointTypeNumber: number,
		Description:     desc,
		Parameters:      params,
		byNumber:        make(map[uint8]*Parameter, len(params)),
		byName:          make(map[string]*Parameter, len(params)),
	}
	for i := range params {
		p := &pt.Parameters[i]
		pt.byNumber[p.ParameterNumber] = p
		pt.byName[strings.ToUpper(p.Name)] = p
	}
	return pt
}

// ErrParameterNotFound is returned by ParameterByNumber/ParameterByName on
// a miss within a known PointType.
type ErrParameterNotFound struct {
	PointTypeNumber uint8
	Query           string
}

func (e *ErrParameterNotFound) Error() string {
	return fmt.Sprintf("tlp: parameter %q not found in point type %d", e.Query, e.PointTypeNumber)
}

// ParameterByNumber looks up a parameter by its numeric slot.
func (pt *PointType) ParameterByNumber(n uint8) (*Parameter, error) {
	if p, ok := pt.byNumber[n]; ok {
		return p, nil
	}
	return nil, &ErrParameterNotFound{PointTypeNumber: pt.PointTypeNumber, Query: fmt.Sprintf("#%d", n)}
}

// ParameterByName looks up a parameter case-insensitively by name.
func (pt *PointType) ParameterByName(name string) (*Parameter, error) {
	if p, ok := pt.byName[strings.ToUpper(name)]; ok {
		return p, nil
	}
	return nil, &ErrParameterNotFound{PointTypeNumber: pt.PointTypeNumber, Query: name}
}

// unknownParameter is shared by every synthesized unknown PointType.
func unknownParameter(n uint8) Parameter {
	return Parameter{
		ParameterNumber: n,
		Name:            fmt.Sprintf("UNKNOWN_PARAMETER_%d", n),
		Description:     "parameter not present in the registry",
		DataType:        UNKNOWN,
		Access:          AccessRO,
	}
}

// Registry maps point_type_number -> PointType. It is process-wide
// immutable once built; lookups return an error rather than failing construction.
type Registry struct {
	byNumber map[uint8]*PointType
	byName   map[string]*PointType
}

// NewRegistry builds a Registry from a set of point types. Construction
// is the only mutation point; the returned Registry is safe for
// concurrent read-only use afterward.
func NewRegistry(pointTypes ...*PointType) *Registry {
	r := &Registry{
		byNumber: make(map[uint8]*PointType, len(pointTypes)),
		byName:   make(map[string]*PointType, len(pointTypes)),
	}
	for _, pt := range pointTypes {
		r.byNumber[pt.PointTypeNumber] = pt
		r.byName[strings.ToUpper(pt.Description)] = pt
	}
	return r
}

// NewPointType is the constructor callers use to build entries for
// NewRegistry; kept separate from the unexported newPointType so the
// package can seed its own unknown/default entries identically.
func NewPointType(number uint8, desc string, params []Parameter) *PointType {
	return newPointType(number, desc, params)
}

// ErrPointTypeNotFound is returned by PointTypeByNumber/PointTypeByName.
type ErrPointTypeNotFound struct{ Query string }

func (e *ErrPointTypeNotFound) Error() string {
	return fmt.Sprintf("tlp: point type %q not found", e.Query)
}

// PointTypeByNumber looks up a point type by number.
func (r *Registry) PointTypeByNumber(n uint8) (*PointType, error) {
	if pt, ok := r.byNumber[n]; ok {
		return pt, nil
	}
	return nil, &ErrPointTypeNotFound{Query: fmt.Sprintf("#%d", n)}
}

// PointTypeByName looks up a point type case-insensitively by its
// description.
func (r *Registry) PointTypeByName(name string) (*PointType, error) {
	if pt, ok := r.byName[strings.ToUpper(name)]; ok {
		return pt, nil
	}
	return nil, &ErrPointTypeNotFound{Query: name}
}

// UnknownPointType synthesizes an opaque PointType wrapping number n with
// a single UNKNOWN parameter, used to avoid failing an entire response
// decode when a device reports a point type absent from the registry.
func UnknownPointType(n uint8) *PointType {
	return newPointType(n, fmt.Sprintf("UNKNOWN_POINT_TYPE_%d", n), []Parameter{unknownParameter(0)})
}
