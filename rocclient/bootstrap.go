package rocclient

import (
	"context"
	"encoding/json"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/rocpdu"
	"github.com/rocplus/go-rocplus/tlp"
)

// IOPoint is one physical I/O location's resolved point type, logical
// number, and (when the point type carries a tag) tag name.
type IOPoint struct {
	Location      uint8
	PointType     uint8
	LogicalNumber uint8
	TagName       string
}

// IODefinition is the cached result of InitializeIODefinition: one entry per physical I/O location.
type IODefinition struct {
	Points []IOPoint
}

// InitializeIODefinition reads logical numbers (opcode 50, request type
// IOPositionLogicalNumbers) and point types (opcode 50, request type
// IOPositionPointTypes) across every physical location, then for every
// point whose point type matches tlp.AnalogInputPointTypeNumber reads its
// POINT_TAG_ID parameter (opcode 180) to fill TagName.
func (c *Client) InitializeIODefinition(ctx context.Context) (*IODefinition, error) {
	pointTypesResp, err := c.Exchange(ctx, rocpdu.IOPointPositionRequest{RequestType: rocpdu.IOPositionPointTypes})
	if err != nil {
		return nil, err
	}
	logicalResp, err := c.Exchange(ctx, rocpdu.IOPointPositionRequest{RequestType: rocpdu.IOPositionLogicalNumbers})
	if err != nil {
		return nil, err
	}
	pointTypes := pointTypesResp.(rocpdu.IOPointPositionResponse).Values
	logicalNumbers := logicalResp.(rocpdu.IOPointPositionResponse).Values

	def := &IODefinition{Points: make([]IOPoint, 0, len(pointTypes))}
	var tagLookups []tlp.TLPInstance
	tagTargets := make(map[int]bool)
	for i := range pointTypes {
		pt := pointTypes[i]
		var ln uint8
		if i < len(logicalNumbers) {
			ln = logicalNumbers[i]
		}
		def.Points = append(def.Points, IOPoint{Location: uint8(i), PointType: pt, LogicalNumber: ln})
		if pt == tlp.AnalogInputPointTypeNumber {
			tagLookups = append(tagLookups, tlp.FromNumbers(c.reg, pt, ln, tlp.ParamPointTagID))
			tagTargets[i] = true
		}
	}

	if len(tagLookups) > 0 {
		resp, err := c.Exchange(ctx, rocpdu.ParameterRequest{TLPs: tagLookups})
		if err != nil {
			return nil, err
		}
		values := resp.(rocpdu.ParameterResponse).Values
		idx := 0
		for i := range def.Points {
			if !tagTargets[i] {
				continue
			}
			if idx < len(values) {
				def.Points[i].TagName = values[idx].Value.String()
				idx++
			}
		}
	}

	c.snapshot.mu.Lock()
	c.snapshot.io = def
	c.snapshot.mu.Unlock()
	return def, nil
}

// OpcodeTableEntry is one resolved parameter of a configurable opcode
// table.
type OpcodeTableEntry struct {
	TableNumber uint8
	Value       tlp.TLPValue
	TagName     string
}

// ConfigurableOpcodeTables is the cached result of
// InitializeConfigurableOpcodeDefinition: 44 entries per table, 16 tables.
type ConfigurableOpcodeTables struct {
	Tables [][]OpcodeTableEntry
}

const (
	configurableOpcodeTableCount      = 16
	configurableOpcodeEntriesPerTable = 44
)

// InitializeConfigurableOpcodeDefinition reads 44 contiguous parameters
// of each of the 16 opcode tables via opcode 167, resolving each entry's
// TLP through the registry and, when the I/O snapshot is defined, filling
// in its tag name.
func (c *Client) InitializeConfigurableOpcodeDefinition(ctx context.Context) (*ConfigurableOpcodeTables, error) {
	out := &ConfigurableOpcodeTables{Tables: make([][]OpcodeTableEntry, configurableOpcodeTableCount)}
	for table := uint8(0); table < configurableOpcodeTableCount; table++ {
		resp, err := c.Exchange(ctx, rocpdu.SinglePointParameterRequest{
			PointType:               tlp.ConfigurableOpcodeTablePointTypeNumber,
			LogicalNumber:           table,
			NumberOfParameters:      configurableOpcodeEntriesPerTable,
			StartingParameterNumber: 0,
		})
		if err != nil {
			return nil, err
		}
		values := resp.(rocpdu.SinglePointParameterResponse).Values
		entries := make([]OpcodeTableEntry, 0, len(values))
		for _, v := range values {
			entries = append(entries, OpcodeTableEntry{TableNumber: table, Value: v, TagName: c.lookupTag(v.TLPInstance)})
		}
		out.Tables[table] = entries
	}
	c.snapshot.mu.Lock()
	c.snapshot.opcodes = out
	c.snapshot.mu.Unlock()
	return out, nil
}

// HistoryPointConfig is one logged point's configuration within a
// segment (tlp.HistoryPointConfigurationPointTypeNumber).
type HistoryPointConfig struct {
	PointNumber uint8
	Values      []tlp.TLPValue
}

// HistorySegment is one segment's header plus, when requested, each
// configured point's configuration.
type HistorySegment struct {
	SegmentNumber uint8
	Header        []tlp.TLPValue
	Points        []HistoryPointConfig
}

// HistoryDefinition is the cached result of InitializeHistoryDefinition:
// segments 0..=12.
type HistoryDefinition struct {
	Segments []HistorySegment
}

const historySegmentCount = 13 // segments 0..=12

// InitializeHistoryDefinition reads segment 0..=12 configuration (14
// parameters per segment, opcode 167) and, if withPoints is set, every
// configured point's configuration (5 parameters per point) too.
func (c *Client) InitializeHistoryDefinition(ctx context.Context, withPoints bool) (*HistoryDefinition, error) {
	def := &HistoryDefinition{Segments: make([]HistorySegment, 0, historySegmentCount)}
	for seg := uint8(0); seg < historySegmentCount; seg++ {
		header, err := c.GetHistorySegmentConfiguration(ctx, seg)
		if err != nil {
			return nil, err
		}
		segment := HistorySegment{SegmentNumber: seg, Header: header}
		if withPoints {
			numberOfPoints := segmentConfiguredPointCount(header)
			for point := uint8(0); point < numberOfPoints; point++ {
				values, err := c.GetHistorySegmentPointConfiguration(ctx, seg, point)
				if err != nil {
					return nil, err
				}
				segment.Points = append(segment.Points, HistoryPointConfig{PointNumber: point, Values: values})
			}
		}
		def.Segments = append(def.Segments, segment)
	}
	c.snapshot.mu.Lock()
	c.snapshot.history = def
	c.snapshot.mu.Unlock()
	return def, nil
}

// segmentConfiguredPointCount reads the NUMBER_OF_CONFIGURED_POINTS
// parameter (index 11) out of a decoded segment header.
func segmentConfiguredPointCount(header []tlp.TLPValue) uint8 {
	const numberOfConfiguredPointsIndex = 11
	if numberOfConfiguredPointsIndex >= len(header) {
		return 0
	}
	n, err := header[numberOfConfiguredPointsIndex].Value.Int64()
	if err != nil {
		return 0
	}
	return uint8(n)
}

// GetHistorySegmentConfiguration decodes one segment's 14-parameter
// header (opcode 167, tlp.HistorySegmentConfigurationPointTypeNumber).
func (c *Client) GetHistorySegmentConfiguration(ctx context.Context, segment uint8) ([]tlp.TLPValue, error) {
	resp, err := c.Exchange(ctx, rocpdu.SinglePointParameterRequest{
		PointType:               tlp.HistorySegmentConfigurationPointTypeNumber,
		LogicalNumber:           segment,
		NumberOfParameters:      14,
		StartingParameterNumber: 0,
	})
	if err != nil {
		return nil, err
	}
	return resp.(rocpdu.SinglePointParameterResponse).Values, nil
}

// GetHistorySegmentPointConfiguration decodes one logged point's
// 5-parameter configuration within a segment (opcode 167,
// tlp.HistoryPointConfigurationPointTypeNumber).
func (c *Client) GetHistorySegmentPointConfiguration(ctx context.Context, segment, point uint8) ([]tlp.TLPValue, error) {
	resp, err := c.Exchange(ctx, rocpdu.SinglePointParameterRequest{
		PointType:               tlp.HistoryPointConfigurationPointTypeNumber,
		LogicalNumber:           point,
		NumberOfParameters:      5,
		StartingParameterNumber: 0,
	})
	if err != nil {
		return nil, err
	}
	return resp.(rocpdu.SinglePointParameterResponse).Values, nil
}

// SystemConfig is the cached result of GetSystemConfig.
type SystemConfig struct {
	rocpdu.SystemConfigResponse
}

// GetSystemConfig reads and caches opcode 6's response.
func (c *Client) GetSystemConfig(ctx context.Context) (*SystemConfig, error) {
	resp, err := c.Exchange(ctx, rocpdu.SystemConfigRequest{})
	if err != nil {
		return nil, err
	}
	sc := &SystemConfig{SystemConfigResponse: resp.(rocpdu.SystemConfigResponse)}
	c.snapshot.mu.Lock()
	c.snapshot.system = sc
	c.snapshot.mu.Unlock()
	return sc, nil
}

// GetClockTime reads opcode 7.
func (c *Client) GetClockTime(ctx context.Context) (rocpdu.ReadClockResponse, error) {
	resp, err := c.Exchange(ctx, rocpdu.ReadClockRequest{})
	if err != nil {
		return rocpdu.ReadClockResponse{}, err
	}
	return resp.(rocpdu.ReadClockResponse), nil
}

// GetIOPointTypes reads opcode 50 (IOPositionPointTypes).
func (c *Client) GetIOPointTypes(ctx context.Context) ([]uint8, error) {
	resp, err := c.Exchange(ctx, rocpdu.IOPointPositionRequest{RequestType: rocpdu.IOPositionPointTypes})
	if err != nil {
		return nil, err
	}
	return resp.(rocpdu.IOPointPositionResponse).Values, nil
}

// GetIOLogicalNumbers reads opcode 50 (IOPositionLogicalNumbers).
func (c *Client) GetIOLogicalNumbers(ctx context.Context) ([]uint8, error) {
	resp, err := c.Exchange(ctx, rocpdu.IOPointPositionRequest{RequestType: rocpdu.IOPositionLogicalNumbers})
	if err != nil {
		return nil, err
	}
	return resp.(rocpdu.IOPointPositionResponse).Values, nil
}

// GetIOPointTagIDs resolves POINT_TAG_ID for every analog-input point
// already present in the cached IODefinition, fetching one if needed.
func (c *Client) GetIOPointTagIDs(ctx context.Context) (map[uint8]string, error) {
	c.snapshot.mu.RLock()
	io := c.snapshot.io
	c.snapshot.mu.RUnlock()
	if io == nil {
		var err error
		io, err = c.InitializeIODefinition(ctx)
		if err != nil {
			return nil, err
		}
	}
	out := make(map[uint8]string)
	for _, p := range io.Points {
		if p.PointType == tlp.AnalogInputPointTypeNumber {
			out[p.Location] = p.TagName
		}
	}
	return out, nil
}

// GetOpcodeTableDefinition returns the cached configurable opcode table
// set, initializing it first if necessary.
func (c *Client) GetOpcodeTableDefinition(ctx context.Context) (*ConfigurableOpcodeTables, error) {
	c.snapshot.mu.RLock()
	tables := c.snapshot.opcodes
	c.snapshot.mu.RUnlock()
	if tables != nil {
		return tables, nil
	}
	return c.InitializeConfigurableOpcodeDefinition(ctx)
}

func (c *Client) lookupTag(inst tlp.TLPInstance) string {
	c.snapshot.mu.RLock()
	io := c.snapshot.io
	c.snapshot.mu.RUnlock()
	if io == nil {
		return ""
	}
	for _, p := range io.Points {
		if p.PointType == inst.PointType.PointTypeNumber && p.LogicalNumber == inst.LogicalNumber {
			return p.TagName
		}
	}
	return ""
}

// configDoc is the nested mapping GetConfigJSON renders.
type configDoc struct {
	HistoryDefinition         *HistoryDefinition        `json:"history_definition,omitempty"`
	IODefinition              *IODefinition             `json:"io_definition,omitempty"`
	UserOpcodeTableDefinition *ConfigurableOpcodeTables `json:"user_opcode_table_definition,omitempty"`
	SystemConfig              *SystemConfig             `json:"system_config,omitempty"`
}

// GetConfigJSON lazily initializes any not-yet-defined snapshot and
// renders all four as one JSON document.
func (c *Client) GetConfigJSON(ctx context.Context) ([]byte, error) {
	c.snapshot.mu.RLock()
	io, opcodes, history, system := c.snapshot.io, c.snapshot.opcodes, c.snapshot.history, c.snapshot.system
	c.snapshot.mu.RUnlock()

	var err error
	if io == nil {
		if io, err = c.InitializeIODefinition(ctx); err != nil {
			return nil, err
		}
	}
	if opcodes == nil {
		if opcodes, err = c.InitializeConfigurableOpcodeDefinition(ctx); err != nil {
			return nil, err
		}
	}
	if history == nil {
		if history, err = c.InitializeHistoryDefinition(ctx, true); err != nil {
			return nil, err
		}
	}
	if system == nil {
		if system, err = c.GetSystemConfig(ctx); err != nil {
			return nil, err
		}
	}

	doc := configDoc{
		HistoryDefinition:         history,
		IODefinition:              io,
		UserOpcodeTableDefinition: opcodes,
		SystemConfig:              system,
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, rocerr.Wrap(rocerr.Unknown, err)
	}
	return out, nil
}
