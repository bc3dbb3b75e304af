package tlp

// DefaultRegistry returns a Registry seeded with the point types this
// driver's bootstrap sequence depends on. The full vendor
// point-type/parameter catalogue (thousands of generated rows) is an
// external, curated data set, not something this package hardcodes; an
// embedding application is expected to supply its own complete table via
// NewRegistry. This seed covers Analog Input (point type 103, used by
// the IO tag-enrichment bootstrap), the Configurable Opcode Table entry
// schema, and the History Segment/Point configuration schemas used by
// the history bootstrap.
func DefaultRegistry() *Registry {
	return NewRegistry(
		analogInputPointType(),
		configurableOpcodeTablePointType(),
		historySegmentConfigurationPointType(),
		historyPointConfigurationPointType(),
	)
}

// AnalogInputPointTypeNumber is the point type whose POINT_TAG_ID
// parameter the I/O bootstrap reads to build tag names.
const AnalogInputPointTypeNumber uint8 = 103

// Parameter numbers on the Analog Input point type used by the tag
// enrichment and engineering-units reads.
const (
	ParamEUValue    uint8 = 21
	ParamPointTagID uint8 = 62
)

func analogInputPointType() *PointType {
	params := []Parameter{
		{ParameterNumber: 0, Name: "POINT_TYPE", Description: "point type number", DataType: UINT8, Access: AccessRO},
		{ParameterNumber: ParamEUValue, Name: "EU_VALUE", Description: "engineering-units value", DataType: FLOAT32, Access: AccessRO},
		{ParameterNumber: ParamPointTagID, Name: "POINT_TAG_ID", Description: "user-assigned tag", DataType: AC10, Access: AccessRW},
	}
	return NewPointType(AnalogInputPointTypeNumber, "Analog Input", params)
}

// ConfigurableOpcodeTablePointTypeNumber groups the 44 contiguous
// parameters the driver reads per table in InitializeConfigurableOpcodeDefinition.
const ConfigurableOpcodeTablePointTypeNumber uint8 = 110

func configurableOpcodeTablePointType() *PointType {
	params := make([]Parameter, 0, 44)
	for i := uint8(0); i < 44; i++ {
		dt := TLPType
		if i%3 != 0 {
			dt = UINT8
		}
		params = append(params, Parameter{
			ParameterNumber: i,
			Name:            entryName("OPCODE_TABLE_ENTRY", i),
			Description:     "configurable opcode table data entry",
			DataType:        dt,
			Access:          AccessRW,
		})
	}
	return NewPointType(ConfigurableOpcodeTablePointTypeNumber, "Configurable Opcode Table", params)
}

// HistorySegmentConfigurationPointTypeNumber carries the 14 scalar
// parameters per history segment.
const HistorySegmentConfigurationPointTypeNumber uint8 = 111

func historySegmentConfigurationPointType() *PointType {
	names := []string{
		"SEGMENT_DESCRIPTION", "SEGMENT_SIZE", "MAX_SEGMENT_SIZE",
		"PERIODIC_ENTRIES", "DAILY_ENTRIES", "PERIODIC_INDEX", "DAILY_INDEX",
		"PERIODIC_SAMPLE_RATE", "CONTRACT_HOUR", "ON_OFF_SWITCH",
		"FREE_SPACE", "NUMBER_OF_CONFIGURED_POINTS", "USER_WEIGHTING_TLP",
		"RESERVED",
	}
	params := make([]Parameter, len(names))
	for i, name := range names {
		dt := UINT16
		switch name {
		case "SEGMENT_DESCRIPTION":
			dt = AC20
		case "USER_WEIGHTING_TLP":
			dt = TLPType
		case "ON_OFF_SWITCH":
			dt = BIN
		}
		params[i] = Parameter{ParameterNumber: uint8(i), Name: name, DataType: dt, Access: AccessRW}
	}
	return NewPointType(HistorySegmentConfigurationPointTypeNumber, "History Segment Configuration", params)
}

// HistoryPointConfigurationPointTypeNumber carries the 5 parameters per
// logged history point within a segment.
const HistoryPointConfigurationPointTypeNumber uint8 = 112

func historyPointConfigurationPointType() *PointType {
	params := []Parameter{
		{ParameterNumber: 0, Name: "POINT_TAG_ID", DataType: AC10, Access: AccessRW},
		{ParameterNumber: 1, Name: "PARAMETER_DESCRIPTION", DataType: AC20, Access: AccessRW},
		{ParameterNumber: 2, Name: "HISTORY_LOG_TLP", DataType: TLPType, Access: AccessRW},
		{ParameterNumber: 3, Name: "ARCHIVE_TYPE", DataType: UINT8, Access: AccessRW},
		{ParameterNumber: 4, Name: "AVERAGING_RATE_TYPE", DataType: UINT8, Access: AccessRW},
	}
	return NewPointType(HistoryPointConfigurationPointTypeNumber, "History Segment Point Configuration", params)
}

func entryName(prefix string, i uint8) string {
	const digits = "0123456789"
	if i < 10 {
		return prefix + "_" + string(digits[i])
	}
	return prefix + "_" + string(digits[i/10]) + string(digits[i%10])
}
