package tlp

import "fmt"

// Device-scalar enumerations decoded from opcode 6 (System Configuration)
// and other fixed-code fields: each scalar enum value maps to a name for
// display/logging alongside its numeric wire value.

// OperatingMode is byte 0 of the opcode 6 response.
type OperatingMode uint8

const (
	FirmwareUpdateMode OperatingMode = 0
	RunMode            OperatingMode = 1
)

func (m OperatingMode) String() string {
	switch m {
	case RunMode:
		return "RUN_MODE"
	default:
		return "FIRMWARE_UPDATE_MODE"
	}
}

// LogicalCompatibilityStatus is the compat_status byte.
type LogicalCompatibilityStatus uint8

const (
	Points16PerSlot9SlotsMax  LogicalCompatibilityStatus = 0
	Points16PerSlot14SlotsMax LogicalCompatibilityStatus = 1
	Points8PerSlot27SlotsMax  LogicalCompatibilityStatus = 2
)

func (s LogicalCompatibilityStatus) String() string {
	switch s {
	case Points16PerSlot14SlotsMax:
		return "16_POINTS_PER_SLOT_14_SLOTS_MAX"
	case Points8PerSlot27SlotsMax:
		return "8_POINTS_PER_SLOT_27_SLOTS_MAX"
	default:
		return "16_POINTS_PER_SLOT_9_SLOTS_MAX"
	}
}

// OpcodeRevision is the opcode_revision byte.
type OpcodeRevision uint8

const (
	OriginalRevision OpcodeRevision = 0
	ExtendedRevision OpcodeRevision = 1
)

func (r OpcodeRevision) String() string {
	if r == ExtendedRevision {
		return "EXTENDED"
	}
	return "ORIGINAL"
}

// ROCSubType is the roc_subtype byte.
type ROCSubType uint8

const (
	Series2 ROCSubType = 0
	Series1 ROCSubType = 1
)

func (s ROCSubType) String() string {
	if s == Series1 {
		return "SERIES_1"
	}
	return "SERIES_2"
}

// ROCType is the roc_type byte.
type ROCType uint8

const (
	ROCPACROC300Series ROCType = 1
	FloBoss407         ROCType = 2
	FlashpacROC300     ROCType = 3
	FloBoss503         ROCType = 4
	FloBoss504         ROCType = 5
	ROC800             ROCType = 6
	DL800              ROCType = 11
)

func (t ROCType) String() string {
	switch t {
	case ROCPACROC300Series:
		return "ROCPAC_ROC300_SERIES"
	case FloBoss407:
		return "FLO_BOSS_407"
	case FlashpacROC300:
		return "FLASHPAC_ROC300_SERIES"
	case FloBoss503:
		return "FLO_BOSS_503"
	case FloBoss504:
		return "FLO_BOSS_504"
	case ROC800:
		return "ROC_800"
	case DL800:
		return "DL_800"
	default:
		return fmt.Sprintf("UNKNOWN_ROC_TYPE_%d", uint8(t))
	}
}

// AlarmCondition is the decoded bit6 of an alarm record's leading byte.
type AlarmCondition uint8

const (
	Cleared AlarmCondition = 0
	Set     AlarmCondition = 1
)

func (c AlarmCondition) String() string {
	if c == Set {
		return "set"
	}
	return "cleared"
}

// ParameterAlarmCode enumerates the alarm_code byte of a ParameterAlarm
// record, 0..33.
type ParameterAlarmCode uint8

const (
	LowAlarm                        ParameterAlarmCode = 0
	LowLowAlarm                     ParameterAlarmCode = 1
	HighAlarm                       ParameterAlarmCode = 2
	HighHighAlarm                   ParameterAlarmCode = 3
	RateAlarm                       ParameterAlarmCode = 4
	StatusChange                    ParameterAlarmCode = 5
	PointFail                       ParameterAlarmCode = 6
	ScanningDisabled                ParameterAlarmCode = 7
	ScanningManual                  ParameterAlarmCode = 8
	RedundantTotalCounts            ParameterAlarmCode = 9
	RedundantFlowRegister           ParameterAlarmCode = 10
	NoFlowAlarm                     ParameterAlarmCode = 11
	InputFreezeMode                 ParameterAlarmCode = 12
	SensorCommunicationFailure      ParameterAlarmCode = 13
	SerialCommunicationFailure485   ParameterAlarmCode = 14
	OffScanMode                     ParameterAlarmCode = 15
	ManualFlowInputs                ParameterAlarmCode = 16
	MeterTemperatureFailureAlarm    ParameterAlarmCode = 17
	CompressibilityCalculationAlarm ParameterAlarmCode = 18
	SequenceOutOfOrder              ParameterAlarmCode = 19
	PhaseDiscrepancy                ParameterAlarmCode = 20
	PulseSynchronizationFailure     ParameterAlarmCode = 21
	FrequencyDiscrepancy            ParameterAlarmCode = 22
	PulseInputOneFailure            ParameterAlarmCode = 23
	PulseInputTwoFailure            ParameterAlarmCode = 24
	PulseOutputBufferOverrun        ParameterAlarmCode = 25
	PulseOutputBufferWarning        ParameterAlarmCode = 26
	RelayFault                      ParameterAlarmCode = 27
	RelayFailure                    ParameterAlarmCode = 28
	StaticPressureLowLimited        ParameterAlarmCode = 29
	TemperatureLowLimited           ParameterAlarmCode = 30
	AnalogOutputReadbackError       ParameterAlarmCode = 31
	BadLevelAPulseStream            ParameterAlarmCode = 32
	MarketPulseAlarm                ParameterAlarmCode = 33
)

var parameterAlarmCodeNames = map[ParameterAlarmCode]string{
	LowAlarm:                        "LOW_ALARM",
	LowLowAlarm:                     "LOW_LOW_ALARM",
	HighAlarm:                       "HIGH_ALARM",
	HighHighAlarm:                   "HIGH_HIGH_ALARM",
	RateAlarm:                       "RATE_ALARM",
	StatusChange:                    "STATUS_CHANGE",
	PointFail:                       "POINT_FAIL",
	ScanningDisabled:                "SCANNING_DISABLED",
	ScanningManual:                  "SCANNING_MANUAL",
	RedundantTotalCounts:            "REDUNDANT_TOTAL_COUNTS",
	RedundantFlowRegister:           "REDUNDANT_FLOW_REGISTER",
	NoFlowAlarm:                     "NO_FLOW_ALARM",
	InputFreezeMode:                 "INPUT_FREEZE_MODE",
	SensorCommunicationFailure:      "SENSOR_COMMUNICATION_FAILURE",
	SerialCommunicationFailure485:   "485_COMMUNICATION_FAILURE",
	OffScanMode:                     "OFF_SCAN_MODE",
	ManualFlowInputs:                "MANUAL_FLOW_INPUTS",
	MeterTemperatureFailureAlarm:    "METER_TEMPERATURE_FAILURE_ALARM",
	CompressibilityCalculationAlarm: "COMPRESSIBILITY_CALCULATION_ALARM",
	SequenceOutOfOrder:              "SEQUENCE_OUT_OF_ORDER",
	PhaseDiscrepancy:                "PHASE_DISCREPANCY",
	PulseSynchronizationFailure:     "PULSE_SYNCHRONIZATION_FAILURE",
	FrequencyDiscrepancy:            "FREQUENCY_DISCREPANCY",
	PulseInputOneFailure:            "PULSE_INPUT_ONE_FAILURE",
	PulseInputTwoFailure:            "PULSE_INPUT_TWO_FAILURE",
	PulseOutputBufferOverrun:        "PULSE_OUTPUT_BUFFER_OVERRUN",
	PulseOutputBufferWarning:        "PULSE_OUTPUT_BUFFER_WARNING",
	RelayFault:                      "RELAY_FAULT",
	RelayFailure:                    "RELAY_FAILURE",
	StaticPressureLowLimited:        "STATIC_PRESSURE_LOW_LIMITED",
	TemperatureLowLimited:           "TEMPERATURE_LOW_LIMITED",
	AnalogOutputReadbackError:       "ANALOG_OUTPUT_READBACK_ERROR",
	BadLevelAPulseStream:            "BAD_LEVEL_A_PULSE_STREAM",
	MarketPulseAlarm:                "MARKET_PULSE_ALARM",
}

func (c ParameterAlarmCode) String() string {
	if name, ok := parameterAlarmCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PARAMETER_ALARM_CODE_%d", uint8(c))
}

// SystemEventCode enumerates the system-event `code` byte.
type SystemEventCode uint8

const (
	InitializationSequence SystemEventCode = 144
	ClockSetEvent          SystemEventCode = 200
	TextMessageEvent       SystemEventCode = 248
	FactoryResetEvent      SystemEventCode = 254
)

var systemEventNames = map[SystemEventCode]string{
	InitializationSequence: "INITIALIZATION_SEQUENCE",
	ClockSetEvent:          "CLOCK_SET",
	TextMessageEvent:       "TEXT_MESSAGE",
	FactoryResetEvent:      "MVS_RESET_TO_FACTORY_DEFAULTS",
}

func (c SystemEventCode) String() string {
	if name, ok := systemEventNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SYSTEM_EVENT_%d", uint8(c))
}

// ArchiveType enumerates a history point's archive method.
type ArchiveType uint8

const (
	HistoryPointNotDefined ArchiveType = 0
	UserCData              ArchiveType = 1
	UserCTime              ArchiveType = 2
	FSTDataHistory         ArchiveType = 65
	FSTTime                ArchiveType = 67
	Average                ArchiveType = 128
	Accumulate             ArchiveType = 129
	CurrentValue           ArchiveType = 130
	Totalize               ArchiveType = 134
)

var archiveTypeNames = map[ArchiveType]string{
	HistoryPointNotDefined: "HISTORY_POINT_NOT_DEFINED",
	UserCData:              "USER_C_DATA",
	UserCTime:              "USER_C_TIME",
	FSTDataHistory:         "FST_DATA_HISTORY",
	FSTTime:                "FST_TIME",
	Average:                "AVERAGE",
	Accumulate:             "ACCUMULATE",
	CurrentValue:           "CURRENT_VALUE",
	Totalize:               "TOTALIZE",
}

func (a ArchiveType) String() string {
	if name, ok := archiveTypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ARCHIVE_TYPE_%d", uint8(a))
}

// HistoryType selects which of a history point's four logged series an
// opcode 135/136/139 request targets: periodic values, daily values,
// periodic timestamps, or daily timestamps.
type HistoryType uint8

const (
	PeriodicValues     HistoryType = 0
	DailyValues        HistoryType = 1
	PeriodicTimeStamps HistoryType = 2
	DailyTimeStamps    HistoryType = 3
)

func (h HistoryType) String() string {
	switch h {
	case PeriodicValues:
		return "PERIODIC_VALUES"
	case DailyValues:
		return "DAILY_VALUES"
	case PeriodicTimeStamps:
		return "PERIODIC_TIME_STAMPS"
	case DailyTimeStamps:
		return "DAILY_TIME_STAMPS"
	default:
		return fmt.Sprintf("HISTORY_TYPE_%d", uint8(h))
	}
}

// IsTimeStamps reports whether h selects a timestamp series rather than a
// value series (the opcode 135 decoder reads float32 vs. TIME accordingly).
func (h HistoryType) IsTimeStamps() bool {
	return h == PeriodicTimeStamps || h == DailyTimeStamps
}

// AveragingRateType enumerates a history point's averaging cadence.
type AveragingRateType uint8

const (
	NoAveraging           AveragingRateType = 0
	UserWeightedAveraging AveragingRateType = 6
	PerSecond             AveragingRateType = 10
	PerDay                AveragingRateType = 13
)

var averagingRateNames = map[AveragingRateType]string{
	NoAveraging:           "NONE",
	UserWeightedAveraging: "USER_WEIGHTED_AVERAGING",
	PerSecond:             "PER_SECOND",
	PerDay:                "PER_DAY",
}

func (a AveragingRateType) String() string {
	if name, ok := averagingRateNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AVERAGING_RATE_TYPE_%d", uint8(a))
}
