package rocpdu

import (
	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/wire"
)

// ErrorIndicatorOpcode is opcode 255, the device-reported-failure
// response checked ahead of the normal per-request dispatch table.
const ErrorIndicatorOpcode uint8 = 255

// opcodeErrorDescriptions maps an opcode 255 error_code byte to its
// description and the field that caused it.
var opcodeErrorDescriptions = map[uint8]struct{ desc, cause string }{
	1:  {"Invalid Opcode request.", "Opcode"},
	2:  {"Invalid parameter number.", "Parameter number"},
	3:  {"Invalid logical number.", "Logical number"},
	4:  {"Invalid point type.", "Point type"},
	5:  {"Received too many data bytes.", "Length"},
	6:  {"Received too few data bytes.", "Length"},
	12: {"Obsolete (Reserved, but not used)", "None"},
	13: {"Outside valid address range.", "Address"},
	14: {"Invalid history request.", "History point number"},
	15: {"Invalid FST request", "FST command number"},
	16: {"Invalid event entry.", "Event code"},
	17: {"Requested too many alarms.", "Number of alarms requested"},
	18: {"Requested too many events.", "Number of events requested"},
	19: {"Write to read only parameter.", "Parameter number"},
	20: {"Security error.", "Opcode"},
	21: {"Invalid security logon.", "Login ID or Password"},
	22: {"Invalid store and forward path.", "Any address or group"},
	24: {"History configuration in progress.", "Opcode"},
	25: {"Invalid parameter range", "Parameter"},
	29: {"Invalid 1 day history index request.", "History Segment, point, day or month"},
	30: {"Invalid history point.", "History Point"},
	31: {"Invalid Min/Max request.", "History segment or point number"},
	32: {"Invalid TLP.", "Point type, parameter, or logical number"},
	33: {"Invalid time.", "Seconds, minutes, hours, days, months, or years"},
	34: {"Illegal Modbus range", "Point/Logical number"},
	50: {"General Error", "Any"},
	51: {"Invalid State for Write", "Point type"},
	52: {"Invalid Configurable Opcode Request", "Starting Table Location"},
	61: {"HART Passthrough Comm Scanner", "See Opcode 200 or passthrough disabled on this channel"},
	62: {"HART passthrough not licensed", "See Opcode 200"},
	63: {"Requested Access Level Too High", "Access Level"},
	77: {"Invalid logoff string", "Ignored"},
}

// decodeErrorIndicator decodes an opcode 255 body: pairs of (error_code,
// cause_byte_offset) bytes, one pair per device-reported fault.
func decodeErrorIndicator(body []byte) (ResponseBody, error) {
	c := wire.NewCursor(body)
	var faults []rocerr.OpcodeFault
	for c.Remaining() >= 2 {
		code := c.TakeUint8()
		offset := c.TakeUint8()
		info, known := opcodeErrorDescriptions[code]
		f := rocerr.OpcodeFault{Code: code, CauseOffset: offset}
		if known {
			f.Description = info.desc
			f.CauseDesc = info.cause
		} else {
			f.Description = "unrecognized opcode error code"
		}
		faults = append(faults, f)
	}
	return nil, &rocerr.Error{Kind: rocerr.DeviceError, Faults: faults}
}
