// Package rocerr defines the ROC Plus client's error taxonomy. Every
// error the façade or the codecs return is a *rocerr.Error so callers
// can branch on Kind via errors.As, instead of string-matching.
package rocerr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error categories a ROC Plus exchange can fail with.
type Kind int

const (
	Unknown Kind = iota
	ConnectFailed
	ConnectTimeout
	ReadTimeout
	WriteTimeout
	ClosedByPeer
	BusyAlready
	FrameTooShort
	CrcMismatch
	UnknownOpcode
	EmptyResponse
	DeviceError
	UnexpectedResponse
	ConfigInvalid
	RegistryMiss
)

func (k Kind) String() string {
	switch k {
	case ConnectFailed:
		return "ConnectFailed"
	case ConnectTimeout:
		return "ConnectTimeout"
	case ReadTimeout:
		return "ReadTimeout"
	case WriteTimeout:
		return "WriteTimeout"
	case ClosedByPeer:
		return "ClosedByPeer"
	case BusyAlready:
		return "BusyAlready"
	case FrameTooShort:
		return "FrameTooShort"
	case CrcMismatch:
		return "CrcMismatch"
	case UnknownOpcode:
		return "UnknownOpcode"
	case EmptyResponse:
		return "EmptyResponse"
	case DeviceError:
		return "DeviceError"
	case UnexpectedResponse:
		return "UnexpectedResponse"
	case ConfigInvalid:
		return "ConfigInvalid"
	case RegistryMiss:
		return "RegistryMiss"
	default:
		return "Unknown"
	}
}

// OpcodeFault is one (code, cause_byte_offset) pair from an opcode 255
// device-reported error response.
type OpcodeFault struct {
	Code        uint8
	CauseOffset uint8
	Description string
	CauseDesc   string
}

// Error is the concrete error type returned across package boundaries.
type Error struct {
	Kind Kind
	// Msg is a human-readable detail; may be empty if Kind is self-
	// explanatory.
	Msg string
	// Faults is populated only for Kind == DeviceError.
	Faults []OpcodeFault
	// Got/Expected are populated only for Kind == UnexpectedResponse.
	Got, Expected uint8
	// Err, when set, is the underlying transport/library error.
	Err error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("rocplus: %s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("rocplus: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("rocplus: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, rocerr.ErrBusyAlready) work by comparing on Kind
// when the target is itself a *Error; the target's message is ignored.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a plain *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a *Error of the given kind wrapping an underlying error.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Sentinel values for errors.Is comparisons against a specific kind
// with no message, e.g. errors.Is(err, rocerr.ErrBusyAlready).
var (
	ErrBusyAlready   = &Error{Kind: BusyAlready}
	ErrFrameTooShort = &Error{Kind: FrameTooShort}
	ErrCrcMismatch   = &Error{Kind: CrcMismatch}
	ErrUnknownOpcode = &Error{Kind: UnknownOpcode}
	ErrEmptyResponse = &Error{Kind: EmptyResponse}
	ErrClosedByPeer  = &Error{Kind: ClosedByPeer}
	ErrRegistryMiss  = &Error{Kind: RegistryMiss}
	ErrConfigInvalid = &Error{Kind: ConfigInvalid}
)

// KindOf extracts the Kind from err, or Unknown if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
