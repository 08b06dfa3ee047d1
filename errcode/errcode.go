package errcode

// Code is a stable result identifier for interface operations.
// It is a string newtype, comparable, allocation-free, and implements error.
// Success is a nil error; OK exists for reporting surfaces (terminal, logs).
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK                Code = "ok"
	NotFound          Code = "interface_not_found"
	InvalidID         Code = "invalid_interface_id"
	DirectionMismatch Code = "direction_mismatch"
	KindMismatch      Code = "kind_mismatch"
	TransmitError     Code = "transmit_error"
	NoBuffer          Code = "no_buffer"
	BufferOverrun     Code = "buffer_overrun"

	Locked        Code = "interface_locked"
	InvalidConfig Code = "invalid_config"

	Error Code = "error" // generic fallback
)

// Level classifies how severe a failure is for the caller.
type Level uint8

const (
	LevelError    Level = iota // routine validation failure, caller recovers
	LevelCritical              // data was lost or a deadline missed
	LevelFatal                 // configuration defect, cannot continue
)

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelFatal:
		return "fatal"
	default:
		return "error"
	}
}

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C     Code
	Level Level
	Op    string
	Msg   string
	Err   error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E around a cause. Use for failures that carry context;
// plain validation results are returned as bare Codes.
func Wrap(c Code, level Level, op string, err error) error {
	return &E{C: c, Level: level, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// LevelOf extracts a Level from an error; bare Codes report LevelError.
func LevelOf(err error) Level {
	if e, ok := err.(*E); ok {
		return e.Level
	}
	return LevelError
}
