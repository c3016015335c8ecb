package errcode

// Code is a stable, wire-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"
	Timeout       Code = "timeout"
	Closed        Code = "closed"

	// Timer configuration
	InvalidResolution     Code = "invalid_resolution"
	UnachievableFrequency Code = "unachievable_frequency"
	UnsupportedClock      Code = "unsupported_clock"

	// Motor
	ChannelAllocationFailed Code = "channel_allocation_failed"
	ChannelWriteFailed      Code = "channel_write_failed"

	// Platform causes
	UnknownPin Code = "unknown_pin"
	PinInUse   Code = "pin_in_use"
	NoChannel  Code = "no_channel"
	Conflict   Code = "conflict"
	Disabled   Code = "disabled"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the failing operation and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is match an *E against its bare Code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap returns an *E for op carrying c and the cause err.
func Wrap(c Code, op string, err error) error {
	return &E{C: c, Op: op, Err: err}
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

// Cause returns the innermost Code found along err's wrap chain, or Error.
// It reports why a wrapped operation failed (e.g. pin_in_use under
// channel_allocation_failed).
func Cause(err error) Code {
	c := Error
	for err != nil {
		switch x := err.(type) {
		case Code:
			return x
		case *E:
			c = x.C
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return c
}
