// Package drv8833 drives one brushed DC motor through one bridge of a
// DRV8833-class dual H-bridge, using two PWM channels (one per input pin)
// that share a timer.
//
// Typical use:
//
//	cfg, err := drv8833.NewTimerConfig(drv8833.ClockSlow, 12, 1000)
//	m, err := drv8833.New(pwm, cfg, 2, 3, drv8833.FastDecay)
//	err = m.Forward(100)   // duty (100, 0)
//	err = m.Backward(50)   // duty (50, 100)
//	err = m.Brake()        // duty (0, 0)
//
// Every command is a pure function of (decay mode, verb, speed): the duty pair
// is recomputed on each call and written channel A first, then channel B. A
// command that fails with errcode.ChannelWriteFailed may be re-issued as-is.
//
// The slow clock is the recommended timer source for motor work: it reaches
// the low PWM frequencies motors want (< 20 kHz), draws less power and keeps
// running in light sleep.
//
// Motor and Stepper values are not safe for concurrent use; give each one a
// single owner. Motors built from the same TimerConfig may run on different
// goroutines.
package drv8833

import "drv8833-go/x/mathx"

// DecayMode selects how the bridge realises a speed request.
type DecayMode uint8

const (
	// FastDecay holds one leg at 100% and modulates the other. Current decays
	// through the supply, giving active braking when the PWM is off-phase.
	FastDecay DecayMode = iota + 1
	// SlowDecay modulates one leg against a leg at rest. Current recirculates
	// through the low-side switches for gentler deceleration.
	SlowDecay
)

func (d DecayMode) String() string {
	switch d {
	case FastDecay:
		return "fast"
	case SlowDecay:
		return "slow"
	}
	return "unknown"
}

func (d DecayMode) valid() bool { return d == FastDecay || d == SlowDecay }

// ParseDecayMode maps "fast"/"slow" to a DecayMode.
func ParseDecayMode(s string) (DecayMode, bool) {
	switch s {
	case "fast":
		return FastDecay, true
	case "slow":
		return SlowDecay, true
	}
	return 0, false
}

// Verb is a motor-level intent.
type Verb uint8

const (
	VerbForward Verb = iota + 1
	VerbBackward
	VerbBrake
	VerbCoast
)

func (v Verb) String() string {
	switch v {
	case VerbForward:
		return "forward"
	case VerbBackward:
		return "backward"
	case VerbBrake:
		return "brake"
	case VerbCoast:
		return "coast"
	}
	return "unknown"
}

// Command is one motor intent. Speed is a duty percentage and only matters
// for VerbForward and VerbBackward; it saturates to [0, 100].
type Command struct {
	Verb  Verb
	Speed int
}

// Duty returns the duty percentages for channel A and channel B that realise
// c under mode. ok is false for an unknown mode or verb.
//
//	            fast decay          slow decay
//	forward(s)  (100, 100-s)        (s, 0)
//	backward(s) (100-s, 100)        (0, s)
//	brake       (0, 0)              (100, 100)
//	coast       (100, 100)          (0, 0)
func Duty(mode DecayMode, c Command) (a, b uint8, ok bool) {
	s := uint8(mathx.Clamp(c.Speed, 0, 100))
	switch mode {
	case FastDecay:
		switch c.Verb {
		case VerbForward:
			return 100, 100 - s, true
		case VerbBackward:
			return 100 - s, 100, true
		case VerbBrake:
			return 0, 0, true
		case VerbCoast:
			return 100, 100, true
		}
	case SlowDecay:
		switch c.Verb {
		case VerbForward:
			return s, 0, true
		case VerbBackward:
			return 0, s, true
		case VerbBrake:
			return 100, 100, true
		case VerbCoast:
			return 0, 0, true
		}
	}
	return 0, 0, false
}
