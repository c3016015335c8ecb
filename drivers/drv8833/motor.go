package drv8833

import (
	"drv8833-go/errcode"
	"drv8833-go/x/mathx"

	"go.uber.org/multierr"
)

const (
	chA = iota
	chB
)

var chName = [2]string{"channel a", "channel b"}

// cached is the last duty written to one channel. It only elides redundant
// writes; ok=false forces the next write through.
type cached struct {
	duty uint8
	ok   bool
}

// Motor drives one H-bridge from two PWM channels. It owns both channels
// until Close.
type Motor struct {
	cfg  *TimerConfig
	mode DecayMode
	pins [2]Pin
	ch   [2]Channel

	target [2]uint8 // duty pair of the last command
	speed  int      // signed speed of the last command; brake and coast are 0
	cache  [2]cached
	closed bool
}

// New binds pinA and pinB to two channels of the timer programmed per cfg.
// Both channels start enabled at 0% duty. Any platform failure is reported as
// errcode.ChannelAllocationFailed wrapping the cause; whatever was claimed
// before the failure is released.
func New(pwm PWM, cfg *TimerConfig, pinA, pinB Pin, mode DecayMode) (*Motor, error) {
	const op = "new"
	if pwm == nil || cfg == nil || !mode.valid() {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: op}
	}
	if pinA == pinB {
		return nil, &errcode.E{C: errcode.ChannelAllocationFailed, Op: op, Msg: "pins a and b are the same", Err: errcode.PinInUse}
	}

	tm, err := pwm.Timer(cfg)
	if err != nil {
		return nil, &errcode.E{C: errcode.ChannelAllocationFailed, Op: op, Msg: "timer", Err: err}
	}

	m := &Motor{cfg: cfg, mode: mode, pins: [2]Pin{pinA, pinB}}
	for i, pin := range m.pins {
		ch, err := tm.Bind(pin)
		if err != nil {
			m.release()
			return nil, &errcode.E{C: errcode.ChannelAllocationFailed, Op: op, Msg: chName[i], Err: err}
		}
		m.ch[i] = ch
	}
	for i, ch := range m.ch {
		err := ch.Enable(true)
		if err == nil {
			err = ch.Set(0)
		}
		if err != nil {
			m.release()
			return nil, &errcode.E{C: errcode.ChannelAllocationFailed, Op: op, Msg: chName[i], Err: err}
		}
		m.cache[i] = cached{duty: 0, ok: true}
	}
	return m, nil
}

// Forward drives A-to-B at speed percent (saturated to [0, 100]).
func (m *Motor) Forward(speed int) error {
	return m.Do(Command{Verb: VerbForward, Speed: speed})
}

// Backward drives B-to-A at speed percent (saturated to [0, 100]).
func (m *Motor) Backward(speed int) error {
	return m.Do(Command{Verb: VerbBackward, Speed: speed})
}

// Brake shorts the motor terminals.
func (m *Motor) Brake() error { return m.Do(Command{Verb: VerbBrake}) }

// Coast lets the motor spin freely.
func (m *Motor) Coast() error { return m.Do(Command{Verb: VerbCoast}) }

// Drive takes a signed speed: >= 0 is Forward, < 0 is Backward at |speed|.
func (m *Motor) Drive(speed int) error {
	speed = mathx.Clamp(speed, -100, 100)
	if speed < 0 {
		return m.Backward(-speed)
	}
	return m.Forward(speed)
}

// Do writes the duty pair for c, channel A first. On errcode.ChannelWriteFailed
// a write that already succeeded stands; re-issuing c converges.
func (m *Motor) Do(c Command) error {
	op := c.Verb.String()
	if m.closed {
		return &errcode.E{C: errcode.Closed, Op: op}
	}
	a, b, ok := Duty(m.mode, c)
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: op}
	}
	m.target = [2]uint8{a, b}
	switch c.Verb {
	case VerbForward:
		m.speed = mathx.Clamp(c.Speed, 0, 100)
	case VerbBackward:
		m.speed = -mathx.Clamp(c.Speed, 0, 100)
	default:
		m.speed = 0
	}
	return m.apply(op)
}

// Resync rewrites the last commanded duty pair to both channels, bypassing
// write elision. Use it after the platform may have lost channel state.
func (m *Motor) Resync() error {
	if m.closed {
		return &errcode.E{C: errcode.Closed, Op: "resync"}
	}
	m.cache = [2]cached{}
	return m.apply("resync")
}

func (m *Motor) apply(op string) error {
	for i, duty := range m.target {
		if m.cache[i].ok && m.cache[i].duty == duty {
			continue
		}
		m.cache[i].ok = false
		if err := m.ch[i].Set(duty); err != nil {
			return &errcode.E{C: errcode.ChannelWriteFailed, Op: op, Msg: chName[i], Err: err}
		}
		m.cache[i] = cached{duty: duty, ok: true}
	}
	return nil
}

// Duty returns the duty pair last written successfully. ok is false when a
// channel's state is unknown (after a failed write) or the motor is closed.
func (m *Motor) Duty() (a, b uint8, ok bool) {
	if m.closed || !m.cache[chA].ok || !m.cache[chB].ok {
		return 0, 0, false
	}
	return m.cache[chA].duty, m.cache[chB].duty, true
}

// Speed returns the signed speed last commanded (-100..100).
func (m *Motor) Speed() int { return m.speed }

func (m *Motor) Mode() DecayMode      { return m.mode }
func (m *Motor) Config() *TimerConfig { return m.cfg }
func (m *Motor) Pins() (a, b Pin)     { return m.pins[chA], m.pins[chB] }

// Close drives both channels to 0%, disables them and releases the pins.
// Errors from both channels are combined. Closing twice is a no-op.
func (m *Motor) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	var errs error
	for _, ch := range m.ch {
		errs = multierr.Append(errs, ch.Set(0))
		errs = multierr.Append(errs, ch.Enable(false))
	}
	return multierr.Append(errs, m.release())
}

func (m *Motor) release() error {
	var errs error
	for i, ch := range m.ch {
		if ch == nil {
			continue
		}
		errs = multierr.Append(errs, ch.Release())
		m.ch[i] = nil
	}
	m.cache = [2]cached{}
	return errs
}
