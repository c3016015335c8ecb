// Package simpwm is an in-memory PWM platform. It models a timer group with a
// fixed number of channels, exclusive pin claims, the device-wide slow-clock
// selector and injectable faults, and records every duty write so tests and
// host tools can observe the outputs.
package simpwm

import (
	"sync"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
	"drv8833-go/platform"
)

// Config sizes the simulated peripheral. Zero fields take defaults.
type Config struct {
	Hardware drv8833.Hardware // default drv8833.DefaultHardware
	Channels int              // default 8
	Timers   int              // default 4
	MinPin   drv8833.Pin      // default 0
	MaxPin   drv8833.Pin      // default 48
}

// PWM is a simulated peripheral. It is safe for concurrent use.
type PWM struct {
	claims *platform.Claims
	clock  *platform.ClockSelector

	mu       sync.Mutex
	maxTimer int
	timers   []*timer
	chans    []*channel // index = channel number; nil = free
	byPin    map[drv8833.Pin]*channel
	failSet  map[drv8833.Pin]error
	failBind map[drv8833.Pin]error
	writes   int
}

var _ drv8833.PWM = (*PWM)(nil)

// New returns an idle simulated peripheral.
func New(cfg Config) *PWM {
	if cfg.Hardware.Name == "" {
		cfg.Hardware = drv8833.DefaultHardware
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 8
	}
	if cfg.Timers <= 0 {
		cfg.Timers = 4
	}
	if cfg.MaxPin == 0 {
		cfg.MaxPin = 48
	}
	return &PWM{
		claims:   platform.NewClaims(cfg.MinPin, cfg.MaxPin),
		clock:    platform.NewClockSelector(cfg.Hardware),
		maxTimer: cfg.Timers,
		chans:    make([]*channel, cfg.Channels),
		byPin:    make(map[drv8833.Pin]*channel),
		failSet:  make(map[drv8833.Pin]error),
		failBind: make(map[drv8833.Pin]error),
	}
}

// SelectSlowClock routes src into the slow clock; only before the first timer.
func (p *PWM) SelectSlowClock(src drv8833.ClockSource) error { return p.clock.Select(src) }

// Hardware describes this peripheral with the current clock selection.
func (p *PWM) Hardware() drv8833.Hardware { return p.clock.Hardware() }

// Timer returns the timer running cfg, creating it if none matches.
func (p *PWM) Timer(cfg *drv8833.TimerConfig) (drv8833.Timer, error) {
	if cfg == nil {
		return nil, errcode.InvalidParams
	}
	hw := p.clock.Hardware()
	if cfg.Hardware().Name != hw.Name {
		return nil, errcode.Unsupported
	}
	if cfg.Clock() == drv8833.ClockSlow && cfg.Hardware().ClockHz(drv8833.ClockSlow) != hw.ClockHz(drv8833.ClockSlow) {
		return nil, errcode.Conflict
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.timers {
		if t.cfg.SameTimer(cfg) {
			return t, nil
		}
	}
	if len(p.timers) >= p.maxTimer {
		return nil, errcode.NoChannel
	}
	p.clock.Consume()
	t := &timer{p: p, n: len(p.timers), cfg: cfg}
	p.timers = append(p.timers, t)
	return t, nil
}

// FailWrites makes every Set on pin fail with err until cleared with nil.
func (p *PWM) FailWrites(pin drv8833.Pin, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.failSet, pin)
		return
	}
	p.failSet[pin] = err
}

// FailBind makes binding pin fail with err until cleared with nil.
func (p *PWM) FailBind(pin drv8833.Pin, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.failBind, pin)
		return
	}
	p.failBind[pin] = err
}

// Duty returns the duty percentage last written to pin and whether the pin is
// bound.
func (p *PWM) Duty(pin drv8833.Pin) (uint8, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.byPin[pin]
	if c == nil {
		return 0, false
	}
	return c.duty, true
}

// Counts returns the compare value programmed for pin.
func (p *PWM) Counts(pin drv8833.Pin) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c := p.byPin[pin]; c != nil {
		return c.counts
	}
	return 0
}

// Enabled reports whether pin's channel is running.
func (p *PWM) Enabled(pin drv8833.Pin) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.byPin[pin]
	return c != nil && c.enabled
}

// Channel returns the channel number bound to pin, or -1.
func (p *PWM) Channel(pin drv8833.Pin) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c := p.byPin[pin]; c != nil {
		return c.n
	}
	return -1
}

// Writes counts successful duty writes across all channels.
func (p *PWM) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Timers returns the number of timers in service.
func (p *PWM) Timers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

const owner = "simpwm"

type timer struct {
	p   *PWM
	n   int
	cfg *drv8833.TimerConfig
}

// Bind claims pin and attaches it to the lowest free channel.
func (t *timer) Bind(pin drv8833.Pin) (drv8833.Channel, error) {
	p := t.p
	p.mu.Lock()
	err := p.failBind[pin]
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := p.claims.Claim(owner, pin); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for n, c := range p.chans {
		if c != nil {
			continue
		}
		c = &channel{t: t, n: n, pin: pin}
		p.chans[n] = c
		p.byPin[pin] = c
		return c, nil
	}
	p.claims.Release(owner, pin)
	return nil, errcode.NoChannel
}

type channel struct {
	t   *timer
	n   int
	pin drv8833.Pin

	enabled bool
	duty    uint8
	counts  uint32
	gone    bool
}

// caller holds p.mu
func (c *channel) level(percent uint8) {
	c.duty = percent
	c.counts = c.t.cfg.Counts(percent)
}

func (c *channel) Set(percent uint8) error {
	p := c.t.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if c.gone {
		return errcode.Closed
	}
	if err := p.failSet[c.pin]; err != nil {
		return err
	}
	if !c.enabled {
		return errcode.Disabled
	}
	c.level(percent)
	p.writes++
	return nil
}

func (c *channel) Enable(on bool) error {
	p := c.t.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if c.gone {
		return errcode.Closed
	}
	c.enabled = on
	return nil
}

// Release drives the output low, frees the channel and returns the pin.
func (c *channel) Release() error {
	p := c.t.p
	p.mu.Lock()
	if c.gone {
		p.mu.Unlock()
		return nil
	}
	c.level(0)
	c.enabled = false
	c.gone = true
	p.chans[c.n] = nil
	delete(p.byPin, c.pin)
	p.mu.Unlock()

	p.claims.Release(owner, c.pin)
	return nil
}
