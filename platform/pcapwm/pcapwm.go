// Package pcapwm runs Motors from the outputs of a PCA9685 expander. The chip
// has one prescaler, so every channel shares a single timer; pins are output
// numbers 0..15.
package pcapwm

import (
	"sync"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/drivers/pca9685"
	"drv8833-go/errcode"
	"drv8833-go/platform"
)

const owner = "pcapwm"

// PWM is safe for concurrent use; mu serialises bus traffic.
type PWM struct {
	dev    *pca9685.Device
	claims *platform.Claims
	clock  *platform.ClockSelector

	mu sync.Mutex
	t  *timer
}

var _ drv8833.PWM = (*PWM)(nil)

// New wraps a configured device. extHz is the frequency on the EXTCLK pin, 0
// if it is not connected.
func New(dev *pca9685.Device, extHz uint32) *PWM {
	hw := drv8833.PCA9685.WithClock(drv8833.ClockExternal, extHz)
	return &PWM{
		dev:    dev,
		claims: platform.NewClaims(0, pca9685.Channels-1),
		clock:  platform.NewClockSelector(hw),
	}
}

// SelectSlowClock routes src into the slow clock; only before the first timer.
func (p *PWM) SelectSlowClock(src drv8833.ClockSource) error { return p.clock.Select(src) }

// Hardware describes the chip with the current clock selection.
func (p *PWM) Hardware() drv8833.Hardware { return p.clock.Hardware() }

// Timer programs the prescaler on first use. Later configs must match it
// (errcode.Conflict otherwise).
func (p *PWM) Timer(cfg *drv8833.TimerConfig) (drv8833.Timer, error) {
	if cfg == nil {
		return nil, errcode.InvalidParams
	}
	hw := p.clock.Hardware()
	if cfg.Hardware().Name != hw.Name {
		return nil, errcode.Unsupported
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.t != nil {
		if p.t.cfg.SameTimer(cfg) {
			return p.t, nil
		}
		return nil, errcode.Conflict
	}
	if cfg.Hardware().ClockHz(cfg.Clock()) != hw.ClockHz(cfg.Clock()) {
		return nil, errcode.Conflict
	}
	// The selection is fixed from the first attempt on.
	src := p.clock.Consume()
	ext := cfg.Clock() == drv8833.ClockExternal ||
		(cfg.Clock() == drv8833.ClockSlow && src == drv8833.ClockExternal)
	if err := p.dev.SetPrescale(uint8(cfg.Divider()-1), ext); err != nil {
		return nil, err
	}
	p.t = &timer{p: p, cfg: cfg}
	return p.t, nil
}

type timer struct {
	p   *PWM
	cfg *drv8833.TimerConfig
}

func (t *timer) Bind(pin drv8833.Pin) (drv8833.Channel, error) {
	if err := t.p.claims.Claim(owner, pin); err != nil {
		return nil, err
	}
	return &channel{t: t, n: uint8(pin)}, nil
}

type channel struct {
	t       *timer
	n       uint8
	enabled bool
	gone    bool
}

func (c *channel) Set(percent uint8) error {
	switch {
	case c.gone:
		return errcode.Closed
	case !c.enabled:
		return errcode.Disabled
	}
	counts := uint16(c.t.cfg.Counts(percent))
	p := c.t.p
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.SetCounts(c.n, counts)
}

// Enable(false) forces the output fully off; Enable(true) leaves it off until
// the next Set.
func (c *channel) Enable(on bool) error {
	if c.gone {
		return errcode.Closed
	}
	c.enabled = on
	if on {
		return nil
	}
	return c.t.p.off(c.n)
}

func (c *channel) Release() error {
	if c.gone {
		return nil
	}
	c.gone, c.enabled = true, false
	err := c.t.p.off(c.n)
	c.t.p.claims.Release(owner, drv8833.Pin(c.n))
	return err
}

func (p *PWM) off(ch uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.Off(ch)
}
