//go:build rp2040

// Package rp2pwm runs Motors from RP2040 PWM slices. A slice is one counter
// shared by its A (even GPIO) and B (odd GPIO) outputs, so two pins on the
// same slice must run at the same frequency.
package rp2pwm

import (
	"machine"
	"sync"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
	"drv8833-go/platform"
)

const (
	owner   = "rp2pwm"
	maxGPIO = 29
	slices  = 8
)

// pwmCtrl is the part of a machine PWM slice a channel drives.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// pwmGroupBySlice maps a slice number from machine.PWMPeripheral to its
// controller. Numbers past 7 cannot occur on the RP2040.
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type sliceCfg struct {
	cfg   *drv8833.TimerConfig
	users int
}

// PWM is the RP2040 PWM block. It is safe for concurrent use.
type PWM struct {
	claims *platform.Claims

	mu    sync.Mutex
	slice [slices]sliceCfg
}

var _ drv8833.PWM = (*PWM)(nil)

func New() *PWM {
	return &PWM{claims: platform.NewClaims(0, maxGPIO)}
}

// Hardware describes the slices; clk_sys is the only counter clock.
func (p *PWM) Hardware() drv8833.Hardware { return drv8833.RP2040 }

// Timer validates cfg. Slices are programmed lazily as pins are bound.
func (p *PWM) Timer(cfg *drv8833.TimerConfig) (drv8833.Timer, error) {
	if cfg == nil {
		return nil, errcode.InvalidParams
	}
	if cfg.Hardware().Name != drv8833.RP2040.Name {
		return nil, errcode.Unsupported
	}
	return &timer{p: p, cfg: cfg}, nil
}

type timer struct {
	p   *PWM
	cfg *drv8833.TimerConfig
}

// Bind claims pin, then programs its slice if idle or checks that the slice
// already runs the same timer config (errcode.Conflict otherwise).
func (t *timer) Bind(pin drv8833.Pin) (drv8833.Channel, error) {
	p := t.p
	if err := p.claims.Claim(owner, pin); err != nil {
		return nil, err
	}
	n, err := machine.PWMPeripheral(machine.Pin(pin))
	if err != nil {
		p.claims.Release(owner, pin)
		return nil, errcode.Unsupported
	}
	ctrl := pwmGroupBySlice(n)

	p.mu.Lock()
	sc := &p.slice[n]
	switch {
	case sc.users == 0:
		// First user configures the slice period.
		if err := ctrl.Configure(machine.PWMConfig{Period: t.cfg.Period()}); err != nil {
			p.mu.Unlock()
			p.claims.Release(owner, pin)
			return nil, err
		}
		sc.cfg = t.cfg
	case !sc.cfg.SameTimer(t.cfg):
		p.mu.Unlock()
		p.claims.Release(owner, pin)
		return nil, errcode.Conflict
	}
	sc.users++
	p.mu.Unlock()

	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinPWM})
	c := &channel{p: p, cfg: t.cfg, pin: pin, slice: n, ctrl: ctrl, chIdx: uint8(pin & 1)}
	c.setHW(0)
	return c, nil
}

type channel struct {
	p     *PWM
	cfg   *drv8833.TimerConfig
	pin   drv8833.Pin
	slice uint8
	ctrl  pwmCtrl
	chIdx uint8 // 0 => A, 1 => B

	mu      sync.Mutex
	enabled bool
	gone    bool
}

// caller holds c.mu or owns c exclusively
func (c *channel) setHW(percent uint8) {
	c.ctrl.Set(c.chIdx, c.cfg.CountsOn(percent, c.ctrl.Top()))
}

func (c *channel) Set(percent uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.gone:
		return errcode.Closed
	case !c.enabled:
		return errcode.Disabled
	}
	c.setHW(percent)
	return nil
}

// Enable is modelled as "drive the commanded level" vs "drive 0"; the slice
// keeps counting for its other output.
func (c *channel) Enable(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gone {
		return errcode.Closed
	}
	if !on {
		c.setHW(0)
	}
	c.enabled = on
	return nil
}

// Release drives 0, returns the pin to input and frees the slice when its
// last user leaves.
func (c *channel) Release() error {
	c.mu.Lock()
	if c.gone {
		c.mu.Unlock()
		return nil
	}
	c.setHW(0)
	c.enabled, c.gone = false, true
	c.mu.Unlock()

	p := c.p
	p.mu.Lock()
	if sc := &p.slice[c.slice]; sc.users > 0 {
		sc.users--
		if sc.users == 0 {
			sc.cfg = nil
		}
	}
	p.mu.Unlock()

	machine.Pin(c.pin).Configure(machine.PinConfig{Mode: machine.PinInput})
	p.claims.Release(owner, c.pin)
	return nil
}
