// Package platform holds the bookkeeping shared by PWM platform
// implementations: exclusive pin claims and the device-wide clock selector.
package platform

import (
	"sync"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
)

// Claims records which owner holds each pin. Pins are claimed exclusively.
type Claims struct {
	mu       sync.Mutex
	min, max drv8833.Pin
	owners   map[drv8833.Pin]string
}

// NewClaims accepts pins in [min, max].
func NewClaims(min, max drv8833.Pin) *Claims {
	return &Claims{min: min, max: max, owners: make(map[drv8833.Pin]string)}
}

// Claim gives pin to owner. It fails with errcode.UnknownPin outside the
// range and errcode.PinInUse if another owner holds it.
func (c *Claims) Claim(owner string, pin drv8833.Pin) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pin < c.min || pin > c.max {
		return errcode.UnknownPin
	}
	if _, inUse := c.owners[pin]; inUse {
		return errcode.PinInUse
	}
	c.owners[pin] = owner
	return nil
}

// Release frees pin if owner holds it.
func (c *Claims) Release(owner string, pin drv8833.Pin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.owners[pin]; ok && cur == owner {
		delete(c.owners, pin)
	}
}

// Owner returns the holder of pin, if any.
func (c *Claims) Owner(pin drv8833.Pin) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.owners[pin]
	return o, ok
}

// ClockSelector is the device-wide choice of what feeds the slow clock. It
// may be changed until the first timer is created, then it is fixed.
type ClockSelector struct {
	mu       sync.Mutex
	hw       drv8833.Hardware
	src      drv8833.ClockSource
	consumed bool
}

// NewClockSelector starts with the slow clock as wired on hw.
func NewClockSelector(hw drv8833.Hardware) *ClockSelector {
	return &ClockSelector{hw: hw, src: drv8833.ClockSlow}
}

// Select routes src into the slow clock. It fails with errcode.Busy once a
// timer exists and errcode.UnsupportedClock if src is not wired.
func (s *ClockSelector) Select(src drv8833.ClockSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return errcode.Busy
	}
	if s.hw.ClockHz(src) == 0 {
		return errcode.UnsupportedClock
	}
	s.src = src
	return nil
}

// Hardware returns the platform description with the slow clock reflecting
// the current selection. TimerConfigs should be built from it.
func (s *ClockSelector) Hardware() drv8833.Hardware {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hw.WithClock(drv8833.ClockSlow, s.hw.ClockHz(s.src))
}

// Consume fixes the selection; platforms call it when creating a timer.
func (s *ClockSelector) Consume() drv8833.ClockSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumed = true
	return s.src
}
